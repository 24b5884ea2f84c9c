// Package server holds the launcher settings and constants for the bundled
// Milvus executable.
//
// # Configuration
//
// The Config struct defines where the executable lives, which template to render,
// the base data directory, debug mode, the optional stop timeout and the optional
// status endpoint address.
//
// # Invocation
//
// The executable is started as `milvus run standalone` with DEPLOY_MODE=STANDALONE.
//
// # Usage
//
// This package is primarily used by the core/config package to embed launcher
// settings and by the standalone feature to locate and start the executable.
package server
