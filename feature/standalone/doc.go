// Package standalone runs a bundled Milvus server as a child process.
//
// ServerConfig turns the configuration template into a concrete milvus.yaml:
// it applies caller overrides, reserves a free port for every *_port variable,
// derives the storage paths and renders the file. Server launches the
// executable against that file, tracks the child and stops it on Close.
//
// A Feature exposes the supervisor state over HTTP for the optional status app.
package standalone
