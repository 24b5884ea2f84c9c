// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production). There is no shared logger registry: each launcher
// session receives its own logger and tags it with WithSession.
//
// # Context Awareness
//
// The status endpoint assigns a RayID to every request. WithRayID extracts it from
// the Fiber context and attaches it to the log entry.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithSession(log, sessionID)
//	log.Info("Milvus started")
package logger
