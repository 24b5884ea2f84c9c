// Package middleware contains HTTP middleware for the status endpoint.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// The status endpoint only listens on loopback and carries no authentication.
package middleware
