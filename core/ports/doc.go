// Package ports allocates loopback TCP ports for the template's port variables.
//
// Every variable whose name ends in "_port" is resolved to a port that can be bound
// on 127.0.0.1 at resolution time. A caller-pinned port gets exactly one bind attempt
// and fails with a ConflictError; otherwise ports are tried upward from the variable's
// default (or 40000) for at most 10000 candidates.
//
// Bound ports are held by listening sockets until Release, so ports resolved later in
// the same pass cannot collide with earlier ones. A window remains between Release and
// the supervised server binding the port itself.
package ports
