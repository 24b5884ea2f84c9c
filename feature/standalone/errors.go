package standalone

import (
	"errors"
	"fmt"
)

var (
	// ErrRunning is returned by operations that require a stopped server.
	ErrRunning = errors.New("server is running")
	// ErrAlreadyRunning is returned by Start while a child is alive.
	ErrAlreadyRunning = errors.New("server is already running")
	// ErrExecutable means the bundled executable is missing or not executable.
	ErrExecutable = errors.New("milvus executable is not usable")
)

// UnresolvedError names a variable that still has no value after resolution.
type UnresolvedError struct {
	Name string
	// All lists every unresolved variable in declaration order.
	All []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s is still not resolved, please specify a value for it", e.Name)
}
