package ports

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"milvus-server/core/template"

	"go.uber.org/zap"
)

const (
	// Suffix marks a variable as a listen port.
	Suffix = "_port"
	// DefaultBase is where the search starts when a port variable has no default.
	DefaultBase = 40000
	// DefaultMaxAttempts bounds the ascending search.
	DefaultMaxAttempts = 10000
	// Host is the loopback address reservations are bound to.
	Host = "127.0.0.1"

	maxPort = 65535
)

// IsPortVariable reports whether name follows the port naming convention.
func IsPortVariable(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// ConflictError is returned when an explicitly requested port cannot be bound.
type ConflictError struct {
	Name string
	Port int
	Err  error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("set %s=%d, but the port could not be bound: %v", e.Name, e.Port, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// ExhaustedError is returned when no port in the searched range could be bound.
type ExhaustedError struct {
	Name  string
	First int
	Last  int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no bindable port for %s in range [%d-%d]", e.Name, e.First, e.Last)
}

// Reservation pairs a port with the listener holding it.
type Reservation struct {
	Name     string
	Port     int
	listener net.Listener
}

// Allocator resolves port variables to ports that are bindable on loopback.
// Every bound port stays reserved by a listening socket until Release.
type Allocator struct {
	base         int
	maxAttempts  int
	reservations []Reservation
	logger       *zap.Logger
}

// NewAllocator creates an allocator with the default base and attempt budget.
func NewAllocator(logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{
		base:        DefaultBase,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger,
	}
}

// tryBind returns a listener if the port is currently bindable.
// The listener never accepts connections.
func tryBind(port int) (net.Listener, error) {
	return net.Listen("tcp", net.JoinHostPort(Host, strconv.Itoa(port)))
}

// Reserve binds exactly the requested port or fails.
func (a *Allocator) Reserve(name string, port int) error {
	if port <= 0 || port > maxPort {
		return &ConflictError{Name: name, Port: port, Err: fmt.Errorf("port out of range")}
	}
	l, err := tryBind(port)
	if err != nil {
		return &ConflictError{Name: name, Port: port, Err: err}
	}
	a.reservations = append(a.reservations, Reservation{Name: name, Port: port, listener: l})
	a.logger.Debug("Bound requested port", zap.String("variable", name), zap.Int("port", port))
	return nil
}

// Search tries ascending ports from start and reserves the first bindable one.
// A start of 0 or less begins at the allocator's base.
func (a *Allocator) Search(name string, start int) (int, error) {
	if start <= 0 {
		start = a.base
	}
	last := start + a.maxAttempts - 1
	if last > maxPort {
		last = maxPort
	}
	for port := start; port <= last; port++ {
		l, err := tryBind(port)
		if err != nil {
			continue
		}
		a.reservations = append(a.reservations, Reservation{Name: name, Port: port, listener: l})
		a.logger.Debug("Bound port", zap.String("variable", name), zap.Int("port", port))
		return port, nil
	}
	return 0, &ExhaustedError{Name: name, First: start, Last: last}
}

// Allocate resolves every port variable of table in declaration order.
// Variables named in pinned must get exactly that port. Earlier reservations are
// released first so repeated calls never collide with themselves.
// On success the table holds the bound ports and the sockets remain reserved.
func (a *Allocator) Allocate(table *template.Table, pinned map[string]int) error {
	a.Release()

	for _, v := range table.Variables() {
		if !IsPortVariable(v.Name) {
			continue
		}
		if port, ok := pinned[v.Name]; ok {
			if err := a.Reserve(v.Name, port); err != nil {
				a.Release()
				return err
			}
			continue
		}
		start := 0
		if v.Resolved() {
			n, err := toPort(v.Value)
			if err != nil {
				a.Release()
				return fmt.Errorf("default for %s: %w", v.Name, err)
			}
			start = n
		}
		if _, err := a.Search(v.Name, start); err != nil {
			a.Release()
			return err
		}
	}

	for _, r := range a.reservations {
		if err := table.Set(r.Name, r.Port); err != nil {
			a.Release()
			return err
		}
	}
	return nil
}

func toPort(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case string:
		if v == "" {
			return 0, nil
		}
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("unexpected port value %v", val)
	}
}

// Reserved returns the ports currently held, keyed by variable name.
func (a *Allocator) Reserved() map[string]int {
	out := make(map[string]int, len(a.reservations))
	for _, r := range a.reservations {
		out[r.Name] = r.Port
	}
	return out
}

// Release closes every reservation socket. It is safe to call repeatedly.
func (a *Allocator) Release() {
	for _, r := range a.reservations {
		if err := r.listener.Close(); err != nil {
			a.logger.Warn("Failed to release port", zap.String("variable", r.Name), zap.Int("port", r.Port), zap.Error(err))
		}
	}
	a.reservations = nil
}
