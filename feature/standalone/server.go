package standalone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"milvus-server/core/logger"
	"milvus-server/core/server"
	"milvus-server/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const pollInterval = 100 * time.Millisecond

// State is the lifecycle state of the supervised server.
type State int

const (
	// StateNotStarted means Start was never called.
	StateNotStarted State = iota
	// StateRunning means a child was started and not yet stopped.
	StateRunning
	// StateStopped means the last child was stopped. Start may be called again.
	StateStopped
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return "InvalidState"
	}
}

// ServerOptions configures a Server.
type ServerOptions struct {
	// Config is the session configuration. Nil builds one from the built-in template.
	Config *ServerConfig
	// Overrides are merged into Config.
	Overrides map[string]any
	// Debug inherits the standard streams instead of writing log files.
	Debug bool
	// BinDir holds the bundled executable. Empty uses data/bin next to the launcher.
	BinDir string
	// StopTimeout escalates Stop to a kill after this long. Zero waits forever.
	StopTimeout time.Duration
	// Logger is optional and defaults to a no-op logger.
	Logger *zap.Logger
}

// Server supervises one Milvus standalone process.
// Close must be called on every exit path; it stops the child if one is alive.
type Server struct {
	// op serializes lifecycle operations.
	op sync.Mutex
	// mu guards the fields below.
	mu sync.Mutex

	config      *ServerConfig
	debug       bool
	executable  string
	stopTimeout time.Duration
	session     string
	logger      *zap.Logger
	terminate   func(*os.Process) error

	state     State
	cmd       *exec.Cmd
	done      chan struct{}
	exitErr   error
	logFiles  []*os.File
	startedAt time.Time
}

// NewServer creates a supervisor. Nothing is started.
func NewServer(opts ServerOptions) (*Server, error) {
	session := uuid.NewString()
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}
	l = logger.WithSession(l, session)

	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = NewServerConfig(Options{Logger: l})
		if err != nil {
			return nil, err
		}
	}
	cfg.Update(opts.Overrides)

	exe, err := server.Config{BinDir: opts.BinDir}.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate milvus executable: %w", err)
	}

	return &Server{
		config:      cfg,
		debug:       opts.Debug,
		executable:  exe,
		stopTimeout: opts.StopTimeout,
		session:     session,
		logger:      l,
		terminate:   terminate,
	}, nil
}

// Config returns the session configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Executable returns the path of the bundled executable.
func (s *Server) Executable() string {
	return s.executable
}

// Session returns the id tagging this supervisor's log entries.
func (s *Server) Session() string {
	return s.session
}

func exited(done chan struct{}) bool {
	if done == nil {
		return true
	}
	select {
	case <-done:
		return true
	default:
		return false
	}
}

// Start resolves the configuration and launches the server.
func (s *Server) Start() error {
	s.op.Lock()
	defer s.op.Unlock()

	if s.Running() {
		return ErrAlreadyRunning
	}
	// A child that exited on its own still holds its log files.
	s.release()

	if err := s.config.Resolve(); err != nil {
		return fmt.Errorf("failed to resolve configuration: %w", err)
	}
	if err := checkExecutable(s.executable); err != nil {
		return err
	}
	layout, err := s.config.Layout()
	if err != nil {
		return err
	}
	if info, err := os.Stat(layout.BaseDir); err != nil || !info.IsDir() {
		return fmt.Errorf("working directory %s is not usable: %v", layout.BaseDir, err)
	}

	cmd := exec.Command(s.executable, server.RunArgs...)
	cmd.Dir = layout.BaseDir
	cmd.Env = buildEnv(os.Environ(), runtime.GOOS, filepath.Dir(s.executable))

	var files []*os.File
	if s.debug {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		files, err = openLogs(layout.StdoutLog(), layout.StderrLog())
		if err != nil {
			return err
		}
		cmd.Stdout = files[0]
		cmd.Stderr = files[1]
	}

	if err := cmd.Start(); err != nil {
		closeAll(files)
		return fmt.Errorf("failed to start milvus: %w", err)
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.cmd = cmd
	s.done = done
	s.exitErr = nil
	s.logFiles = files
	s.state = StateRunning
	s.startedAt = time.Now()
	s.mu.Unlock()

	go func() {
		err := cmd.Wait()
		s.mu.Lock()
		s.exitErr = err
		if s.cmd == cmd {
			s.state = StateStopped
		}
		s.mu.Unlock()
		close(done)
	}()

	s.logger.Info("Milvus started",
		zap.Int("pid", cmd.Process.Pid),
		zap.String("base_dir", layout.BaseDir),
		zap.Bool("debug", s.debug))
	return nil
}

func openLogs(paths ...string) ([]*os.File, error) {
	files := make([]*os.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			closeAll(files)
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		files = append(files, f)
	}
	return files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

// release forgets a child that has exited and closes its log files.
func (s *Server) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return
	}
	closeAll(s.logFiles)
	s.logFiles = nil
	s.cmd = nil
	s.state = StateStopped
}

// Stop terminates the server and waits for it to exit. It is a no-op when
// nothing was started.
func (s *Server) Stop() error {
	s.op.Lock()
	defer s.op.Unlock()
	return s.stop()
}

func (s *Server) stop() error {
	s.mu.Lock()
	cmd, done := s.cmd, s.done
	s.mu.Unlock()
	if cmd == nil {
		return nil
	}

	var err error
	if !exited(done) {
		s.logger.Info("Stopping Milvus", zap.Int("pid", cmd.Process.Pid))
		if sigErr := s.terminate(cmd.Process); sigErr != nil && !errors.Is(sigErr, os.ErrProcessDone) {
			// The child may still be alive; keep tracking it.
			s.logger.Warn("Failed to signal Milvus", zap.Error(sigErr))
			return fmt.Errorf("failed to stop milvus (pid %d): %w", cmd.Process.Pid, sigErr)
		}
		err = s.awaitExit(cmd, done)
	}

	s.release()
	s.logger.Info("Milvus stopped", zap.Error(s.ExitErr()))
	return err
}

// awaitExit blocks until the child is gone, killing it after the stop timeout.
func (s *Server) awaitExit(cmd *exec.Cmd, done chan struct{}) error {
	if s.stopTimeout <= 0 {
		<-done
		return nil
	}

	timer := time.NewTimer(s.stopTimeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		s.logger.Warn("Milvus did not exit gracefully, killing it", zap.Duration("timeout", s.stopTimeout))
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("failed to kill milvus (pid %d): %w", cmd.Process.Pid, err)
		}
		<-done
		return nil
	}
}

// Close stops the server. Call it on every exit path.
func (s *Server) Close() error {
	return s.Stop()
}

// Wait blocks until the server is no longer running or ctx ends.
func (s *Server) Wait(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for s.Running() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Running reports whether a started child is still alive.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil && !exited(s.done)
}

// State returns the lifecycle state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PID returns the child's process id, 0 when none is tracked.
func (s *Server) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// ExitErr returns how the last child exited. Nil while it runs or on a clean exit.
func (s *Server) ExitErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitErr
}

// Cleanup removes the base data directory. The server must not be running.
func (s *Server) Cleanup() error {
	s.op.Lock()
	defer s.op.Unlock()

	if s.Running() {
		return fmt.Errorf("cleanup: %w", ErrRunning)
	}
	s.release()

	layout, err := s.config.Layout()
	if err != nil {
		return err
	}
	if err := os.RemoveAll(layout.BaseDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", layout.BaseDir, err)
	}
	s.logger.Info("Removed data directory", zap.String("base_dir", layout.BaseDir))
	return nil
}

// SetBaseDir switches the base data directory and recomputes the path variables.
func (s *Server) SetBaseDir(dir string) error {
	s.op.Lock()
	defer s.op.Unlock()

	if s.Running() {
		return fmt.Errorf("set base dir: %w", ErrRunning)
	}
	s.config.Update(map[string]any{server.DataDirKey: dir})
	return s.config.ResolveStorage()
}

// ServerAddress is the address the server listens on.
func (s *Server) ServerAddress() string {
	return server.Address
}

// ListenPort returns the proxy port from the configuration.
func (s *Server) ListenPort() (int, error) {
	v, ok := s.config.Get(server.ListenPortVariable)
	if !ok {
		return 0, fmt.Errorf("template has no %s", server.ListenPortVariable)
	}
	return utils.ToInt(v)
}

// SetListenPort changes where the proxy port search starts.
func (s *Server) SetListenPort(port int) error {
	return s.config.Set(server.ListenPortVariable, port)
}

// ConfigKeys returns the configurable variable names.
func (s *Server) ConfigKeys() []string {
	return s.config.Keys()
}

// Debug reports whether the standard streams are inherited.
func (s *Server) Debug() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debug
}

// SetDebug switches stream handling for the next Start.
func (s *Server) SetDebug(debug bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = debug
}
