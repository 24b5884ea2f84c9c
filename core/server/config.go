package server

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the launcher settings for the bundled Milvus server.
type Config struct {
	// BinDir is the directory holding the bundled milvus executable.
	// Empty means data/bin next to the launcher executable.
	BinDir string `mapstructure:"bin_dir" default:""`
	// Template is the configuration template path. Empty selects the built-in one.
	Template string `mapstructure:"template" default:""`
	// DataDir is the base data directory. Empty selects the platform default.
	DataDir string `mapstructure:"data_dir" default:""`
	// Debug inherits the server's standard streams instead of capturing them.
	Debug bool `mapstructure:"debug" default:"false"`
	// StopTimeoutSeconds escalates a graceful stop to a kill after this long. 0 waits forever.
	StopTimeoutSeconds int `mapstructure:"stop_timeout_seconds" default:"0"`
	// StatusAddr enables the local status endpoint when set (e.g. 127.0.0.1:9091).
	StatusAddr string `mapstructure:"status_addr" default:""`
}

const (
	// DeployMode is exported to the server as DEPLOY_MODE.
	DeployMode = "STANDALONE"
	// Address is where the server listens.
	Address = "127.0.0.1"
	// ListenPortVariable names the variable exposed as the server's listen port.
	ListenPortVariable = "proxy_port"
	// DataDirKey is the reserved override key selecting the base data directory.
	DataDirKey = "data_dir"
)

// RunArgs are the fixed arguments that start the server in single-node mode.
var RunArgs = []string{"run", "standalone"}

// ExecutableName returns the file name of the bundled executable.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "milvus.exe"
	}
	return "milvus"
}

// StopTimeout returns the stop timeout as a duration.
func (c Config) StopTimeout() time.Duration {
	if c.StopTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.StopTimeoutSeconds) * time.Second
}

// ResolveBinDir returns BinDir or the default next to the launcher executable.
func (c Config) ResolveBinDir() (string, error) {
	if c.BinDir != "" {
		return filepath.Abs(c.BinDir)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "data", "bin"), nil
}

// Executable returns the full path of the bundled executable.
func (c Config) Executable() (string, error) {
	dir, err := c.ResolveBinDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ExecutableName()), nil
}
