package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// ConfigFileName is the rendered configuration inside the configs directory.
	ConfigFileName = "milvus.yaml"

	configsDir = "configs"
	logsDir    = "logs"
	dataDir    = "data"
)

// Path variable names written by Resolve.
const (
	VarEtcdLogPath     = "etcd_log_path"
	VarSystemLogPath   = "system_log_path"
	VarEtcdDataDir     = "etcd_data_dir"
	VarLocalStorageDir = "local_storage_dir"
	VarRocketMQDataDir = "rocketmq_data_dir"
)

// DefaultDataDir returns the platform default base data directory.
// Priority: %APPDATA%/milvus.io/milvus-server on Windows, $HOME/.milvus.io/milvus-server
// elsewhere, falling back to the user config directory.
func DefaultDataDir() (string, error) {
	return defaultDataDir(runtime.GOOS, os.Getenv)
}

func defaultDataDir(goos string, getenv func(string) string) (string, error) {
	if goos == "windows" {
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "milvus.io", "milvus-server"), nil
		}
	} else if home := getenv("HOME"); home != "" {
		return filepath.Join(home, ".milvus.io", "milvus-server"), nil
	}
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine default data dir: %w", err)
	}
	return filepath.Join(root, "milvus.io", "milvus-server"), nil
}

// Layout is the on-disk structure under one base data directory.
type Layout struct {
	BaseDir   string
	ConfigDir string
	LogsDir   string
	DataDir   string
}

// NewLayout derives the layout for base. An empty base selects DefaultDataDir.
// The base is always made absolute.
func NewLayout(base string) (Layout, error) {
	if base == "" {
		def, err := DefaultDataDir()
		if err != nil {
			return Layout{}, err
		}
		base = def
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to resolve data dir %q: %w", base, err)
	}
	return Layout{
		BaseDir:   abs,
		ConfigDir: filepath.Join(abs, configsDir),
		LogsDir:   filepath.Join(abs, logsDir),
		DataDir:   filepath.Join(abs, dataDir),
	}, nil
}

// Ensure creates the base directory and its three subdirectories.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.BaseDir, l.ConfigDir, l.LogsDir, l.DataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// ConfigFile is the path of the rendered configuration.
func (l Layout) ConfigFile() string {
	return filepath.Join(l.ConfigDir, ConfigFileName)
}

// StdoutLog is where the server's standard output is captured.
func (l Layout) StdoutLog() string {
	return filepath.Join(l.LogsDir, "milvus-stdout.log")
}

// StderrLog is where the server's standard error is captured.
func (l Layout) StderrLog() string {
	return filepath.Join(l.LogsDir, "milvus-stderr.log")
}

// PathVariable is a variable owned by the storage resolver.
type PathVariable struct {
	Name  string
	Value string
}

// PathVariables returns the path variables for goos in a fixed order.
func (l Layout) PathVariables(goos string) []PathVariable {
	etcdLog := filepath.Join(l.LogsDir, "etcd.log")
	if goos == "windows" {
		etcdLog = "winfile:///" + strings.ReplaceAll(etcdLog, `\`, "/")
	}
	return []PathVariable{
		{VarEtcdLogPath, etcdLog},
		{VarSystemLogPath, l.LogsDir},
		{VarEtcdDataDir, filepath.Join(l.DataDir, "etcd.data")},
		{VarLocalStorageDir, filepath.Join(l.DataDir, "storage")},
		{VarRocketMQDataDir, filepath.Join(l.DataDir, "rocketmq")},
	}
}
