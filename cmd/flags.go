package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"milvus-server/core/config"
	"milvus-server/core/server"
	"milvus-server/core/template"

	"github.com/spf13/pflag"
)

// launchFlags mirror server.Config. Flags the user set win over the environment.
type launchFlags struct {
	debug       bool
	data        string
	template    string
	binDir      string
	stopTimeout time.Duration
	statusAddr  string
}

var flags launchFlags

// variableFlags maps a flag name to the template variable it overrides.
var variableFlags = map[string]string{}

func registerLaunchFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&flags.debug, "debug", false, "show the server output on the console instead of the log files")
	fs.StringVar(&flags.data, "data", "", "base data directory (default: platform data dir)")
	fs.StringVar(&flags.template, "template", "", "configuration template (default: built-in milvus.yaml template)")
	fs.StringVar(&flags.binDir, "bin-dir", "", "directory holding the milvus executable (default: data/bin next to the launcher)")
	fs.DurationVar(&flags.stopTimeout, "stop-timeout", 0, "kill the server when it has not exited this long after a stop request (0 waits forever)")
	fs.StringVar(&flags.statusAddr, "status-addr", "", "serve the status endpoint on this address, e.g. 127.0.0.1:9091")
}

func flagName(variable string) string {
	return strings.ReplaceAll(variable, "_", "-")
}

// registerVariableFlags adds one typed flag per built-in template variable with a default.
func registerVariableFlags(fs *pflag.FlagSet) {
	table, err := template.Parse(template.Default())
	if err != nil {
		panic(fmt.Sprintf("built-in template is invalid: %v", err))
	}

	for _, v := range table.Variables() {
		if !v.Resolved() {
			continue
		}
		name := flagName(v.Name)
		if fs.Lookup(name) != nil {
			continue
		}
		usage := fmt.Sprintf("set %s (%s)", v.Name, v.Type)
		switch val := v.Value.(type) {
		case int:
			fs.Int(name, val, usage)
		case bool:
			fs.Bool(name, val, usage)
		default:
			fs.String(name, v.Text(), usage)
		}
		variableFlags[name] = v.Name
	}
}

// variableOverrides returns the variables whose flags were set on the command line.
func variableOverrides(fs *pflag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	fs.Visit(func(f *pflag.Flag) {
		if variable, ok := variableFlags[f.Name]; ok {
			overrides[variable] = f.Value.String()
		}
	})
	return overrides
}

// settings is the merged launcher configuration of one command.
type settings struct {
	cfg         *config.Config
	stopTimeout time.Duration
	overrides   map[string]any
}

func loadSettings(fs *pflag.FlagSet) (*settings, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	s := &settings{cfg: cfg, stopTimeout: cfg.Server.StopTimeout()}
	if fs.Changed("debug") {
		cfg.Server.Debug = flags.debug
	}
	if fs.Changed("data") {
		cfg.Server.DataDir = flags.data
	}
	if fs.Changed("template") {
		cfg.Server.Template = flags.template
	}
	if fs.Changed("bin-dir") {
		cfg.Server.BinDir = flags.binDir
	}
	if fs.Changed("status-addr") {
		cfg.Server.StatusAddr = flags.statusAddr
	}
	if fs.Changed("stop-timeout") {
		s.stopTimeout = flags.stopTimeout
	}
	// Debug runs are verbose unless a log level was configured.
	if _, ok := os.LookupEnv(config.EnvPrefix + "_LOG_LEVEL"); cfg.Server.Debug && !ok {
		cfg.Log.Level = "debug"
	}

	s.overrides = variableOverrides(fs)
	if cfg.Server.DataDir != "" {
		s.overrides[server.DataDirKey] = cfg.Server.DataDir
	}
	return s, nil
}
