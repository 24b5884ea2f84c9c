package cmd

import (
	"milvus-server/core/logger"
	"milvus-server/feature/standalone"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newServer builds the logger and the supervisor for a command.
func newServer(cmd *cobra.Command) (*standalone.Server, *zap.Logger, *settings, error) {
	s, err := loadSettings(cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	logg, err := logger.New(&s.cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := standalone.NewServerConfig(standalone.Options{
		TemplatePath: s.cfg.Server.Template,
		Overrides:    s.overrides,
		Logger:       logg,
	})
	if err != nil {
		return nil, logg, nil, err
	}

	srv, err := standalone.NewServer(standalone.ServerOptions{
		Config:      cfg,
		Debug:       s.cfg.Server.Debug,
		BinDir:      s.cfg.Server.BinDir,
		StopTimeout: s.stopTimeout,
		Logger:      logg,
	})
	if err != nil {
		return nil, logg, nil, err
	}
	return srv, logg, s, nil
}
