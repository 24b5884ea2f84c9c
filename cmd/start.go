package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"milvus-server/core/loader"
	"milvus-server/core/logger"
	"milvus-server/core/middleware/rayid"
	"milvus-server/feature/standalone"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Milvus server",
	Long: `Renders the configuration, starts the bundled Milvus binary and waits until
the process exits or the launcher is interrupted.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	srv, logg, s, err := newServer(cmd)
	if err != nil {
		return err
	}
	defer logg.Sync()
	defer srv.Close()

	if err := srv.Start(); err != nil {
		return err
	}

	port, _ := srv.ListenPort()
	logg.Info("Milvus server is running",
		zap.String("address", srv.ServerAddress()),
		zap.Int("port", port),
		zap.String("base_dir", srv.Config().BaseDir()),
		zap.String("config", srv.Config().ConfigFile()))

	var app *fiber.App
	if addr := s.cfg.Server.StatusAddr; addr != "" {
		app, err = newStatusApp(srv, logg)
		if err != nil {
			return err
		}
		go func() {
			logg.Info("Starting status endpoint", zap.String("addr", addr))
			if err := app.Listen(addr); err != nil {
				logg.Error("Status endpoint failed", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		select {
		case <-sig:
			logg.Info("Shutting down server...")
			cancel()
		case <-ctx.Done():
		}
	}()

	waitErr := srv.Wait(ctx)
	if app != nil {
		_ = app.Shutdown()
	}

	if errors.Is(waitErr, context.Canceled) {
		return srv.Stop()
	}
	if exitErr := srv.ExitErr(); exitErr != nil {
		return fmt.Errorf("milvus exited: %w", exitErr)
	}
	logg.Info("Milvus exited")
	return nil
}

// newStatusApp builds the fiber app serving the supervisor state.
func newStatusApp(srv *standalone.Server, logg *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	mgr := loader.NewManager()
	mgr.Register(standalone.NewFeature(srv, logg, true))
	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, err
	}
	logg.Debug("Status features loaded", zap.Strings("features", loaded))
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
