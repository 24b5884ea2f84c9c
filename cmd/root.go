package cmd

import (
	"fmt"
	"os"

	"milvus-server/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands.
// Without a subcommand it starts the server, like start.
var RootCmd = &cobra.Command{
	Use:   "milvus-server",
	Short: "Milvus standalone launcher",
	Long: `milvus-server runs the bundled Milvus binary as a single-node server.
It renders milvus.yaml from a template, picks free ports, prepares the data
directory and supervises the process until it is interrupted.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStart,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config keeps CLI errors readable.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	registerLaunchFlags(RootCmd.PersistentFlags())
	registerVariableFlags(RootCmd.PersistentFlags())
}
