package cmd

import (
	"github.com/spf13/cobra"
)

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove the base data directory",
	Long:  `Deletes the configuration, logs and data written by previous runs.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, logg, _, err := newServer(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		return srv.Cleanup()
	},
}

func init() {
	RootCmd.AddCommand(cleanupCmd)
}
