package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write milvus.yaml without starting the server",
	Long: `Resolves every template variable, prepares the data directory and writes
the configuration file. The path of the written file is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, logg, _, err := newServer(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := srv.Config().Resolve(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), srv.Config().ConfigFile())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)
}
