package cmd

import (
	"milvus-server/feature/standalone"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type keyEntry struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default any    `yaml:"default,omitempty"`
	Flag    string `yaml:"flag,omitempty"`
}

func keyEntries(items []standalone.ConfigItem) []keyEntry {
	entries := make([]keyEntry, 0, len(items))
	for _, it := range items {
		e := keyEntry{Name: it.Name, Type: it.Type, Default: it.Value}
		if _, ok := variableFlags[flagName(it.Name)]; ok {
			e.Flag = "--" + flagName(it.Name)
		}
		entries = append(entries, e)
	}
	return entries
}

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the configurable template variables",
	Long:  `Prints every template variable with its type and current value as YAML.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, logg, _, err := newServer(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(keyEntries(srv.ConfigItems())); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	RootCmd.AddCommand(keysCmd)
}
