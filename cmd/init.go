package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnolang/recog/runner"
)

// initCmd: recog init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file holding the built-in decision tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = runner.DefaultConfigFile
		}
		if err := runner.WriteConfig(path, runner.DefaultConfig()); err != nil {
			return fmt.Errorf("initializing config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
		return nil
	},
}
