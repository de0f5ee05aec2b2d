package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnolang/recog/formatter"
	"github.com/gnolang/recog/runner"
)

var decodeAll bool

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Print the decoded tables of configured decisions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := runner.LoadConfigOrDefault(logger, cfgFile)
		if err != nil {
			return err
		}

		numbers := []int{decisionNumber}
		if decodeAll {
			numbers = config.DecisionNumbers()
		}

		out := cmd.OutOrStdout()
		for _, n := range numbers {
			tables, err := config.Tables(n)
			if err != nil {
				return fmt.Errorf("decision %d: %w", n, err)
			}
			fmt.Fprintf(out, "decision %d", n)
			if desc := config.Decisions[n].Description; desc != "" {
				fmt.Fprintf(out, ": %s", desc)
			}
			fmt.Fprintf(out, " (%d states)\n", tables.NumStates())
			fmt.Fprintln(out, formatter.FormatTables(tables))
		}
		return nil
	},
}

func init() {
	decodeCmd.Flags().IntVarP(&decisionNumber, "decision", "d", 1, "Decision number to decode")
	decodeCmd.Flags().BoolVar(&decodeAll, "all", false, "Decode every configured decision")
}
