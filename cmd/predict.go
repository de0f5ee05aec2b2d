package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnolang/recog/formatter"
	"github.com/gnolang/recog/internal"
	"github.com/gnolang/recog/recognizer"
	"github.com/gnolang/recog/runner"
)

var decisionNumber int

var predictCmd = &cobra.Command{
	Use:   "predict [inputs...]",
	Short: "Predict the alternative a configured decision picks for each input",
	Long: `Runs one decision of the configuration file over each argument,
read as a character stream. Without a configuration file the built-in
s-expression token decision is used.
Example) recog predict --decision 1 vec vector 42`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := runner.LoadConfigOrDefault(logger, cfgFile)
		if err != nil {
			return err
		}
		d, err := config.DFA(decisionNumber, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := false
		for i, input := range args {
			alt, err := d.Predict(nil, recognizer.NewStringStream(input))
			if err != nil {
				failed = true
				name := fmt.Sprintf("arg%d", i+1)
				if issue, ok := formatter.IssueFromError(name, err, nil); ok {
					fmt.Fprint(out, formatter.GenerateFormattedIssue([]formatter.Issue{issue}, internal.NewSourceCode(input)))
				} else {
					fmt.Fprintf(out, "%s: %v\n", name, err)
				}
				continue
			}
			fmt.Fprintf(out, "%q => %d\n", input, alt)
		}
		if failed {
			return fmt.Errorf("decision %d: no viable alternative for some inputs", decisionNumber)
		}
		return nil
	},
}

func init() {
	predictCmd.Flags().IntVarP(&decisionNumber, "decision", "d", 1, "Decision number to run")
}
