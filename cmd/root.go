package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/recog/runner"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "recog [paths...]",
	Short:            "recog - table-driven prediction and tree rewriting for s-expressions",
	Args:             cobra.ArbitraryArgs,
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// display help when only 'recog' is entered
		if len(args) == 0 {
			return cmd.Help()
		}
		// recog [path1 path2 ...] behaves like the simplify subcommand
		return runSimplify(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", runner.DefaultConfigFile, "Path to the decision table configuration")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for batch runs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log prediction and rewrite traces")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(watchCmd)
}
