package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/recog/runner"
)

var watchWrite bool

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Simplify s-expression files as they are saved",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		engine := runner.NewSimplifyEngine(logger, watchWrite)
		w, err := runner.NewWatcher(logger, engine, args, func(res runner.Result, err error) {
			if err != nil {
				logger.Error("Error simplifying file", zap.Error(err))
				return
			}
			printResult(out, logger, res)
		})
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}

		fmt.Fprintf(out, "watching %s\n", strings.Join(args, ", "))
		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().BoolVarP(&watchWrite, "write", "w", false, "Write simplified output back to the files")
}
