package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/recog/formatter"
	"github.com/gnolang/recog/internal"
	"github.com/gnolang/recog/internal/sexpr"
	"github.com/gnolang/recog/runner"
)

var errUnreadable = errors.New("some files could not be read")

var (
	writeFiles   bool
	simplifyJSON bool
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [paths...]",
	Short: "Fold constant arithmetic in s-expression files",
	Long: `Parses every .sexpr file under the given paths and applies the
distribution and folding rules bottom-up. Files that change are printed,
or rewritten in place with --write.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimplify(cmd, args)
	},
}

func init() {
	simplifyCmd.Flags().BoolVarP(&writeFiles, "write", "w", false, "Write simplified output back to the files")
	simplifyCmd.Flags().BoolVar(&simplifyJSON, "json", false, "Output results in JSON format")
}

func runSimplify(cmd *cobra.Command, paths []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	engine := runner.NewSimplifyEngine(logger, writeFiles)
	results, err := runner.ProcessFiles(ctx, logger, engine, paths, runner.ProcessFile)
	if err != nil {
		return err
	}
	return printResults(cmd.OutOrStdout(), logger, results, simplifyJSON)
}

func printResults(w io.Writer, logger *zap.Logger, results []runner.Result, isJSON bool) error {
	failed := false
	for _, res := range results {
		if res.Err != nil {
			failed = true
		}
	}

	if isJSON {
		d, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling results to JSON: %w", err)
		}
		fmt.Fprintln(w, string(d))
	} else {
		for _, res := range results {
			printResult(w, logger, res)
		}
	}

	if failed {
		return errUnreadable
	}
	return nil
}

func printResult(w io.Writer, logger *zap.Logger, res runner.Result) {
	switch {
	case res.Err != nil:
		issue, ok := formatter.IssueFromError(res.File, res.Err, sexpr.TypeName)
		if !ok {
			fmt.Fprintf(w, "%s: %v\n", res.File, res.Err)
			return
		}
		sourceCode, err := internal.ReadSourceCode(res.File)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", res.File), zap.Error(err))
			fmt.Fprintf(w, "%s: %v\n", res.File, res.Err)
			return
		}
		fmt.Fprint(w, formatter.GenerateFormattedIssue([]formatter.Issue{issue}, sourceCode))
	case res.Written:
		fmt.Fprintf(w, "simplified %s\n", res.File)
	case res.Changed:
		fmt.Fprintf(w, "--- %s\n%s\n", res.File, res.Output)
	}
}
