package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ProgressOutput receives the progress bar of directory runs.
var ProgressOutput io.Writer = os.Stderr

var desiredExtensions = map[string]bool{
	".sexpr": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// ProcessFile runs engine on one file.
func ProcessFile(engine Engine, filePath string) (Result, error) {
	return engine.Run(filePath)
}

// ProcessFiles processes every path in order and returns all results.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor func(Engine, string) (Result, error),
) ([]Result, error) {
	var all []Result
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path, processor)
		all = append(all, results...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
	}
	return all, nil
}

// ProcessPath processes a file, or every file with a desired extension
// under a directory. Directory entries are processed concurrently, one
// worker per CPU; results are sorted by file name. Errors of individual
// files do not stop the others and are returned joined.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor func(Engine, string) (Result, error),
) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return []Result{}, nil
		}
		res, err := processor(engine, path)
		if err != nil {
			return []Result{}, err
		}
		return []Result{res}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	type outcome struct {
		result Result
		err    error
	}
	outcomes := make(chan outcome, len(files))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressOutput),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	dispatched := 0
	var ctxErr error
	for _, filePath := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		sem <- struct{}{}
		dispatched++
		go func(fp string) {
			defer func() { <-sem }()

			res, err := processor(engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			outcomes <- outcome{result: res, err: err}
			_ = bar.Add(1)
		}(filePath)
	}

	results := make([]Result, 0, dispatched)
	var errs []error
	for range dispatched {
		o := <-outcomes
		if o.err != nil {
			errs = append(errs, o.err)
			continue
		}
		results = append(results, o.result)
	}
	_ = bar.Finish()
	fmt.Fprintln(ProgressOutput)

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	if ctxErr != nil {
		return results, ctxErr
	}
	return results, errors.Join(errs...)
}
