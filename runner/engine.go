// Package runner simplifies s-expression files in batches and on change,
// and loads the decision tables the command line works with.
package runner

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/recog/internal/simplify"
	"github.com/gnolang/recog/recognizer"
)

// Result is the outcome of simplifying one file.
type Result struct {
	File    string `json:"file"`
	Output  string `json:"output,omitempty"`
	Changed bool   `json:"changed"`
	Written bool   `json:"written,omitempty"`

	// Err is the recognition error that stopped the file from being read.
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// Engine processes sources. Recognition errors are reported in the
// Result; the returned error is for everything else.
type Engine interface {
	Run(filePath string) (Result, error)
	RunSource(name string, source []byte) (Result, error)
}

// SimplifyEngine is the Engine of the simplify and watch commands.
type SimplifyEngine struct {
	simplifier *simplify.Simplifier
	write      bool
	logger     *zap.Logger
}

var _ Engine = (*SimplifyEngine)(nil)

// NewSimplifyEngine creates an engine. With write set, files whose
// simplified form differs are rewritten in place.
func NewSimplifyEngine(logger *zap.Logger, write bool) *SimplifyEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimplifyEngine{
		simplifier: simplify.New(logger),
		write:      write,
		logger:     logger,
	}
}

func (e *SimplifyEngine) Run(filePath string) (Result, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return Result{File: filePath}, err
	}
	source, err := os.ReadFile(filePath)
	if err != nil {
		return Result{File: filePath}, fmt.Errorf("reading %s: %w", filePath, err)
	}

	res, err := e.RunSource(filePath, source)
	if err != nil || !res.Changed || !e.write {
		return res, err
	}

	if err := os.WriteFile(filePath, []byte(res.Output+"\n"), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("writing %s: %w", filePath, err)
	}
	res.Written = true
	e.logger.Info("simplified file", zap.String("file", filePath))
	return res, nil
}

func (e *SimplifyEngine) RunSource(name string, source []byte) (Result, error) {
	res := Result{File: name}
	out, err := e.simplifier.Simplify(string(source))
	if err != nil {
		if errors.Is(err, recognizer.ErrRecognition) {
			res.Err = err
			res.Error = err.Error()
			return res, nil
		}
		return res, err
	}
	res.Output = out
	res.Changed = strings.TrimSpace(string(source)) != out
	return res, nil
}
