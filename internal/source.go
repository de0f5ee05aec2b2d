// Package internal holds helpers shared by the command line and the runner.
package internal

import (
	"os"
	"strings"
)

// SourceCode stores the content of a source file as lines.
type SourceCode struct {
	Lines []string
}

// NewSourceCode splits src into lines.
func NewSourceCode(src string) *SourceCode {
	return &SourceCode{Lines: strings.Split(src, "\n")}
}

// ReadSourceCode reads a file and returns its content as a SourceCode.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(string(content)), nil
}

// Line returns line n (1-based), or "" when out of range.
func (s *SourceCode) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}
	return s.Lines[n-1]
}
