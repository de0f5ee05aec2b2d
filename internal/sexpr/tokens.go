// Package sexpr reads arithmetic s-expressions such as "(* 4 (vec 0 5))"
// into trees.
//
// Both the lexer and the parser choose what to do next by running a
// prediction DFA in the same table format a parser generator emits.
package sexpr

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gnolang/recog/recognizer"
	"github.com/gnolang/recog/tree"
)

// Token types.
const (
	LPAREN = tree.MinTokenType + iota
	RPAREN
	VEC
	ID
	INT
	PLUS
	MINUS
	MUL
	DIV
	WS
)

var typeNames = map[int]string{
	recognizer.EOF: "EOF",
	tree.Down:      "DOWN",
	tree.Up:        "UP",
	LPAREN:         "LPAREN",
	RPAREN:         "RPAREN",
	VEC:            "VEC",
	ID:             "ID",
	INT:            "INT",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	MUL:            "MUL",
	DIV:            "DIV",
	WS:             "WS",
}

// TypeName returns the name of a token type.
func TypeName(ttype int) string {
	if name, ok := typeNames[ttype]; ok {
		return name
	}
	return fmt.Sprintf("<%d>", ttype)
}

var operators = map[int]int{
	'+': PLUS,
	'-': MINUS,
	'*': MUL,
	'/': DIV,
}

func isAtom(ttype int) bool {
	return ttype >= VEC && ttype <= DIV
}

// Option configures the lexer and parser.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger traces predictions to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
