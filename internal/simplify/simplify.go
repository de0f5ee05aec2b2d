// Package simplify rewrites arithmetic s-expressions with a tree filter.
//
// On the way down, scalar multiplication is distributed over vectors:
//
//	(* 4 (vec 0 5)) => (vec (* 4 0) (* 4 5))
//
// On the way up, additions and multiplications by neutral or absorbing
// literals are removed and operations on two literals are folded, so the
// example above ends as (vec 0 20).
package simplify

import (
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/recog/dfa"
	"github.com/gnolang/recog/filter"
	"github.com/gnolang/recog/internal/sexpr"
	"github.com/gnolang/recog/recognizer"
	"github.com/gnolang/recog/tree"
)

// Simplifier parses and simplifies source text. It holds no per-call
// state and may be shared.
type Simplifier struct {
	folds  *dfa.DFA
	logger *zap.Logger
}

// New returns a Simplifier logging to logger, which may be nil.
func New(logger *zap.Logger) *Simplifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simplifier{
		folds: dfa.New(foldDecision, foldTables,
			dfa.WithDescription(foldDescription),
			dfa.WithSpecialStates(zeroOperand),
			dfa.WithLogger(logger),
		),
		logger: logger,
	}
}

// Simplify parses src, simplifies every tree in it and prints the
// results, one tree per line.
func Simplify(src string) (string, error) {
	return New(nil).Simplify(src)
}

func (s *Simplifier) Simplify(src string) (string, error) {
	root, tokens, err := sexpr.Parse(src)
	if err != nil {
		return "", err
	}
	root, err = s.Tree(root, tokens)
	if err != nil {
		return "", err
	}
	return Format(root), nil
}

// Tree simplifies root, built from tokens, and returns the new root.
func (s *Simplifier) Tree(root tree.Node, tokens recognizer.TokenStream) (tree.Node, error) {
	f := filter.New(tokens,
		filter.WithTopdown(distribute),
		filter.WithBottomup(s.fold),
		filter.WithLogger(s.logger),
	)
	return f.Downup(root)
}

// Format prints root, putting the trees of a list root on separate lines.
// A list root without trees, the result of parsing blank input, prints as
// the empty string.
func Format(root tree.Node) string {
	if root == nil || !tree.IsNil(root) {
		return tree.String(root)
	}
	lines := make([]string, 0, root.ChildCount())
	for i := 0; i < root.ChildCount(); i++ {
		lines = append(lines, tree.String(root.Child(i)))
	}
	return strings.Join(lines, "\n")
}
