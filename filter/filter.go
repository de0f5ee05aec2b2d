// Package filter applies tree-grammar rules to a tree without parsing it
// as a whole.
//
// Most rules do not match most nodes, so a rule is tried speculatively:
// a mismatch is cheap, silent and leaves the node untouched. Downup tries
// one rule on the way down and another on the way up in a single
// depth-first pass, so top-down rewrites (reshaping a subtree) run before
// the bottom-up ones (folding the reshaped children) see the result.
package filter

import (
	"errors"

	"go.uber.org/zap"

	"github.com/gnolang/recog/recognizer"
	"github.com/gnolang/recog/tree"
)

// Rule tries to match the node of ctx and may rewrite it with
// ctx.Replace. Returning an error in the recognizer.ErrRecognition
// category means "did not match".
type Rule func(ctx *Context) error

// Filter applies rules to trees built from one token stream.
type Filter struct {
	tokens   recognizer.TokenStream
	topdown  Rule
	bottomup Rule
	visitor  *tree.Visitor
	logger   *zap.Logger
}

// Option configures a Filter.
type Option func(*Filter)

// WithTopdown sets the rule Downup applies before visiting children.
func WithTopdown(r Rule) Option {
	return func(f *Filter) { f.topdown = r }
}

// WithBottomup sets the rule Downup applies after visiting children.
func WithBottomup(r Rule) Option {
	return func(f *Filter) { f.bottomup = r }
}

// WithLogger sets the logger used to trace rule applications.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a filter for trees built from tokens, which may be nil.
func New(tokens recognizer.TokenStream, opts ...Option) *Filter {
	f := &Filter{
		tokens:  tokens,
		visitor: tree.NewVisitor(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Tokens returns the token stream rules see.
func (f *Filter) Tokens() recognizer.TokenStream { return f.tokens }

// ApplyOnce tries rule on t in isolation and returns the node that takes
// t's place: the rule's replacement, or t itself.
//
// The rule runs with a fresh Context speculating at depth 1, over a node
// stream rooted at t that shares the filter's token stream. Recognition
// failures are swallowed; any other error is returned.
func (f *Filter) ApplyOnce(t tree.Node, rule Rule) (tree.Node, error) {
	if t == nil || rule == nil {
		return t, nil
	}

	ctx := newContext(t, f.tokens, f.logger)
	ctx.state.Backtracking = 1
	err := rule(ctx)
	ctx.state.Backtracking = 0

	if err != nil {
		if errors.Is(err, recognizer.ErrRecognition) {
			f.logger.Debug("rule did not match",
				zap.Int("type", t.Type()), zap.String("text", t.Text()), zap.Error(err))
			return t, nil
		}
		return t, err
	}
	if ctx.state.Failed || ctx.result == nil {
		return t, nil
	}

	f.logger.Debug("rule rewrote node",
		zap.String("from", tree.String(t)), zap.String("to", tree.String(ctx.result)))
	return ctx.result, nil
}

// Downup applies the filter's top-down rule to every node on the way down
// and its bottom-up rule on the way up, and returns the new root.
func (f *Filter) Downup(t tree.Node) (tree.Node, error) {
	return f.DownupWith(t, f.topdown, f.bottomup)
}

// DownupWith is Downup with explicit rules; a nil rule is skipped.
func (f *Filter) DownupWith(t tree.Node, topdown, bottomup Rule) (tree.Node, error) {
	pre := func(n tree.Node) (tree.Node, error) {
		return f.ApplyOnce(n, topdown)
	}
	post := func(n tree.Node) (tree.Node, error) {
		return f.ApplyOnce(n, bottomup)
	}
	return f.visitor.Visit(t, pre, post)
}
