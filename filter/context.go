package filter

import (
	"go.uber.org/zap"

	"github.com/gnolang/recog/dfa"
	"github.com/gnolang/recog/recognizer"
	"github.com/gnolang/recog/tree"
)

// Context is the parse state of one rule application. ApplyOnce builds a
// fresh Context for every call, so nothing a failed attempt leaves behind
// can reach the next one.
type Context struct {
	state  *recognizer.SharedState
	input  *tree.NodeStream
	node   tree.Node
	result tree.Node
	logger *zap.Logger
}

func newContext(node tree.Node, tokens recognizer.TokenStream, logger *zap.Logger) *Context {
	return &Context{
		state:  recognizer.NewSharedState(),
		input:  tree.NewNodeStream(node, tokens),
		node:   node,
		logger: logger,
	}
}

// State returns the recognizer state of this application.
func (c *Context) State() *recognizer.SharedState { return c.state }

// Input returns the cursor over the node the rule is applied to.
func (c *Context) Input() *tree.NodeStream { return c.input }

// Tokens returns the token stream the whole tree was built from.
func (c *Context) Tokens() recognizer.TokenStream { return c.input.TokenStream() }

// Node returns the node the rule is applied to.
func (c *Context) Node() tree.Node { return c.node }

// Logger returns the filter's logger.
func (c *Context) Logger() *zap.Logger { return c.logger }

// Failed reports whether the application has failed.
func (c *Context) Failed() bool { return c.state.Failed }

func (c *Context) LA(k int) int       { return c.input.LA(k) }
func (c *Context) LT(k int) tree.Node { return c.input.LT(k) }

// Replace makes n the result of the application. It is discarded if the
// rule does not complete successfully.
func (c *Context) Replace(n tree.Node) { c.result = n }

// Match consumes the next node if it has type ttype and returns it.
func (c *Context) Match(ttype int) (tree.Node, error) {
	n := c.input.LT(1)
	if n.Type() != ttype {
		return nil, c.mismatch(ttype)
	}
	c.input.Consume()
	return n, nil
}

// MatchAny consumes the next node together with its whole subtree, as a
// wildcard in a tree pattern does, and returns it. Navigation nodes and
// the end of the stream do not match.
func (c *Context) MatchAny() (tree.Node, error) {
	n := c.input.LT(1)
	switch n.Type() {
	case recognizer.EOF, tree.Down, tree.Up:
		return nil, c.mismatch(tree.Invalid)
	}
	c.input.Consume()
	if c.input.LA(1) != tree.Down {
		return n, nil
	}
	c.input.Consume()
	for level := 1; level > 0; {
		switch c.input.LA(1) {
		case tree.Down:
			level++
		case tree.Up:
			level--
		case recognizer.EOF:
			return nil, c.mismatch(tree.Up)
		}
		c.input.Consume()
	}
	return n, nil
}

// Predict runs decision d on the input. A failed speculative prediction
// is reported as recognizer.ErrSpeculationFailed so rules can return it.
func (c *Context) Predict(d *dfa.DFA) (int, error) {
	alt, err := d.Predict(c.state, c.input)
	if err != nil {
		return 0, err
	}
	if c.state.Failed {
		return 0, recognizer.ErrSpeculationFailed
	}
	return alt, nil
}

func (c *Context) mismatch(expecting int) error {
	if c.state.Speculating() {
		c.state.Fail()
		return recognizer.ErrSpeculationFailed
	}
	found := c.input.LT(1)
	err := &recognizer.MismatchedError{
		Expecting: expecting,
		Found:     found.Type(),
		Text:      found.Text(),
		Index:     c.input.Index(),
	}
	if tok := c.input.Token(found); tok != nil {
		err.Line = tok.Line
		err.Column = tok.Column
	}
	return err
}
