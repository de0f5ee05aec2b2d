package sexpr

import (
	"github.com/gnolang/recog/dfa"
	"github.com/gnolang/recog/recognizer"
	"github.com/gnolang/recog/tree"
)

const (
	treeDecision    = 2
	treeDescription = "tree : ( atom | '(' atom ( tree )* ')' );"
)

// TreeDecision is the encoded DFA of the tree rule: 1 atom, 2 list.
var TreeDecision = dfa.Encoded{
	EOT:        dfa.Units("\u0003\uffff"),
	EOF:        dfa.Units("\u0003\uffff"),
	Min:        dfa.Units("\u0001\u0004\u0002\u0000"),
	Max:        dfa.Units("\u0001\u000c\u0002\u0000"),
	Accept:     dfa.Units("\u0001\u0000\u0001\u0002\u0001\u0001"),
	Special:    dfa.Units("\u0003\uffff"),
	Transition: [][]uint16{dfa.Units("\u0001\u0001\u0001\uffff\u0007\u0002"), nil, nil},
}

var treeTables = dfa.MustTables(TreeDecision)

// tokenCursor is an IntStream over token types.
type tokenCursor struct {
	tokens recognizer.TokenList
	p      int
	marks  []int
}

var (
	_ recognizer.IntStream  = (*tokenCursor)(nil)
	_ recognizer.Positioner = (*tokenCursor)(nil)
)

// LT returns the token k positions ahead. The list always ends with EOF,
// which is returned past the end.
func (c *tokenCursor) LT(k int) *recognizer.Token {
	i := c.p + k - 1
	if i >= len(c.tokens) {
		i = len(c.tokens) - 1
	}
	return c.tokens[i]
}

func (c *tokenCursor) LA(k int) int {
	if k < 1 {
		return recognizer.EOF
	}
	return c.LT(k).Type
}

func (c *tokenCursor) Consume() {
	if c.p < len(c.tokens)-1 {
		c.p++
	}
}

func (c *tokenCursor) Mark() int {
	c.marks = append(c.marks, c.p)
	return len(c.marks)
}

func (c *tokenCursor) Rewind(marker int) {
	if marker < 1 || marker > len(c.marks) {
		return
	}
	c.p = c.marks[marker-1]
	c.marks = c.marks[:marker-1]
}

func (c *tokenCursor) Index() int  { return c.p }
func (c *tokenCursor) Line() int   { return c.LT(1).Line }
func (c *tokenCursor) Column() int { return c.LT(1).Column }

type parser struct {
	input   *tokenCursor
	decider *dfa.DFA
}

// Parse reads every tree in src. A single tree is returned as is; several
// are returned under a list root. The token list the trees were built
// from is returned with them.
func Parse(src string, opts ...Option) (tree.Node, recognizer.TokenList, error) {
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		return nil, nil, err
	}

	o := newOptions(opts)
	p := &parser{
		input: &tokenCursor{tokens: tokens},
		decider: dfa.New(treeDecision, treeTables,
			dfa.WithDescription(treeDescription),
			dfa.WithLogger(o.logger),
		),
	}

	var trees []tree.Node
	for p.input.LA(1) != recognizer.EOF {
		t, err := p.tree()
		if err != nil {
			return nil, nil, err
		}
		trees = append(trees, t)
	}
	if len(trees) == 1 {
		return trees[0], tokens, nil
	}
	root := tree.NewNil()
	for _, t := range trees {
		root.AddChild(t)
	}
	return root, tokens, nil
}

func (p *parser) tree() (tree.Node, error) {
	alt, err := p.decider.Predict(nil, p.input)
	if err != nil {
		return nil, err
	}
	if alt == 1 {
		return p.atom()
	}

	if _, err := p.match(LPAREN); err != nil {
		return nil, err
	}
	root, err := p.atom()
	if err != nil {
		return nil, err
	}
	for la := p.input.LA(1); la == LPAREN || isAtom(la); la = p.input.LA(1) {
		child, err := p.tree()
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}
	if _, err := p.match(RPAREN); err != nil {
		return nil, err
	}
	return root, nil
}

func (p *parser) atom() (*tree.CommonTree, error) {
	tok := p.input.LT(1)
	if !isAtom(tok.Type) {
		return nil, p.mismatch(ID)
	}
	p.input.Consume()
	return tree.New(tok), nil
}

func (p *parser) match(ttype int) (*recognizer.Token, error) {
	tok := p.input.LT(1)
	if tok.Type != ttype {
		return nil, p.mismatch(ttype)
	}
	p.input.Consume()
	return tok, nil
}

func (p *parser) mismatch(expecting int) error {
	tok := p.input.LT(1)
	return &recognizer.MismatchedError{
		Expecting: expecting,
		Found:     tok.Type,
		Text:      tok.Text,
		Index:     tok.Index,
		Line:      tok.Line,
		Column:    tok.Column,
	}
}
