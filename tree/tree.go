// Package tree defines the tree contract the visitor and filters work on,
// a general purpose implementation, and a cursor that serializes a tree
// into a symbol stream for tree-grammar rules.
package tree

import (
	"strings"

	"github.com/gnolang/recog/recognizer"
)

// Reserved node types. Types produced by a lexer start at MinTokenType.
const (
	Invalid      = 0
	Down         = 2 // navigation: descend into children
	Up           = 3 // navigation: return to the parent
	MinTokenType = 4
)

// Node is the tree abstraction. Implementations are expected to be
// pointer types: the visitor compares nodes by identity.
type Node interface {
	Type() int
	Text() string
	ChildCount() int
	Child(i int) Node
	SetChild(i int, child Node)
}

// nilNode is implemented by nodes that can act as a flat list root.
type nilNode interface {
	IsNil() bool
}

// IsNil reports whether n is absent or a list root without a token.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	if nn, ok := n.(nilNode); ok {
		return nn.IsNil()
	}
	return false
}

// CommonTree is a Node built from a token. A CommonTree without a token
// is a list root: it only groups its children.
type CommonTree struct {
	Token    *recognizer.Token
	children []Node
}

var _ Node = (*CommonTree)(nil)

// New returns a leaf for tok.
func New(tok *recognizer.Token) *CommonTree {
	return &CommonTree{Token: tok}
}

// NewNil returns an empty list root.
func NewNil() *CommonTree {
	return &CommonTree{}
}

// NewWith returns a node of the given type and text, not tied to any
// token of the input. Rewrites use it to build fresh nodes.
func NewWith(ttype int, text string, children ...Node) *CommonTree {
	t := New(&recognizer.Token{Type: ttype, Text: text, Index: -1})
	for _, c := range children {
		t.AddChild(c)
	}
	return t
}

func (t *CommonTree) IsNil() bool { return t == nil || t.Token == nil }

func (t *CommonTree) Type() int {
	if t.Token == nil {
		return Invalid
	}
	return t.Token.Type
}

func (t *CommonTree) Text() string {
	if t.Token == nil {
		return ""
	}
	return t.Token.Text
}

func (t *CommonTree) ChildCount() int { return len(t.children) }

func (t *CommonTree) Child(i int) Node {
	if i < 0 || i >= len(t.children) {
		return nil
	}
	return t.children[i]
}

func (t *CommonTree) SetChild(i int, child Node) {
	if i < 0 || i >= len(t.children) {
		return
	}
	t.children[i] = child
}

// AddChild appends child. The children of a list root are spliced in
// instead of the root itself.
func (t *CommonTree) AddChild(child Node) {
	if child == nil {
		return
	}
	if ct, ok := child.(*CommonTree); ok && ct.IsNil() {
		t.children = append(t.children, ct.children...)
		return
	}
	t.children = append(t.children, child)
}

// Children returns a copy of the child list.
func (t *CommonTree) Children() []Node {
	out := make([]Node, len(t.children))
	copy(out, t.children)
	return out
}

func (t *CommonTree) String() string { return String(t) }

// String renders n as an s-expression: "(root child child)" for inner
// nodes, the text for leaves, and space separated children for list roots.
func String(n Node) string {
	var b strings.Builder
	writeTree(&b, n)
	return b.String()
}

func writeTree(b *strings.Builder, n Node) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	if n.ChildCount() == 0 {
		if IsNil(n) {
			b.WriteString("nil")
			return
		}
		b.WriteString(n.Text())
		return
	}

	list := IsNil(n)
	if !list {
		b.WriteByte('(')
		b.WriteString(n.Text())
		b.WriteByte(' ')
	}
	for i := 0; i < n.ChildCount(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeTree(b, n.Child(i))
	}
	if !list {
		b.WriteByte(')')
	}
}
