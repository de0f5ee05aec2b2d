package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnolang/recog/recognizer"
)

const (
	typeA = MinTokenType + iota
	typeB
	typeC
	typeD
)

func node(ttype int, text string, children ...Node) *CommonTree {
	return NewWith(ttype, text, children...)
}

func TestCommonTree_Basics(t *testing.T) {
	t.Parallel()
	tok := &recognizer.Token{Type: typeA, Text: "a", Index: 0}
	root := New(tok)
	assert.Equal(t, typeA, root.Type())
	assert.Equal(t, "a", root.Text())
	assert.False(t, root.IsNil())

	b := node(typeB, "b")
	root.AddChild(b)
	root.AddChild(nil)
	assert.Equal(t, 1, root.ChildCount())
	assert.Same(t, b, root.Child(0).(*CommonTree))
	assert.Nil(t, root.Child(1))
	assert.Nil(t, root.Child(-1))

	c := node(typeC, "c")
	root.SetChild(0, c)
	root.SetChild(5, b) // ignored
	assert.Equal(t, []Node{c}, root.Children())
}

func TestCommonTree_ListRoot(t *testing.T) {
	t.Parallel()
	list := NewNil()
	assert.True(t, list.IsNil())
	assert.Equal(t, Invalid, list.Type())
	assert.Equal(t, "", list.Text())

	list.AddChild(node(typeB, "b"))
	list.AddChild(node(typeC, "c"))

	root := node(typeA, "a")
	root.AddChild(list)
	assert.Equal(t, 2, root.ChildCount(), "list children are spliced")

	var typedNil *CommonTree
	assert.True(t, IsNil(typedNil))
	assert.True(t, IsNil(nil))
	assert.False(t, IsNil(root))
}

func TestString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		tree Node
		want string
	}{
		{name: "nil", tree: nil, want: "nil"},
		{name: "empty list", tree: NewNil(), want: "nil"},
		{name: "leaf", tree: node(typeA, "x"), want: "x"},
		{
			name: "nested",
			tree: node(typeA, "*", node(typeB, "4"), node(typeC, "vec", node(typeB, "0"), node(typeB, "5"))),
			want: "(* 4 (vec 0 5))",
		},
		{
			name: "list",
			tree: func() Node {
				l := NewNil()
				l.AddChild(node(typeA, "a"))
				l.AddChild(node(typeB, "+", node(typeA, "1"), node(typeA, "2")))
				return l
			}(),
			want: "a (+ 1 2)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, String(tt.tree))
		})
	}
}
