package tree

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	kind string
	text string
}

func recordingActions(events *[]event) (Action, Action) {
	pre := func(n Node) (Node, error) {
		*events = append(*events, event{"pre", n.Text()})
		return n, nil
	}
	post := func(n Node) (Node, error) {
		*events = append(*events, event{"post", n.Text()})
		return n, nil
	}
	return pre, post
}

func TestVisit_Order(t *testing.T) {
	t.Parallel()
	root := node(typeA, "r", node(typeB, "x"), node(typeB, "y"))

	var events []event
	pre, post := recordingActions(&events)
	got, err := NewVisitor().Visit(root, pre, post)
	require.NoError(t, err)
	assert.Same(t, root, got.(*CommonTree))

	assert.Equal(t, []event{
		{"pre", "r"},
		{"pre", "x"},
		{"post", "x"},
		{"pre", "y"},
		{"post", "y"},
		{"post", "r"},
	}, events)
}

func TestVisit_Completeness(t *testing.T) {
	t.Parallel()
	// (a (b d d) c (b (c d)))
	root := node(typeA, "a",
		node(typeB, "b1", node(typeD, "d1"), node(typeD, "d2")),
		node(typeC, "c1"),
		node(typeB, "b2", node(typeC, "c2", node(typeD, "d3"))),
	)
	const n = 8

	var events []event
	pre, post := recordingActions(&events)
	_, err := NewVisitor().Visit(root, pre, post)
	require.NoError(t, err)

	preAt := map[string]int{}
	postAt := map[string]int{}
	for i, e := range events {
		if e.kind == "pre" {
			preAt[e.text] = i
		} else {
			postAt[e.text] = i
		}
	}
	assert.Len(t, preAt, n)
	assert.Len(t, postAt, n)
	assert.Len(t, events, 2*n)

	for name := range preAt {
		assert.Less(t, preAt[name], postAt[name], name)
	}
	// a descendant finishes before its ancestor and starts after it
	for _, pair := range [][2]string{{"a", "b1"}, {"b1", "d2"}, {"b2", "d3"}, {"c2", "d3"}} {
		ancestor, descendant := pair[0], pair[1]
		assert.Less(t, preAt[ancestor], preAt[descendant])
		assert.Less(t, postAt[descendant], postAt[ancestor])
	}
}

func TestVisit_PreReplacementIsDescended(t *testing.T) {
	t.Parallel()
	root := node(typeA, "r", node(typeB, "old", node(typeD, "hidden")))
	replacement := node(typeC, "new", node(typeD, "n1"), node(typeD, "n2"))

	var visited []string
	pre := func(n Node) (Node, error) {
		visited = append(visited, n.Text())
		if n.Text() == "old" {
			return replacement, nil
		}
		return nil, nil // keep
	}

	got, err := NewVisitor().Visit(root, pre, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "old", "n1", "n2"}, visited)
	assert.Equal(t, "(r (new n1 n2))", String(got))
}

func TestVisit_PostReplacementIsStoredInParent(t *testing.T) {
	t.Parallel()
	root := node(typeA, "+", node(typeB, "1"), node(typeB, "2"))

	post := func(n Node) (Node, error) {
		if n.ChildCount() == 0 {
			return node(typeB, fmt.Sprintf("<%s>", n.Text())), nil
		}
		return n, nil
	}

	got, err := NewVisitor().Visit(root, nil, post)
	require.NoError(t, err)
	assert.Equal(t, "(+ <1> <2>)", String(got))

	// a replaced root is returned to the caller
	leaf := node(typeB, "x")
	got, err = NewVisitor().Visit(leaf, nil, post)
	require.NoError(t, err)
	assert.Equal(t, "<x>", String(got))
}

func TestVisit_ErrorStopsTraversal(t *testing.T) {
	t.Parallel()
	root := node(typeA, "r", node(typeB, "x"), node(typeB, "boom"), node(typeB, "y"))
	errBoom := errors.New("boom")

	var visited []string
	pre := func(n Node) (Node, error) {
		visited = append(visited, n.Text())
		if n.Text() == "boom" {
			return nil, errBoom
		}
		return n, nil
	}

	_, err := NewVisitor().Visit(root, pre, nil)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"r", "x", "boom"}, visited)
}

func TestVisit_ListRootAndNil(t *testing.T) {
	t.Parallel()
	list := NewNil()
	list.AddChild(node(typeA, "a"))
	list.AddChild(node(typeB, "b"))

	var events []event
	pre, post := recordingActions(&events)
	_, err := NewVisitor().Visit(list, pre, post)
	require.NoError(t, err)
	assert.Len(t, events, 4, "the list root itself is not visited")

	got, err := NewVisitor().Visit(nil, pre, post)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
