package tree

// Action is applied to a node during a visit. It returns the node that
// takes the visited node's place, or nil to keep it.
type Action func(n Node) (Node, error)

// Visitor performs depth-first traversals with actions in preorder and
// postorder position.
type Visitor struct{}

// NewVisitor returns a Visitor.
func NewVisitor() *Visitor {
	return &Visitor{}
}

// Visit walks t depth first. pre runs on a node before its children and
// post after all of them; either may be nil. When pre replaces a node the
// walk continues into the replacement's children, and a replaced child
// is stored back into its parent. List roots are walked through without
// running actions on them. The first action error stops the walk.
//
// Visit returns the (possibly replaced) root.
func (v *Visitor) Visit(t Node, pre, post Action) (Node, error) {
	if t == nil {
		return nil, nil
	}

	list := IsNil(t)
	if pre != nil && !list {
		r, err := pre(t)
		if err != nil {
			return t, err
		}
		if r != nil {
			t = r
		}
	}

	for i := 0; i < t.ChildCount(); i++ {
		child := t.Child(i)
		result, err := v.Visit(child, pre, post)
		if err != nil {
			return t, err
		}
		if result != child {
			t.SetChild(i, result)
		}
	}

	if post != nil && !list {
		r, err := post(t)
		if err != nil {
			return t, err
		}
		if r != nil {
			t = r
		}
	}
	return t, nil
}
