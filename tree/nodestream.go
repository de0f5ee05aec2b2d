package tree

import "github.com/gnolang/recog/recognizer"

// navNode is an imaginary node emitted by NodeStream.
type navNode struct {
	ttype int
	text  string
}

func (n *navNode) Type() int          { return n.ttype }
func (n *navNode) Text() string       { return n.text }
func (n *navNode) ChildCount() int    { return 0 }
func (n *navNode) Child(int) Node     { return nil }
func (n *navNode) SetChild(int, Node) {}

var (
	downNode = &navNode{ttype: Down, text: "DOWN"}
	upNode   = &navNode{ttype: Up, text: "UP"}
	eofNode  = &navNode{ttype: recognizer.EOF, text: "EOF"}
)

// NodeStream is a cursor over a tree serialized in document order with
// navigation nodes: (A B (C D)) reads as A DOWN B C DOWN D UP UP.
// LA returns node types so a NodeStream can drive DFA prediction.
type NodeStream struct {
	root   Node
	tokens recognizer.TokenStream
	nodes  []Node
	p      int
	marks  []int
}

var _ recognizer.IntStream = (*NodeStream)(nil)

// NewNodeStream creates a cursor rooted at root. tokens is the stream the
// tree was built from; it is kept so rules can reach the original token
// text and positions, and may be nil.
func NewNodeStream(root Node, tokens recognizer.TokenStream) *NodeStream {
	s := &NodeStream{root: root, tokens: tokens}
	s.fill(root)
	return s
}

func (s *NodeStream) fill(n Node) {
	if n == nil {
		return
	}
	list := IsNil(n)
	if !list {
		s.nodes = append(s.nodes, n)
	}
	count := n.ChildCount()
	if count == 0 {
		return
	}
	if !list {
		s.nodes = append(s.nodes, downNode)
	}
	for i := 0; i < count; i++ {
		s.fill(n.Child(i))
	}
	if !list {
		s.nodes = append(s.nodes, upNode)
	}
}

// Root returns the node the stream was built from.
func (s *NodeStream) Root() Node { return s.root }

// TokenStream returns the token stream associated with the tree.
func (s *NodeStream) TokenStream() recognizer.TokenStream { return s.tokens }

// SetTokenStream associates tokens with the stream.
func (s *NodeStream) SetTokenStream(tokens recognizer.TokenStream) { s.tokens = tokens }

// LT returns the node k positions ahead (k >= 1). Past the end it returns
// a node of type recognizer.EOF.
func (s *NodeStream) LT(k int) Node {
	if k < 1 {
		return eofNode
	}
	i := s.p + k - 1
	if i >= len(s.nodes) {
		return eofNode
	}
	return s.nodes[i]
}

func (s *NodeStream) LA(k int) int { return s.LT(k).Type() }

func (s *NodeStream) Consume() {
	if s.p < len(s.nodes) {
		s.p++
	}
}

func (s *NodeStream) Mark() int {
	s.marks = append(s.marks, s.p)
	return len(s.marks)
}

func (s *NodeStream) Rewind(marker int) {
	if marker < 1 || marker > len(s.marks) {
		return
	}
	s.p = s.marks[marker-1]
	s.marks = s.marks[:marker-1]
}

func (s *NodeStream) Index() int { return s.p }

// Size returns the number of serialized nodes, navigation nodes included.
func (s *NodeStream) Size() int { return len(s.nodes) }

// Token returns the token n was built from, if it is a CommonTree with a
// token from the associated stream.
func (s *NodeStream) Token(n Node) *recognizer.Token {
	ct, ok := n.(*CommonTree)
	if !ok || ct.Token == nil {
		return nil
	}
	if s.tokens != nil && ct.Token.Index >= 0 {
		if tok := s.tokens.Get(ct.Token.Index); tok != nil {
			return tok
		}
	}
	return ct.Token
}
