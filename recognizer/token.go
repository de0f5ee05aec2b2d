package recognizer

import "fmt"

// Token is a lexed symbol with enough position information to render
// diagnostics against the original source.
type Token struct {
	Type   int
	Text   string
	Index  int // position in its token stream
	Start  int // rune offset in the source
	Line   int
	Column int
}

func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[@%d,%q<%d>,%d:%d]", t.Index, t.Text, t.Type, t.Line, t.Column)
}

// TokenStream gives random access to the tokens a tree was built from.
type TokenStream interface {
	Get(i int) *Token
	Size() int
}

// TokenList is a TokenStream backed by a slice.
type TokenList []*Token

func (l TokenList) Get(i int) *Token {
	if i < 0 || i >= len(l) {
		return nil
	}
	return l[i]
}

func (l TokenList) Size() int { return len(l) }
