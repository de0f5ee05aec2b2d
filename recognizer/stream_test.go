package recognizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringStream_LookaheadAndConsume(t *testing.T) {
	t.Parallel()
	s := NewStringStream("ab\nc")

	assert.Equal(t, 'a', rune(s.LA(1)))
	assert.Equal(t, 'b', rune(s.LA(2)))
	assert.Equal(t, EOF, s.LA(5))
	assert.Equal(t, EOF, s.LA(0))

	s.Consume()
	s.Consume()
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, 1, s.Line())
	assert.Equal(t, 3, s.Column())

	s.Consume()
	assert.Equal(t, 2, s.Line())
	assert.Equal(t, 1, s.Column())
	assert.Equal(t, 'c', rune(s.LA(1)))

	s.Consume()
	s.Consume() // past the end is a no-op
	assert.Equal(t, 4, s.Index())
	assert.Equal(t, EOF, s.LA(1))
}

func TestStringStream_MarkRewind(t *testing.T) {
	t.Parallel()
	s := NewStringStream("hello")

	s.Consume()
	outer := s.Mark()
	s.Consume()
	inner := s.Mark()
	s.Consume()
	s.Consume()

	s.Rewind(inner)
	assert.Equal(t, 2, s.Index())

	s.Rewind(outer)
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, 1, s.Line())
	assert.Equal(t, 2, s.Column())

	// released markers are ignored
	s.Consume()
	s.Rewind(inner)
	assert.Equal(t, 2, s.Index())
}

func TestStringStream_Substring(t *testing.T) {
	t.Parallel()
	s := NewStringStream("héllo")
	assert.Equal(t, 5, s.Size())
	assert.Equal(t, "él", s.Substring(1, 3))
	assert.Equal(t, "héllo", s.Substring(-1, 10))
	assert.Equal(t, "", s.Substring(3, 2))
}

func TestTokenList(t *testing.T) {
	t.Parallel()
	tok := &Token{Type: 4, Text: "x", Line: 1, Column: 2}
	list := TokenList{tok}

	assert.Equal(t, 1, list.Size())
	assert.Same(t, tok, list.Get(0))
	assert.Nil(t, list.Get(1))
	assert.Nil(t, list.Get(-1))
	assert.Equal(t, `[@0,"x"<4>,1:2]`, tok.String())
}

func TestSharedState(t *testing.T) {
	t.Parallel()
	var nilState *SharedState
	assert.False(t, nilState.Speculating())
	nilState.Fail() // must not panic

	st := NewSharedState()
	assert.False(t, st.Speculating())
	st.Backtracking = 1
	assert.True(t, st.Speculating())
	st.Fail()
	assert.True(t, st.Failed)
}

func TestMismatchedError(t *testing.T) {
	t.Parallel()
	err := error(&MismatchedError{Expecting: 5, Found: 7, Text: "x", Line: 2, Column: 3})

	assert.True(t, errors.Is(err, ErrRecognition))
	assert.True(t, errors.Is(ErrSpeculationFailed, ErrRecognition))
	require.EqualError(t, err, `2:3: mismatched input "x" (type 7) expecting type 5`)

	noPos := &MismatchedError{Expecting: 5, Found: 7, Text: "x", Index: 4}
	assert.Equal(t, `mismatched input "x" (type 7) expecting type 5 at index 4`, noPos.Error())
}
