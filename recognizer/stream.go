package recognizer

// EOF is the symbol returned by LA past the end of the input.
const EOF = -1

// IntStream is a cursor over a stream of integer symbols that supports
// speculative lookahead.
type IntStream interface {
	// Mark records the current position and returns a marker for Rewind.
	Mark() int

	// Rewind restores the position recorded by marker and releases it
	// together with every marker taken after it.
	Rewind(marker int)

	// Consume advances one symbol.
	Consume()

	// LA returns the symbol k positions ahead (k >= 1), or EOF.
	LA(k int) int

	// Index returns the current position.
	Index() int
}

// Positioner is implemented by streams that can report a line/column
// position for the current symbol.
type Positioner interface {
	Line() int
	Column() int
}

type charState struct {
	index  int
	line   int
	column int
}

// StringStream is an IntStream over the runes of a string.
// Lines start at 1, columns at 1.
type StringStream struct {
	data    []rune
	cur     charState
	markers []charState
}

var (
	_ IntStream  = (*StringStream)(nil)
	_ Positioner = (*StringStream)(nil)
)

// NewStringStream creates a stream positioned at the first rune of input.
func NewStringStream(input string) *StringStream {
	return &StringStream{
		data: []rune(input),
		cur:  charState{line: 1, column: 1},
	}
}

func (s *StringStream) Mark() int {
	s.markers = append(s.markers, s.cur)
	return len(s.markers)
}

func (s *StringStream) Rewind(marker int) {
	if marker < 1 || marker > len(s.markers) {
		return
	}
	s.cur = s.markers[marker-1]
	s.markers = s.markers[:marker-1]
}

func (s *StringStream) Consume() {
	if s.cur.index >= len(s.data) {
		return
	}
	if s.data[s.cur.index] == '\n' {
		s.cur.line++
		s.cur.column = 1
	} else {
		s.cur.column++
	}
	s.cur.index++
}

func (s *StringStream) LA(k int) int {
	if k < 1 {
		return EOF
	}
	i := s.cur.index + k - 1
	if i >= len(s.data) {
		return EOF
	}
	return int(s.data[i])
}

func (s *StringStream) Index() int  { return s.cur.index }
func (s *StringStream) Line() int   { return s.cur.line }
func (s *StringStream) Column() int { return s.cur.column }

// Size returns the number of runes in the stream.
func (s *StringStream) Size() int { return len(s.data) }

// Substring returns the runes in [start, stop).
func (s *StringStream) Substring(start, stop int) string {
	if start < 0 {
		start = 0
	}
	if stop > len(s.data) {
		stop = len(s.data)
	}
	if start >= stop {
		return ""
	}
	return string(s.data[start:stop])
}
