package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gnolang/recog/dfa"
	"github.com/gnolang/recog/recognizer"
	"github.com/gnolang/recog/tree"
)

func tokenTypes(tokens recognizer.TokenList) []int {
	out := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		types []int
		texts []string
	}{
		{
			name:  "empty",
			input: "",
			types: []int{recognizer.EOF},
			texts: []string{"<EOF>"},
		},
		{
			name:  "keyword",
			input: "vec",
			types: []int{VEC, recognizer.EOF},
			texts: []string{"vec", "<EOF>"},
		},
		{
			name:  "keyword prefixes are identifiers",
			input: "v ve vecx vex",
			types: []int{ID, ID, ID, ID, recognizer.EOF},
			texts: []string{"v", "ve", "vecx", "vex", "<EOF>"},
		},
		{
			name:  "keyword followed by a digit",
			input: "vec1",
			types: []int{VEC, INT, recognizer.EOF},
			texts: []string{"vec", "1", "<EOF>"},
		},
		{
			name:  "expression",
			input: "(* 42 (vec x\t-/+))",
			types: []int{LPAREN, MUL, INT, LPAREN, VEC, ID, MINUS, DIV, PLUS, RPAREN, RPAREN, recognizer.EOF},
			texts: []string{"(", "*", "42", "(", "vec", "x", "-", "/", "+", ")", ")", "<EOF>"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.types, tokenTypes(tokens))

			texts := make([]string, 0, len(tokens))
			for i, tok := range tokens {
				texts = append(texts, tok.Text)
				assert.Equal(t, i, tok.Index)
			}
			assert.Equal(t, tt.texts, texts)
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	t.Parallel()
	tokens, err := Tokenize("(+\n  ab 7)")
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	ab := tokens[2]
	assert.Equal(t, "ab", ab.Text)
	assert.Equal(t, 2, ab.Line)
	assert.Equal(t, 3, ab.Column)
	assert.Equal(t, 5, ab.Start)
}

func TestTokenize_NoViableAlt(t *testing.T) {
	t.Parallel()
	_, err := Tokenize("(+ 1\n  #)")
	require.Error(t, err)
	assert.ErrorIs(t, err, recognizer.ErrRecognition)

	var nva *dfa.NoViableAltError
	require.ErrorAs(t, err, &nva)
	assert.Equal(t, tokensDecision, nva.Decision)
	assert.Equal(t, '#', rune(nva.Symbol))
	assert.Equal(t, 2, nva.Line)
	assert.Equal(t, 3, nva.Column)
	assert.Contains(t, err.Error(), "Tokens :")
}

func TestTokenize_WideRunes(t *testing.T) {
	t.Parallel()
	// U+10028 and U+10029 must not be read as '(' and ')'
	_, err := Tokenize("\U00010028+ 1 2\U00010029")

	var nva *dfa.NoViableAltError
	require.ErrorAs(t, err, &nva)
	assert.Equal(t, rune(0x10028), rune(nva.Symbol))
	assert.Equal(t, 1, nva.Line)
	assert.Equal(t, 1, nva.Column)

	_, err = Tokenize("x\U00010061")
	require.ErrorAs(t, err, &nva)
	assert.Equal(t, rune(0x10061), rune(nva.Symbol))
	assert.Equal(t, 2, nva.Column)
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "atom", input: "42", want: "42"},
		{name: "nested", input: "(* 4 (vec 0 5))", want: "(* 4 (vec 0 5))"},
		{name: "root only", input: "(vec)", want: "vec"},
		{name: "several trees", input: "(+ 1 2)\n(- x y)", want: "(+ 1 2) (- x y)"},
		{name: "nothing", input: "  ", want: "nil"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root, tokens, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tree.String(root))
			assert.Equal(t, recognizer.EOF, tokens[len(tokens)-1].Type)
		})
	}
}

func TestParse_NodesKeepTokens(t *testing.T) {
	t.Parallel()
	root, tokens, err := Parse("(+ 1 2)")
	require.NoError(t, err)

	s := tree.NewNodeStream(root, tokens)
	assert.Equal(t, []int{PLUS, tree.Down, INT, INT, tree.Up}, []int{s.LA(1), s.LA(2), s.LA(3), s.LA(4), s.LA(5)})
	assert.Same(t, tokens[2], s.Token(s.LT(3)))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		input     string
		mismatch  bool
		line, col int
	}{
		{name: "unclosed", input: "(+ 1", mismatch: true, line: 1, col: 5},
		{name: "list without root", input: "((+ 1 2))", mismatch: true, line: 1, col: 2},
		{name: "stray close", input: "1 )", line: 1, col: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, recognizer.ErrRecognition)

			if tt.mismatch {
				var m *recognizer.MismatchedError
				require.ErrorAs(t, err, &m)
				assert.Equal(t, tt.line, m.Line)
				assert.Equal(t, tt.col, m.Column)
				return
			}
			var nva *dfa.NoViableAltError
			require.ErrorAs(t, err, &nva)
			assert.Equal(t, treeDecision, nva.Decision)
			assert.Equal(t, RPAREN, nva.Symbol)
			assert.Equal(t, tt.line, nva.Line)
			assert.Equal(t, tt.col, nva.Column)
		})
	}
}

func TestParse_TracesPredictions(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	_, _, err := Parse("(vec 1)", WithLogger(zap.New(core)))
	require.NoError(t, err)

	decisions := map[int64]int{}
	for _, e := range logs.FilterMessage("accept").All() {
		decisions[e.ContextMap()["decision"].(int64)]++
	}
	// one lexer prediction per token (whitespace included), one parser
	// prediction per tree
	assert.Equal(t, 5, decisions[tokensDecision])
	assert.Equal(t, 2, decisions[treeDecision])
}

func TestTypeName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "VEC", TypeName(VEC))
	assert.Equal(t, "EOF", TypeName(recognizer.EOF))
	assert.Equal(t, "<99>", TypeName(99))
}
