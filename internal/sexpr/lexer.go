package sexpr

import (
	"github.com/gnolang/recog/dfa"
	"github.com/gnolang/recog/recognizer"
)

const (
	tokensDecision    = 1
	tokensDescription = "Tokens : ( '(' | ')' | 'vec' | ID | INT | OP | WS );"
)

// TokensDecision is the encoded DFA choosing the next token rule:
// 1 '(', 2 ')', 3 'vec', 4 ID, 5 INT, 6 OP, 7 WS.
//
// States 8 to 10 have read "v", "ve" and "vec". Any letter leads on to
// ID; anything else takes the EOT edge, which ends the keyword or the
// identifier.
var TokensDecision = dfa.Encoded{
	EOT:     dfa.Units("\u0008\uffff\u0002\u0004\u0001\u0003"),
	EOF:     dfa.Units("\u000b\uffff"),
	Min:     dfa.Units("\u0001\u0009\u0007\u0000\u00030"),
	Max:     dfa.Units("\u0001z\u0007\u0000\u0003z"),
	Accept:  dfa.Units("\u0001\u0000\u0001\u0001\u0001\u0002\u0001\u0003\u0001\u0004\u0001\u0005\u0001\u0006\u0001\u0007\u0003\u0000"),
	Special: dfa.Units("\u000b\uffff"),
	Transition: [][]uint16{
		dfa.Units("\u0002\u0007\u0002\uffff\u0001\u0007\u0012\uffff\u0001\u0007\u0007\uffff\u0001\u0001\u0001\u0002" +
			"\u0002\u0006\u0001\uffff\u0001\u0006\u0001\uffff\u0001\u0006\u000a\u0005'\uffff\u0015\u0004" +
			"\u0001\u0008\u0004\u0004"),
		nil,
		nil,
		nil,
		nil,
		nil,
		nil,
		nil,
		dfa.Units("1\uffff\u0004\u0004\u0001\u0009\u0015\u0004"),
		dfa.Units("1\uffff\u0002\u0004\u0001\u000a\u0017\u0004"),
		dfa.Units("1\uffff\u001a\u0004"),
	},
}

var tokensTables = dfa.MustTables(TokensDecision)

// Lexer splits source text into tokens. Whitespace is skipped.
type Lexer struct {
	input   *recognizer.StringStream
	decider *dfa.DFA
	index   int
}

// NewLexer creates a lexer over src.
func NewLexer(src string, opts ...Option) *Lexer {
	o := newOptions(opts)
	return &Lexer{
		input: recognizer.NewStringStream(src),
		decider: dfa.New(tokensDecision, tokensTables,
			dfa.WithDescription(tokensDescription),
			dfa.WithLogger(o.logger),
		),
	}
}

// Next returns the next token. At the end of the input it returns a token
// of type recognizer.EOF, and keeps doing so.
func (l *Lexer) Next() (*recognizer.Token, error) {
	for {
		start, line, column := l.input.Index(), l.input.Line(), l.input.Column()
		tok := &recognizer.Token{Index: l.index, Start: start, Line: line, Column: column}

		if l.input.LA(1) == recognizer.EOF {
			tok.Type = recognizer.EOF
			tok.Text = "<EOF>"
			return tok, nil
		}

		// the lexer never speculates
		alt, err := l.decider.Predict(nil, l.input)
		if err != nil {
			return nil, err
		}
		tok.Type = l.scan(alt)
		if tok.Type == WS {
			continue
		}
		tok.Text = l.input.Substring(start, l.input.Index())
		l.index++
		return tok, nil
	}
}

// scan runs the token rule of alt and returns the token type.
func (l *Lexer) scan(alt int) int {
	switch alt {
	case 1:
		l.input.Consume()
		return LPAREN
	case 2:
		l.input.Consume()
		return RPAREN
	case 3:
		for i := 0; i < len("vec"); i++ {
			l.input.Consume()
		}
		return VEC
	case 4:
		l.consumeWhile(isLower)
		return ID
	case 5:
		l.consumeWhile(isDigit)
		return INT
	case 6:
		ttype := operators[l.input.LA(1)]
		l.input.Consume()
		return ttype
	default:
		l.consumeWhile(isSpace)
		return WS
	}
}

func (l *Lexer) consumeWhile(accept func(int) bool) {
	for accept(l.input.LA(1)) {
		l.input.Consume()
	}
}

func isLower(c int) bool { return c >= 'a' && c <= 'z' }
func isDigit(c int) bool { return c >= '0' && c <= '9' }

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Tokenize lexes all of src. The returned list ends with the EOF token.
func Tokenize(src string, opts ...Option) (recognizer.TokenList, error) {
	l := NewLexer(src, opts...)
	var tokens recognizer.TokenList
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == recognizer.EOF {
			return tokens, nil
		}
	}
}
