package dfa

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gnolang/recog/recognizer"
)

// MalformedTableError reports a table that violates a build-time invariant.
// Tables are generated artifacts, so this is never recovered from inside
// the package.
type MalformedTableError struct {
	Table  string // which table, empty while decoding a raw string
	Length int
	State  int // offending state, -1 if not state specific
	Reason string
}

func (e *MalformedTableError) Error() string {
	var b strings.Builder
	b.WriteString("malformed DFA table")
	if e.Table != "" {
		b.WriteString(" " + e.Table)
	}
	if e.Table != "" && e.State >= 0 {
		b.WriteString(fmt.Sprintf(" at state %d", e.State))
	}
	b.WriteString(": " + e.Reason)
	if e.Table == "" {
		b.WriteString(fmt.Sprintf(" (length %d)", e.Length))
	}
	return b.String()
}

// NoViableAltError reports that no alternative of a decision can match
// the input at Index.
type NoViableAltError struct {
	Decision    int
	State       int
	Index       int
	Symbol      int
	Description string

	// Line and Column are set when the input stream implements
	// recognizer.Positioner.
	Line   int
	Column int
}

func (e *NoViableAltError) Error() string {
	msg := fmt.Sprintf("no viable alternative at input %s (decision=%d state=%d)",
		symbolText(e.Symbol), e.Decision, e.State)
	if e.Description != "" && e.Description != defaultDescription {
		msg += ": " + e.Description
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, msg)
	}
	return fmt.Sprintf("%s at index %d", msg, e.Index)
}

func (e *NoViableAltError) Unwrap() error { return recognizer.ErrRecognition }

// Input describes the offending symbol: a quoted character, <EOF>, or
// <n> when the symbol is not a printable character.
func (e *NoViableAltError) Input() string { return symbolText(e.Symbol) }

func symbolText(sym int) string {
	if sym == recognizer.EOF {
		return "<EOF>"
	}
	if sym >= 0 && sym <= unicode.MaxRune && unicode.IsPrint(rune(sym)) {
		return fmt.Sprintf("%q", rune(sym))
	}
	return fmt.Sprintf("<%d>", sym)
}
