package formatter

import (
	"errors"
	"fmt"
	"go/token"
	"unicode/utf8"

	"github.com/gnolang/recog/dfa"
	"github.com/gnolang/recog/recognizer"
)

// TypeNamer names token types in messages.
type TypeNamer func(ttype int) string

func defaultTypeName(ttype int) string {
	return fmt.Sprintf("type %d", ttype)
}

// IssueFromError converts a positioned recognition error into an Issue.
// It reports false for any other error.
func IssueFromError(filename string, err error, names TypeNamer) (Issue, bool) {
	if names == nil {
		names = defaultTypeName
	}

	var nva *dfa.NoViableAltError
	if errors.As(err, &nva) && nva.Line > 0 {
		pos := token.Position{Filename: filename, Line: nva.Line, Column: nva.Column}
		issue := Issue{
			Rule:     NoViableAlt,
			Filename: filename,
			Start:    pos,
			End:      pos,
			Message:  fmt.Sprintf("no viable alternative at input %s", nva.Input()),
			Note:     fmt.Sprintf("decision %d, state %d", nva.Decision, nva.State),
		}
		if nva.Description != "" && nva.Description != "n/a" {
			issue.Note = fmt.Sprintf("%s (%s)", nva.Description, issue.Note)
		}
		return issue, true
	}

	var mismatch *recognizer.MismatchedError
	if errors.As(err, &mismatch) && mismatch.Line > 0 {
		start := token.Position{Filename: filename, Line: mismatch.Line, Column: mismatch.Column}
		end := start
		if n := utf8.RuneCountInString(mismatch.Text); n > 1 && mismatch.Found != recognizer.EOF {
			end.Column += n - 1
		}
		return Issue{
			Rule:     MismatchedInput,
			Filename: filename,
			Start:    start,
			End:      end,
			Message: fmt.Sprintf("mismatched input %q: expecting %s, found %s",
				mismatch.Text, names(mismatch.Expecting), names(mismatch.Found)),
		}, true
	}
	return Issue{}, false
}
