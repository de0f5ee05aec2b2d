package formatter

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"

	"github.com/gnolang/recog/internal"
)

const tabWidth = 8

// rule set
const (
	NoViableAlt     = "no-viable-alternative"
	MismatchedInput = "mismatched-input"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgGreen, color.Bold)
)

// Issue is a diagnostic attached to a source position.
type Issue struct {
	Rule     string         `json:"rule"`
	Filename string         `json:"filename"`
	Start    token.Position `json:"start"`
	End      token.Position `json:"end"`
	Message  string         `json:"message"`
	Note     string         `json:"note,omitempty"`
}

// GenerateFormattedIssue renders issues against the source they point into.
func GenerateFormattedIssue(issues []Issue, snippet *internal.SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(buildIssue(issue, snippet))
	}
	return builder.String()
}

/***** Issue Builder *****/

type issueData struct {
	Rule            string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Note            string
	SnippetLines    []string
	CommonIndent    string
}

const issueTemplate = `{{header .Rule .MaxLineNumWidth .Filename .StartLine .StartColumn}}` +
	`{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding}}` +
	`{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}` +
	`{{note .Note}}
`

var issueTmpl = template.Must(template.New("issue").Funcs(template.FuncMap{
	"header":              header,
	"snippet":             codeSnippet,
	"underlineAndMessage": underlineAndMessage,
	"note":                note,
}).Parse(issueTemplate))

func buildIssue(issue Issue, snippet *internal.SourceCode) string {
	startLine := issue.Start.Line
	endLine := issue.End.Line
	if endLine < startLine {
		endLine = startLine
	}
	endColumn := issue.End.Column
	if endLine == startLine && endColumn < issue.Start.Column {
		endColumn = issue.Start.Column
	}
	maxLineNumWidth := calculateMaxLineNumWidth(endLine)

	var lines []string
	if snippet != nil {
		lines = snippet.Lines
	}
	var commonIndent string
	if isValidLineRange(startLine, endLine, lines) {
		commonIndent = findCommonIndent(lines[startLine-1 : endLine])
	}

	data := issueData{
		Rule:            issue.Rule,
		Filename:        issue.Filename,
		StartLine:       startLine,
		StartColumn:     issue.Start.Column,
		EndLine:         endLine,
		EndColumn:       endColumn,
		Message:         issue.Message,
		Note:            issue.Note,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         strings.Repeat(" ", maxLineNumWidth+1),
		CommonIndent:    commonIndent,
		SnippetLines:    lines,
	}

	var buf bytes.Buffer
	if err := issueTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// utils functions used in the text template

func header(rule string, maxLineNumWidth int, filename string, startLine int, startColumn int) string {
	var endString string
	endString = errorStyle.Sprint("error: ")
	endString += ruleStyle.Sprintf("%s\n", rule)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d", filename, startLine, startColumn)
	return endString + "\n"
}

func codeSnippet(snippetLines []string, startLine int, endLine int, maxLineNumWidth int, commonIndent string, padding string) string {
	endString := lineStyle.Sprintf("%s|\n", padding)

	for i := startLine; i <= endLine; i++ {
		if i-1 < 0 || i-1 >= len(snippetLines) {
			continue
		}
		line := strings.TrimPrefix(snippetLines[i-1], commonIndent)
		lineNum := fmt.Sprintf("%*d", maxLineNumWidth, i)
		endString += lineStyle.Sprintf("%s | ", lineNum) + line + "\n"
	}
	return endString
}

func underlineAndMessage(message string, padding string, startLine int, endLine int, startColumn int, endColumn int, snippetLines []string, commonIndent string) string {
	endString := lineStyle.Sprintf("%s| ", padding)

	if !isValidLineRange(startLine, endLine, snippetLines) {
		return endString + messageStyle.Sprintf("%s\n", message)
	}

	commonIndentWidth := calculateVisualColumn(commonIndent, len([]rune(commonIndent))+1)

	underlineStart := calculateVisualColumn(snippetLines[startLine-1], startColumn) - commonIndentWidth
	if underlineStart < 0 {
		underlineStart = 0
	}
	underlineEnd := calculateVisualColumn(snippetLines[endLine-1], endColumn) - commonIndentWidth
	underlineLength := underlineEnd - underlineStart + 1
	if endLine > startLine || underlineLength < 1 {
		underlineLength = 1
	}

	endString += strings.Repeat(" ", underlineStart)
	endString += messageStyle.Sprintf("%s\n", strings.Repeat("~", underlineLength))

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprintf("%s\n", message)
	return endString
}

func note(note string) string {
	if note == "" {
		return ""
	}
	return noteStyle.Sprint("Note: ") + lineStyle.Sprintf("%s\n", note)
}

func isValidLineRange(startLine int, endLine int, snippetLines []string) bool {
	return startLine > 0 &&
		endLine > 0 &&
		startLine <= endLine &&
		startLine <= len(snippetLines) &&
		endLine <= len(snippetLines)
}

func calculateMaxLineNumWidth(endLine int) int {
	return len(fmt.Sprintf("%d", endLine))
}

// calculateVisualColumn returns the visual width of the runes before
// column (1-based), expanding tabs. Columns past the end of the line
// continue one cell per column.
func calculateVisualColumn(line string, column int) int {
	if column < 1 {
		return 0
	}
	visualColumn := 0
	i := 0
	for _, ch := range line {
		if i+1 == column {
			return visualColumn
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
		i++
	}
	return visualColumn + column - 1 - i
}

// findCommonIndent finds the indentation shared by the non-empty lines.
func findCommonIndent(lines []string) string {
	var indent []rune
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}
		current := []rune(line[:len(line)-len(trimmed)])
		if !found {
			indent, found = current, true
			continue
		}
		indent = commonPrefix(indent, current)
		if len(indent) == 0 {
			break
		}
	}
	return string(indent)
}

// commonPrefix finds the common prefix of two rune slices.
func commonPrefix(a, b []rune) []rune {
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:minLen]
}
