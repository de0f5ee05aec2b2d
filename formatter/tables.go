package formatter

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/gnolang/recog/dfa"
)

// FormatTables renders decoded tables, one state per line. Runs of
// consecutive symbols with the same target are collapsed to ranges.
func FormatTables(t *dfa.Tables) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, tabWidth, 2, ' ', 0)
	fmt.Fprintln(w, "state\taccept\tspecial\teot\teof\tedges")
	for s := 0; s < t.NumStates(); s++ {
		accept := "-"
		if t.Accept[s] > 0 {
			accept = fmt.Sprintf("%d", t.Accept[s])
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s, accept, t.Special[s], t.EOT[s], t.EOF[s], edges(t.Min[s], t.Transition[s]))
	}
	_ = w.Flush()
	return b.String()
}

func edges(lo uint16, row []dfa.Target) string {
	var parts []string
	for i := 0; i < len(row); {
		j := i
		for j+1 < len(row) && row[j+1] == row[i] {
			j++
		}
		if next, ok := row[i].Get(); ok {
			from, to := int(lo)+i, int(lo)+j
			if from == to {
				parts = append(parts, fmt.Sprintf("%s->%d", symbol(from), next))
			} else {
				parts = append(parts, fmt.Sprintf("%s..%s->%d", symbol(from), symbol(to), next))
			}
		}
		i = j + 1
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func symbol(c int) string {
	if c < 0x80 && unicode.IsPrint(rune(c)) {
		return fmt.Sprintf("%q", rune(c))
	}
	return fmt.Sprintf("%d", c)
}
