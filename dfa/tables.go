package dfa

import (
	"errors"
	"fmt"
	"math"
)

// MaxStates bounds the number of states of a decision: state indexes are
// stored as signed 16-bit values in encoded tables.
const MaxStates = math.MaxInt16

// Target is an optional reference to a state, or to a slot of the
// special-state resolver. The zero value is absent.
type Target struct {
	index int
	ok    bool
}

// To returns a present target.
func To(index int) Target {
	return Target{index: index, ok: true}
}

// targetOf maps the negative "no edge" convention of encoded tables to an
// absent target.
func targetOf(v int16) Target {
	if v < 0 {
		return Target{}
	}
	return To(int(v))
}

// Get returns the target index and whether it is present.
func (t Target) Get() (int, bool) { return t.index, t.ok }

func (t Target) String() string {
	if !t.ok {
		return "-"
	}
	return fmt.Sprintf("%d", t.index)
}

// Encoded holds the run-length encoded tables of one decision as emitted
// by a table generator. Transition has one encoded row per state.
type Encoded struct {
	EOT        []uint16
	EOF        []uint16
	Min        []uint16
	Max        []uint16
	Accept     []uint16
	Special    []uint16
	Transition [][]uint16
}

// Tables are the decoded, validated and immutable per-state tables of a
// decision. All slices are indexed by state.
type Tables struct {
	Min        []uint16
	Max        []uint16
	Accept     []int // alternative number, 0 when not accepting
	EOT        []Target
	EOF        []Target
	Special    []Target // resolver slot, not a state
	Transition [][]Target
}

// NewTables decodes enc and validates the result. All errors are
// *MalformedTableError.
func NewTables(enc Encoded) (*Tables, error) {
	eot, err := decodeTargets("eot", enc.EOT)
	if err != nil {
		return nil, err
	}
	eof, err := decodeTargets("eof", enc.EOF)
	if err != nil {
		return nil, err
	}
	special, err := decodeTargets("special", enc.Special)
	if err != nil {
		return nil, err
	}
	minTable, err := decodeChars("min", enc.Min)
	if err != nil {
		return nil, err
	}
	maxTable, err := decodeChars("max", enc.Max)
	if err != nil {
		return nil, err
	}
	rawAccept, err := decodeSigned("accept", enc.Accept)
	if err != nil {
		return nil, err
	}
	accept := make([]int, len(rawAccept))
	for i, v := range rawAccept {
		if v > 0 {
			accept[i] = int(v)
		}
	}

	transition := make([][]Target, len(enc.Transition))
	for s, row := range enc.Transition {
		transition[s], err = decodeTargets("transition", row)
		if err != nil {
			var mte *MalformedTableError
			if errors.As(err, &mte) {
				mte.State = s
			}
			return nil, err
		}
	}

	t := &Tables{
		Min:        minTable,
		Max:        maxTable,
		Accept:     accept,
		EOT:        eot,
		EOF:        eof,
		Special:    special,
		Transition: transition,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustTables is like NewTables but panics on malformed tables.
func MustTables(enc Encoded) *Tables {
	t, err := NewTables(enc)
	if err != nil {
		panic(err)
	}
	return t
}

// NumStates returns the number of states.
func (t *Tables) NumStates() int { return len(t.Accept) }

func (t *Tables) validate() error {
	n := len(t.Accept)
	if n == 0 {
		return tableError("accept", -1, "no states")
	}
	if n > MaxStates {
		return tableError("accept", -1, fmt.Sprintf("%d states exceed the limit of %d", n, MaxStates))
	}

	lengths := []struct {
		name string
		len  int
	}{
		{"eot", len(t.EOT)},
		{"eof", len(t.EOF)},
		{"min", len(t.Min)},
		{"max", len(t.Max)},
		{"special", len(t.Special)},
		{"transition", len(t.Transition)},
	}
	for _, l := range lengths {
		if l.len != n {
			return tableError(l.name, -1, fmt.Sprintf("has %d states, accept has %d", l.len, n))
		}
	}

	for s := 0; s < n; s++ {
		if err := checkTarget("eot", s, t.EOT[s], n); err != nil {
			return err
		}
		if err := checkTarget("eof", s, t.EOF[s], n); err != nil {
			return err
		}

		row := t.Transition[s]
		if len(row) == 0 {
			continue
		}
		if t.Min[s] > t.Max[s] {
			return tableError("min", s, fmt.Sprintf("min %d is greater than max %d", t.Min[s], t.Max[s]))
		}
		if width := int(t.Max[s]) - int(t.Min[s]) + 1; len(row) > width {
			return tableError("transition", s, fmt.Sprintf("row has %d entries for a range of %d", len(row), width))
		}
		for _, target := range row {
			if err := checkTarget("transition", s, target, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkTarget(table string, state int, t Target, n int) error {
	if i, ok := t.Get(); ok && i >= n {
		return tableError(table, state, fmt.Sprintf("target %d is not a state", i))
	}
	return nil
}

func tableError(table string, state int, reason string) error {
	return &MalformedTableError{Table: table, State: state, Reason: reason}
}

func decodeSigned(table string, units []uint16) ([]int16, error) {
	data, err := Unpack(units)
	return data, nameTable(table, err)
}

func decodeChars(table string, units []uint16) ([]uint16, error) {
	data, err := UnpackChars(units)
	return data, nameTable(table, err)
}

func decodeTargets(table string, units []uint16) ([]Target, error) {
	raw, err := decodeSigned(table, units)
	if err != nil {
		return nil, err
	}
	targets := make([]Target, len(raw))
	for i, v := range raw {
		targets[i] = targetOf(v)
	}
	return targets, nil
}

func nameTable(table string, err error) error {
	var mte *MalformedTableError
	if errors.As(err, &mte) {
		mte.Table = table
		mte.State = -1
	}
	return err
}
