// Package dfa simulates the prediction DFAs of a generated recognizer.
//
// A decision's DFA is a covering regular approximation of the grammar at a
// choice point. Predict walks it over the upcoming input and returns the
// alternative to take, without consuming anything the caller can observe.
//
// States that carry semantic predicate edges cannot be expressed as a
// symbol-range table; those are "special" and delegate to a resolver
// supplied per decision with WithSpecialStates.
package dfa

import (
	"math"

	"go.uber.org/zap"

	"github.com/gnolang/recog/recognizer"
)

const defaultDescription = "n/a"

// eofChar is recognizer.EOF as seen through the 16-bit symbol tables.
const eofChar uint16 = math.MaxUint16

// SpecialStateFunc computes the transition out of a special state.
// special is the resolver slot from the special table, not the state
// number. It returns false when there is no transition.
type SpecialStateFunc func(d *DFA, special int, input recognizer.IntStream) (next int, ok bool)

// ErrorHook observes a no viable alternative error before Predict returns it.
type ErrorHook func(err *NoViableAltError)

// DFA predicts alternatives for one decision. It holds no per-call state;
// the recognizer state is passed to Predict.
type DFA struct {
	decision    int
	description string
	tables      *Tables
	special     SpecialStateFunc
	onError     ErrorHook
	logger      *zap.Logger
}

// Option configures a DFA.
type Option func(*DFA)

// WithSpecialStates installs the resolver for special states.
func WithSpecialStates(f SpecialStateFunc) Option {
	return func(d *DFA) {
		if f != nil {
			d.special = f
		}
	}
}

// WithErrorHook installs a hook called with every non-speculative
// no viable alternative error.
func WithErrorHook(h ErrorHook) Option {
	return func(d *DFA) { d.onError = h }
}

// WithDescription sets the human readable description of the decision.
func WithDescription(desc string) Option {
	return func(d *DFA) { d.description = desc }
}

// WithLogger enables debug tracing of every step.
func WithLogger(logger *zap.Logger) Option {
	return func(d *DFA) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates the DFA of decision over tables.
func New(decision int, tables *Tables, opts ...Option) *DFA {
	d := &DFA{
		decision:    decision,
		description: defaultDescription,
		tables:      tables,
		special:     noSpecialTransition,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func noSpecialTransition(*DFA, int, recognizer.IntStream) (int, bool) {
	return 0, false
}

func (d *DFA) Decision() int       { return d.decision }
func (d *DFA) Description() string { return d.description }
func (d *DFA) Tables() *Tables     { return d.tables }

// Predict returns the alternative (1..n) the input predicts.
//
// The input is always rewound to where it was on entry. When no
// alternative is viable and state is speculating, Predict sets
// state.Failed and returns 0 with a nil error; otherwise it returns a
// *NoViableAltError after passing it to the error hook.
func (d *DFA) Predict(state *recognizer.SharedState, input recognizer.IntStream) (int, error) {
	t := d.tables
	mark := input.Mark()
	defer input.Rewind(mark)

	d.logger.Debug("enter prediction", zap.Int("decision", d.decision), zap.Int("index", input.Index()))

	s := 0
	for {
		d.traceStep(s, input)

		if special, ok := t.Special[s].Get(); ok {
			next, ok := d.special(d, special, input)
			if !ok || next < 0 || next >= t.NumStates() {
				return 0, d.noViableAlt(state, s, input)
			}
			d.logger.Debug("special state transition",
				zap.Int("decision", d.decision), zap.Int("special", special), zap.Int("next", next))
			s = next
			input.Consume()
			continue
		}

		if alt := t.Accept[s]; alt >= 1 {
			d.logger.Debug("accept", zap.Int("decision", d.decision), zap.Int("state", s), zap.Int("alt", alt))
			return alt, nil
		}

		la := input.LA(1)
		c, fits := tableSymbol(la)
		if fits && c >= t.Min[s] && c <= t.Max[s] {
			var next Target
			if row, off := t.Transition[s], int(c-t.Min[s]); off < len(row) {
				next = row[off]
			}
			if n, ok := next.Get(); ok {
				s = n
				input.Consume()
				continue
			}
			// In range but no normal transition: the EOT edge acts as the
			// else clause. Its target is not checked for predicated edges.
			if eot, ok := t.EOT[s].Get(); ok {
				d.logger.Debug("EOT transition", zap.Int("decision", d.decision), zap.Int("state", s))
				s = eot
				input.Consume()
				continue
			}
			return 0, d.noViableAlt(state, s, input)
		}

		if eot, ok := t.EOT[s].Get(); ok {
			d.logger.Debug("EOT transition", zap.Int("decision", d.decision), zap.Int("state", s))
			s = eot
			input.Consume()
			continue
		}

		if eof, ok := t.EOF[s].Get(); ok && la == recognizer.EOF {
			d.logger.Debug("accept via EOF", zap.Int("decision", d.decision), zap.Int("state", eof))
			return t.Accept[eof], nil
		}

		return 0, d.noViableAlt(state, s, input)
	}
}

// tableSymbol maps a lookahead symbol onto the 16-bit symbol tables.
// EOF becomes 0xFFFF. Symbols wider than 16 bits, such as runes outside
// the Basic Multilingual Plane, have no table column and report false.
func tableSymbol(la int) (uint16, bool) {
	if la == recognizer.EOF {
		return eofChar, true
	}
	if la < 0 || la > math.MaxUint16 {
		return 0, false
	}
	return uint16(la), true
}

func (d *DFA) noViableAlt(state *recognizer.SharedState, s int, input recognizer.IntStream) error {
	if state.Speculating() {
		state.Fail()
		return nil
	}

	err := &NoViableAltError{
		Decision:    d.decision,
		State:       s,
		Index:       input.Index(),
		Symbol:      input.LA(1),
		Description: d.description,
	}
	if p, ok := input.(recognizer.Positioner); ok {
		err.Line = p.Line()
		err.Column = p.Column()
	}

	d.logger.Debug("no viable alternative",
		zap.Int("decision", d.decision),
		zap.Int("state", s),
		zap.Int("index", err.Index),
		zap.Uint16("min", d.tables.Min[s]),
		zap.Uint16("max", d.tables.Max[s]),
		zap.Stringer("eot", d.tables.EOT[s]),
		zap.Stringer("eof", d.tables.EOF[s]),
	)

	if d.onError != nil {
		d.onError(err)
	}
	return err
}

func (d *DFA) traceStep(s int, input recognizer.IntStream) {
	if ce := d.logger.Check(zap.DebugLevel, "dfa step"); ce != nil {
		ce.Write(
			zap.Int("decision", d.decision),
			zap.Int("state", s),
			zap.Int("la", input.LA(1)),
			zap.Int("index", input.Index()),
		)
	}
}
