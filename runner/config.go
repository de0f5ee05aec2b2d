package runner

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/recog/dfa"
	"github.com/gnolang/recog/internal/sexpr"
)

// DefaultConfigFile is the configuration file name used when none is given.
const DefaultConfigFile = ".recog.yaml"

// Config represents the overall configuration: a name and the decision
// tables the predict and decode commands can load.
type Config struct {
	Name      string           `yaml:"name"`
	Decisions map[int]Decision `yaml:"decisions"`
}

// Decision holds the run-length encoded tables of one decision as
// (count, value) integer pairs. -1 stands for 0xFFFF, the "no edge" and
// EOF marker.
type Decision struct {
	Description string  `yaml:"description,omitempty"`
	EOT         []int   `yaml:"eot,flow"`
	EOF         []int   `yaml:"eof,flow"`
	Min         []int   `yaml:"min,flow"`
	Max         []int   `yaml:"max,flow"`
	Accept      []int   `yaml:"accept,flow"`
	Special     []int   `yaml:"special,flow"`
	Transition  [][]int `yaml:"transition,flow"`
}

// ErrUnknownDecision is returned when a decision number is not configured.
var ErrUnknownDecision = errors.New("unknown decision")

// DefaultConfig returns the configuration written by "recog init". It
// holds the token decision of the s-expression lexer, which can be run
// on plain strings.
func DefaultConfig() Config {
	return Config{
		Name: "recog",
		Decisions: map[int]Decision{
			1: EncodeDecision(sexpr.TokensDecision, "s-expression tokens"),
		},
	}
}

// LoadConfig reads a configuration file.
func LoadConfig(path string) (Config, error) {
	var config Config

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

// LoadConfigOrDefault reads path, falling back to DefaultConfig when the
// file does not exist.
func LoadConfigOrDefault(logger *zap.Logger, path string) (Config, error) {
	config, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("configuration file not found, using defaults", zap.String("path", path))
		return DefaultConfig(), nil
	}
	return config, err
}

// WriteConfig writes config to path as YAML.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

// DecisionNumbers returns the configured decision numbers in order.
func (c Config) DecisionNumbers() []int {
	numbers := make([]int, 0, len(c.Decisions))
	for n := range c.Decisions {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// Tables decodes and validates decision n.
func (c Config) Tables(n int) (*dfa.Tables, error) {
	d, ok := c.Decisions[n]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownDecision, n)
	}
	enc, err := d.Encoded()
	if err != nil {
		return nil, err
	}
	return dfa.NewTables(enc)
}

// DFA builds the predictor of decision n. Special states cannot be
// configured, so a configured DFA reports no viable alternative when it
// reaches one.
func (c Config) DFA(n int, logger *zap.Logger) (*dfa.DFA, error) {
	tables, err := c.Tables(n)
	if err != nil {
		return nil, err
	}
	opts := []dfa.Option{dfa.WithLogger(logger)}
	if desc := c.Decisions[n].Description; desc != "" {
		opts = append(opts, dfa.WithDescription(desc))
	}
	return dfa.New(n, tables, opts...), nil
}

// EncodeDecision converts encoded tables to their configuration form.
func EncodeDecision(enc dfa.Encoded, description string) Decision {
	d := Decision{
		Description: description,
		EOT:         toInts(enc.EOT),
		EOF:         toInts(enc.EOF),
		Min:         toInts(enc.Min),
		Max:         toInts(enc.Max),
		Accept:      toInts(enc.Accept),
		Special:     toInts(enc.Special),
	}
	for _, row := range enc.Transition {
		d.Transition = append(d.Transition, toInts(row))
	}
	return d
}

// Encoded converts d back to encoded tables.
func (d Decision) Encoded() (dfa.Encoded, error) {
	var (
		enc dfa.Encoded
		err error
	)
	tables := []struct {
		name string
		src  []int
		dst  *[]uint16
	}{
		{"eot", d.EOT, &enc.EOT},
		{"eof", d.EOF, &enc.EOF},
		{"min", d.Min, &enc.Min},
		{"max", d.Max, &enc.Max},
		{"accept", d.Accept, &enc.Accept},
		{"special", d.Special, &enc.Special},
	}
	for _, t := range tables {
		if *t.dst, err = toUnits(t.name, -1, t.src); err != nil {
			return enc, err
		}
	}
	enc.Transition = make([][]uint16, len(d.Transition))
	for s, row := range d.Transition {
		if enc.Transition[s], err = toUnits("transition", s, row); err != nil {
			return enc, err
		}
	}
	return enc, nil
}

func toInts(units []uint16) []int {
	out := make([]int, len(units))
	for i, u := range units {
		if u == math.MaxUint16 {
			out[i] = -1
		} else {
			out[i] = int(u)
		}
	}
	return out
}

func toUnits(table string, state int, values []int) ([]uint16, error) {
	out := make([]uint16, len(values))
	for i, v := range values {
		if v < -1 || v > math.MaxUint16 {
			return nil, &dfa.MalformedTableError{
				Table:  table,
				State:  state,
				Reason: fmt.Sprintf("value %d does not fit in 16 bits", v),
			}
		}
		out[i] = uint16(v)
	}
	return out, nil
}
