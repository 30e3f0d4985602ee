package market

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Snapshot is one feed record for a single symbol, values still in wire form.
type Snapshot struct {
	Symbol        string
	AveragePrice  string
	ChangePercent string
}

// Batch is one delivery of snapshots from the feed.
type Batch []Snapshot

// UpdatePolicy decides how a new average is merged into existing state.
type UpdatePolicy int

// 'Enum' for UpdatePolicy
const (
	// Replace overwrites average and change with the feed values.
	Replace UpdatePolicy = iota
	// Rolling halves the step towards the new average and colors by raw movement.
	Rolling
)

// ErrorPolicy decides what a value parse failure does to the rest of the batch.
type ErrorPolicy int

// 'Enum' for ErrorPolicy
const (
	// Abort stops at the first bad snapshot; earlier updates are kept.
	Abort ErrorPolicy = iota
	// Skip drops bad snapshots and applies the rest.
	Skip
	// Validate rejects the whole batch before touching the table.
	Validate
)

var ErrUnknownPolicy = errors.New("unknown policy")

// ParseUpdatePolicy maps a configuration value to an UpdatePolicy.
func ParseUpdatePolicy(s string) (UpdatePolicy, error) {
	switch s {
	case "", "replace":
		return Replace, nil
	case "rolling":
		return Rolling, nil
	}
	return Replace, fmt.Errorf("%w: update %q", ErrUnknownPolicy, s)
}

// ParseErrorPolicy maps a configuration value to an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "", "abort":
		return Abort, nil
	case "skip":
		return Skip, nil
	case "validate":
		return Validate, nil
	}
	return Abort, fmt.Errorf("%w: on_parse_error %q", ErrUnknownPolicy, s)
}

// ParseError reports a snapshot field that is not a number.
type ParseError struct {
	Symbol string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid %s %q: %v", e.Symbol, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Result summarises one Apply call.
type Result struct {
	Applied  int
	Ignored  int
	Rejected []*ParseError
}

// Engine merges batches into a Table.
type Engine struct {
	defs    *Definitions
	update  UpdatePolicy
	onError ErrorPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithUpdatePolicy selects replace or rolling merging.
func WithUpdatePolicy(p UpdatePolicy) Option {
	return func(e *Engine) { e.update = p }
}

// WithErrorPolicy selects abort, skip or validate on parse failures.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(e *Engine) { e.onError = p }
}

// NewEngine creates an engine resolving symbols against defs.
func NewEngine(defs *Definitions, opts ...Option) *Engine {
	e := &Engine{defs: defs}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type quote struct {
	def     *Definition
	average float64
	change  float64
}

// Apply merges batch into t. Unknown symbols are ignored.
// A *ParseError is returned according to the engine's ErrorPolicy.
func (e *Engine) Apply(t *Table, batch Batch) (Result, error) {
	var res Result

	if e.onError == Validate {
		quotes := make([]quote, 0, len(batch))
		for _, s := range batch {
			def, ok := e.defs.Lookup(s.Symbol)
			if !ok {
				res.Ignored++
				continue
			}
			q, err := parseQuote(def, s)
			if err != nil {
				return Result{}, err
			}
			quotes = append(quotes, q)
		}
		for _, q := range quotes {
			e.merge(t, q)
		}
		res.Applied = len(quotes)
		return res, nil
	}

	for _, s := range batch {
		def, ok := e.defs.Lookup(s.Symbol)
		if !ok {
			res.Ignored++
			continue
		}

		q, err := parseQuote(def, s)
		if err != nil {
			var perr *ParseError
			if e.onError == Skip && errors.As(err, &perr) {
				res.Rejected = append(res.Rejected, perr)
				continue
			}
			return res, err
		}

		e.merge(t, q)
		res.Applied++
	}

	return res, nil
}

func parseQuote(def *Definition, s Snapshot) (quote, error) {
	average, err := strconv.ParseFloat(s.AveragePrice, 64)
	if err != nil {
		return quote{}, &ParseError{Symbol: s.Symbol, Field: "average_price", Value: s.AveragePrice, Err: err}
	}
	change, err := strconv.ParseFloat(s.ChangePercent, 64)
	if err != nil {
		return quote{}, &ParseError{Symbol: s.Symbol, Field: "price_change_percent", Value: s.ChangePercent, Err: err}
	}
	return quote{def: def, average: average, change: change}, nil
}

func (e *Engine) merge(t *Table, q quote) {
	state, created := t.upsert(q.def)
	state.Change = q.change

	if e.update == Replace || created {
		state.Average = q.average
		state.Last = q.average
		if e.update == Replace {
			state.Direction = q.change
		} else {
			state.Direction = 0
		}
		return
	}

	state.Direction = q.average - state.Last
	state.Last = q.average
	state.Average = smooth(state.Average, q.average)
}

// smooth moves half way from prev to next, rounded to the display unit of next.
func smooth(prev, next float64) float64 {
	if !finite(prev) || !finite(next) {
		return next
	}

	p := decimal.NewFromFloat(prev)
	step := decimal.NewFromFloat(next).Sub(p).Div(decimal.NewFromInt(2)).Round(Precision(next))
	out, _ := p.Add(step).Float64()
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Precision returns the number of decimals used to display an average.
func Precision(average float64) int32 {
	switch {
	case average < 0.0001:
		return 6
	case average < 0.01:
		return 4
	default:
		return 2
	}
}
