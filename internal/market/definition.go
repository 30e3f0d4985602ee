// Package market holds the live ticker state shown in the bar and the engine
// that merges feed snapshots into it.
package market

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySymbol     = errors.New("ticker definition has an empty symbol")
	ErrDuplicateSymbol = errors.New("duplicate ticker symbol")
)

// Definition describes one tracked instrument.
// Example: {Symbol: "BTCEUR", Base: "BTC", Quote: "EUR"}.
type Definition struct {
	Symbol string
	Base   string
	Quote  string
}

// Definitions is the static, ordered table of tracked instruments.
type Definitions struct {
	ordered  []Definition
	bySymbol map[string]int
}

// NewDefinitions builds the lookup table, keeping the given order.
func NewDefinitions(defs []Definition) (*Definitions, error) {
	d := &Definitions{
		ordered:  make([]Definition, len(defs)),
		bySymbol: make(map[string]int, len(defs)),
	}
	copy(d.ordered, defs)

	for i, def := range d.ordered {
		if def.Symbol == "" {
			return nil, fmt.Errorf("definition %d: %w", i, ErrEmptySymbol)
		}
		if _, exists := d.bySymbol[def.Symbol]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, def.Symbol)
		}
		d.bySymbol[def.Symbol] = i
	}

	return d, nil
}

// Lookup resolves a feed symbol by exact match.
// The returned pointer is shared and must not be modified.
func (d *Definitions) Lookup(symbol string) (*Definition, bool) {
	i, ok := d.bySymbol[symbol]
	if !ok {
		return nil, false
	}
	return &d.ordered[i], true
}

// Symbols returns the tracked symbols in configuration order.
func (d *Definitions) Symbols() []string {
	out := make([]string, len(d.ordered))
	for i, def := range d.ordered {
		out[i] = def.Symbol
	}
	return out
}

// Len returns the number of tracked instruments.
func (d *Definitions) Len() int {
	return len(d.ordered)
}
