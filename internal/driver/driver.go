// Package driver runs the fetch, apply, render and print loop.
package driver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/franco-grobler/tickerbar/internal/market"
	"github.com/franco-grobler/tickerbar/internal/render"
	"github.com/franco-grobler/tickerbar/pkg/printer"
)

// ErrTransport wraps any failure of the batch source.
var ErrTransport = errors.New("transport error")

// Source delivers ticker batches one at a time.
type Source interface {
	Next(ctx context.Context) (market.Batch, error)
}

// Driver owns the table and processes batches strictly in sequence.
// It is not safe for concurrent use, except for Stop.
type Driver struct {
	source    Source
	engine    *market.Engine
	presenter *render.Presenter
	printer   printer.Printer
	log       logrus.FieldLogger

	table      *market.Table
	singleShot bool
	stop       atomic.Bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSingleShot stops the loop after the first non-empty line is printed.
func WithSingleShot(enabled bool) Option {
	return func(d *Driver) { d.singleShot = enabled }
}

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Driver) { d.log = log }
}

// New creates a driver with an empty table.
func New(
	source Source,
	engine *market.Engine,
	presenter *render.Presenter,
	p printer.Printer,
	opts ...Option,
) *Driver {
	d := &Driver{
		source:    source,
		engine:    engine,
		presenter: presenter,
		printer:   p,
		log:       logrus.StandardLogger(),
		table:     market.NewTable(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Stop asks the loop to end before it requests the next batch.
// The batch in progress, if any, is finished first.
func (d *Driver) Stop() {
	d.stop.Store(true)
}

// Stopped reports whether Stop has been called.
func (d *Driver) Stopped() bool {
	return d.stop.Load()
}

// Table returns the table owned by the driver.
func (d *Driver) Table() *market.Table {
	return d.table
}

// Step applies batch and prints the resulting line.
// A *market.ParseError means nothing was printed for this batch.
func (d *Driver) Step(batch market.Batch) error {
	res, err := d.engine.Apply(d.table, batch)
	for _, rej := range res.Rejected {
		d.log.WithField("symbol", rej.Symbol).WithError(rej).Warn("snapshot rejected")
	}
	if err != nil {
		return err
	}

	if err := d.printer.PrintLine(d.presenter.Render(d.table)); err != nil {
		return err
	}

	if d.singleShot && !d.table.Empty() {
		d.Stop()
	}
	return nil
}

// Run processes batches until Stop is called, ctx is done or the source fails.
// Cancellation and Stop end the loop with a nil error.
func (d *Driver) Run(ctx context.Context) error {
	for !d.stop.Load() {
		batch, err := d.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}

		if err := d.Step(batch); err != nil {
			var perr *market.ParseError
			if errors.As(err, &perr) {
				d.log.WithField("symbol", perr.Symbol).WithError(err).Warn("skipping batch")
				continue
			}
			return err
		}
	}
	return nil
}
