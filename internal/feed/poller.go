package feed

import (
	"context"
	"time"

	"github.com/franco-grobler/tickerbar/internal/market"
	binancestream "github.com/franco-grobler/tickerbar/pkg/binance-stream"
)

// DefaultPollInterval is used when the poller is given no interval.
const DefaultPollInterval = 10 * time.Second

// Poller delivers one batch per REST snapshot request.
type Poller struct {
	client   binancestream.StreamClient
	symbols  []string
	interval time.Duration

	polled bool
}

// NewPoller creates a REST source for symbols.
func NewPoller(client binancestream.StreamClient, symbols []string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{client: client, symbols: symbols, interval: interval}
}

// Next requests a snapshot, waiting one interval first unless this is the
// first call.
func (p *Poller) Next(ctx context.Context) (market.Batch, error) {
	if p.polled {
		timer := time.NewTimer(p.interval)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	p.polled = true

	stats, err := p.client.TickerSnapshot(ctx, p.symbols)
	if err != nil {
		return nil, err
	}
	return FromStatistics(stats), nil
}

// FromStatistics converts REST ticker statistics into a batch.
func FromStatistics(stats []binancestream.TickerStatistics) market.Batch {
	batch := make(market.Batch, 0, len(stats))
	for _, s := range stats {
		batch = append(batch, market.Snapshot{
			Symbol:        s.Symbol,
			AveragePrice:  s.WeightedAvgPrice,
			ChangePercent: s.PriceChangePercent,
		})
	}
	return batch
}
