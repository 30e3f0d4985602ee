// Package feed turns the Binance transport into a sequence of ticker batches.
package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/franco-grobler/tickerbar/internal/market"
	"github.com/franco-grobler/tickerbar/internal/parsing"
	binancestream "github.com/franco-grobler/tickerbar/pkg/binance-stream"
)

// ErrStreamClosed is returned by [Stream.Next] once the websocket is gone.
var ErrStreamClosed = errors.New("ticker stream closed")

// Streams selects which websocket streams to subscribe to.
type Streams string

// 'Enum' for Streams
const (
	// AllStreams subscribes to the all-market array and filters locally.
	AllStreams Streams = "all"
	// SymbolStreams subscribes to one ticker stream per symbol.
	SymbolStreams Streams = "symbols"
)

// StreamNames returns the stream names to subscribe to for symbols.
func StreamNames(mode Streams, symbols []string) []string {
	if mode == SymbolStreams {
		names := make([]string, 0, len(symbols))
		for _, s := range symbols {
			names = append(names, binancestream.SymbolTicker(s))
		}
		return names
	}
	return []string{binancestream.AllMarketTickers}
}

// rawBuffer is the number of frames the reader may run ahead of the driver.
const rawBuffer = 64

// Stream delivers one batch per websocket frame.
type Stream struct {
	client  binancestream.StreamClient
	streams []string
	log     logrus.FieldLogger

	rawCh chan []byte
	errCh chan error
}

// NewStream creates a stream source. The connection is opened by the first
// call to Next.
func NewStream(
	client binancestream.StreamClient,
	streams []string,
	log logrus.FieldLogger,
) *Stream {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Stream{client: client, streams: streams, log: log}
}

// Next blocks until a frame decodes into a batch. Undecodable frames are
// logged and skipped.
func (s *Stream) Next(ctx context.Context) (market.Batch, error) {
	if s.rawCh == nil {
		rawCh := make(chan []byte, rawBuffer)
		errCh := make(chan error, 1)
		if err := s.client.TickerStream(s.streams, rawCh, errCh); err != nil {
			return nil, err
		}
		s.rawCh, s.errCh = rawCh, errCh
		s.log.WithField("streams", s.streams).Debug("ticker stream connected")
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case data, ok := <-s.rawCh:
			if !ok {
				select {
				case err := <-s.errCh:
					return nil, fmt.Errorf("%w: %w", ErrStreamClosed, err)
				default:
					return nil, ErrStreamClosed
				}
			}

			batch, err := parsing.ParseTickers(data)
			if err != nil {
				s.log.WithError(err).Warn("skipping undecodable frame")
				continue
			}
			return batch, nil
		}
	}
}
