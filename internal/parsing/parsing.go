// Package parsing decodes Binance 24hr ticker payloads into market batches.
package parsing

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/valyala/fastjson"

	"github.com/franco-grobler/tickerbar/internal/market"
	binancestream "github.com/franco-grobler/tickerbar/pkg/binance-stream"
)

// ErrUnexpectedPayload is returned for well-formed JSON that is neither a
// ticker event, an array of them, nor a combined stream wrapper.
var ErrUnexpectedPayload = errors.New("unexpected payload")

// parserPool is a pool of fastjson.Parser instances to reduce allocations.
// A Parser must not be shared between goroutines while its values are in use.
var parserPool = sync.Pool{
	New: func() any {
		return &fastjson.Parser{}
	},
}

// combinedStream wraps an event when using combined streams.
// Combined stream format: {"stream":"btceur@ticker","data":{...}}
type combinedStream struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

// ParseTickers decodes one websocket frame with a pooled fastjson parser.
//
// It handles:
// 1. The all-market array: [{"e":"24hrTicker", ...}, ...]
// 2. A single event: {"e":"24hrTicker", ...}
// 3. The combined stream wrapper around either of the above.
//
// Objects without a symbol, such as subscription acks, and events of another
// type are dropped. Numeric values are kept by their literal text.
func ParseTickers(data []byte) (market.Batch, error) {
	p := parserPool.Get().(*fastjson.Parser)
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	if v.Type() == fastjson.TypeObject && v.Exists("stream") && v.Exists("data") {
		v = v.Get("data")
	}

	switch v.Type() {
	case fastjson.TypeArray:
		items, _ := v.Array()
		batch := make(market.Batch, 0, len(items))
		for _, item := range items {
			if s, ok := snapshot(item); ok {
				batch = append(batch, s)
			}
		}
		return batch, nil
	case fastjson.TypeObject:
		if s, ok := snapshot(v); ok {
			return market.Batch{s}, nil
		}
		return market.Batch{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedPayload, v.Type())
	}
}

func snapshot(v *fastjson.Value) (market.Snapshot, bool) {
	if v.Type() != fastjson.TypeObject {
		return market.Snapshot{}, false
	}
	if e := v.Get("e"); e != nil && string(e.GetStringBytes()) != binancestream.TickerEventType {
		return market.Snapshot{}, false
	}

	symbol := text(v, "s")
	if symbol == "" {
		return market.Snapshot{}, false
	}

	return market.Snapshot{
		Symbol:        symbol,
		AveragePrice:  text(v, "w"),
		ChangePercent: text(v, "P"),
	}, true
}

// text returns a string or number field as it appears on the wire.
// The result is copied, so it outlives the pooled parser.
func text(v *fastjson.Value, key string) string {
	f := v.Get(key)
	if f == nil {
		return ""
	}
	switch f.Type() {
	case fastjson.TypeString:
		return string(f.GetStringBytes())
	case fastjson.TypeNumber:
		return f.String()
	default:
		return ""
	}
}

// ParseTickersStandard uses encoding/json to decode the same payloads.
// Numeric values must be quoted, as Binance sends them.
func ParseTickersStandard(data []byte) (market.Batch, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if len(raw) > 0 && raw[0] == '{' {
		var wrapper combinedStream
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, err
		}
		if wrapper.Stream != "" && len(wrapper.Data) > 0 {
			raw = wrapper.Data
		}
	}

	var events []binancestream.TickerEvent
	switch {
	case len(raw) > 0 && raw[0] == '[':
		if err := json.Unmarshal(raw, &events); err != nil {
			return nil, err
		}
	case len(raw) > 0 && raw[0] == '{':
		var event binancestream.TickerEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedPayload, raw)
	}

	batch := make(market.Batch, 0, len(events))
	for _, e := range events {
		if e.Symbol == "" || (e.EventType != "" && e.EventType != binancestream.TickerEventType) {
			continue
		}
		batch = append(batch, market.Snapshot{
			Symbol:        e.Symbol,
			AveragePrice:  e.WeightedAvgPrice,
			ChangePercent: e.PriceChangePercent,
		})
	}
	return batch, nil
}
