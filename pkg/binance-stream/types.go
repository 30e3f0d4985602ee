package binancestream

import "context"

// Parser serves as an alias for unmarshalling functions
type Parser func(data []byte, v any) error

// TickerEvent reads 24hr rolling window ticker statistics pushed by the
// <symbol>@ticker and !ticker@arr streams.
// Example:
//
//	{
//	    "e": "24hrTicker",      // Event type
//	    "E": 1672515782136,     // Event time
//	    "s": "BNBBTC",          // Symbol
//	    "p": "0.0015",          // Price change
//	    "P": "250.00",          // Price change percent
//	    "w": "0.0018",          // Weighted average price
//	    "c": "0.0025",          // Last price
//	    "o": "0.0010",          // Open price
//	    "h": "0.0025",          // High price
//	    "l": "0.0010",          // Low price
//	    "v": "10000",           // Total traded base asset volume
//	    "q": "18"               // Total traded quote asset volume
//	}
type TickerEvent struct {
	EventType          string `json:"e"`
	EventTime          int64  `json:"E"`
	Symbol             string `json:"s"`
	PriceChange        string `json:"p"`
	PriceChangePercent string `json:"P"`
	WeightedAvgPrice   string `json:"w"`
	LastPrice          string `json:"c"`
	OpenPrice          string `json:"o"`
	HighPrice          string `json:"h"`
	LowPrice           string `json:"l"`
	Volume             string `json:"v"`
	QuoteVolume        string `json:"q"`
}

// TickerEventType is the "e" value of a 24hr ticker event.
const TickerEventType = "24hrTicker"

// TickerStatistics reads one entry of GET /api/v3/ticker/24hr.
type TickerStatistics struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	WeightedAvgPrice   string `json:"weightedAvgPrice"`
	LastPrice          string `json:"lastPrice"`
	OpenTime           int64  `json:"openTime"`
	CloseTime          int64  `json:"closeTime"`
}

// StreamClient defines the methods needed to feed the ticker bar.
type StreamClient interface {
	TickerStream(
		streams []string,
		outCh chan<- []byte,
		errCh chan<- error,
	) error
	TickerSnapshot(ctx context.Context, symbols []string) ([]TickerStatistics, error)
}
