// Package binancestream connects to the Binance spot market data endpoints.
package binancestream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/coder/websocket"
)

const (
	// APIEndpoint is the Binance REST base URL.
	APIEndpoint = "https://api.binance.com/api"
	// WSEndpoint is the Binance WebSocket Stream base URL.
	WSEndpoint = "wss://stream.binance.com:9443"
	// AllMarketTickers streams the tickers of every symbol that changed, as an array.
	AllMarketTickers = "!ticker@arr"
	// TickerReadLimit caps a single frame. The all-market array is several
	// hundred kilobytes, well above the library default of 32KB.
	TickerReadLimit int64 = 4 << 20
)

// ErrNoStreams is returned when subscribing to nothing.
var ErrNoStreams = errors.New("no streams to subscribe")

var _ StreamClient = (*Client)(nil)

// Client implements StreamClient.
type Client struct {
	apiURL     string
	wsURL      string
	HTTPClient HTTPClient
	WSClient   WSClient
	Parser     Parser
}

// NewDefaultClient creates a client for the public Binance endpoints.
func NewDefaultClient(ctx context.Context) *Client {
	return NewClient(ctx, APIEndpoint, WSEndpoint)
}

// NewClient creates a client for the given REST and websocket base URLs.
func NewClient(ctx context.Context, apiURL, wsURL string) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		wsURL:      strings.TrimRight(wsURL, "/"),
		HTTPClient: NewHTTPClient(),
		WSClient:   NewCoderClient(ctx),
		Parser:     json.Unmarshal,
	}
}

// NewSimpleClient creates a client for the public endpoints with the given transports.
func NewSimpleClient(httpClient HTTPClient, wsClient WSClient, parser Parser) *Client {
	return &Client{
		apiURL:     APIEndpoint,
		wsURL:      WSEndpoint,
		HTTPClient: httpClient,
		WSClient:   wsClient,
		Parser:     parser,
	}
}

// SymbolTicker returns the individual ticker stream name for symbol.
func SymbolTicker(symbol string) string {
	return strings.ToLower(symbol) + "@ticker"
}

// StreamURL builds a raw stream URL for one stream, or a combined stream URL
// for several. Combined stream messages arrive as {"stream":..., "data":...}.
func (c *Client) StreamURL(streams []string) string {
	if len(streams) == 1 {
		return c.wsURL + "/ws/" + streams[0]
	}
	return c.wsURL + "/stream?streams=" + strings.Join(streams, "/")
}

// TickerStream connects to the given streams and pushes every raw frame to
// outCh until the connection fails or the client context is done. The read
// error that ended the stream, if any, is offered to errCh. outCh is closed
// on exit.
func (c *Client) TickerStream(
	streams []string,
	outCh chan<- []byte,
	errCh chan<- error,
) error {
	if len(streams) == 0 {
		return ErrNoStreams
	}

	ctx := c.WSClient.GetContext()
	conn, _, err := c.WSClient.Dial(c.StreamURL(streams), nil)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}
	conn.SetReadLimit(TickerReadLimit)

	go func() {
		defer close(outCh)
		defer func() {
			_ = conn.Close(websocket.StatusNormalClosure, "")
		}()

		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				if errCh != nil && ctx.Err() == nil {
					select {
					case errCh <- err:
					default:
					}
				}
				return
			}

			select {
			case outCh <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// TickerSnapshot requests the 24hr statistics of symbols over REST.
func (c *Client) TickerSnapshot(ctx context.Context, symbols []string) ([]TickerStatistics, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	list, err := json.Marshal(symbols)
	if err != nil {
		return nil, fmt.Errorf("encode symbols: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v3/ticker/24hr?symbols=%s", c.apiURL, url.QueryEscape(string(list)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request ticker snapshot: %w", err)
	}

	var stats []TickerStatistics
	if err := c.parseResponse(resp, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) parseResponse(resp *http.Response, v any) error {
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if err := c.Parser(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
