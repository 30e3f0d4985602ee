package binancestream

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
)

// WSConnection is the subset of *websocket.Conn the ticker stream needs.
type WSConnection interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Close(code websocket.StatusCode, reason string) error
	SetReadLimit(n int64)
}

var _ WSConnection = (*websocket.Conn)(nil)

// WSClient piggybacks on coder/websocket. Golang has no standard websocket implementation.
type WSClient interface {
	GetContext() context.Context
	Dial(
		url string,
		opts *websocket.DialOptions,
	) (WSConnection, *http.Response, error)
}

var _ WSClient = (*CoderClient)(nil)

// CoderClient implements WSClient using coder/websocket.
type CoderClient struct {
	Context context.Context
}

// NewCoderClient creates a new CoderClient.
func NewCoderClient(ctx context.Context) *CoderClient {
	return &CoderClient{
		ctx,
	}
}

// Dial implements [WSClient].
func (c *CoderClient) Dial(
	url string, opts *websocket.DialOptions,
) (WSConnection, *http.Response, error) {
	conn, resp, err := websocket.Dial(c.Context, url, opts)
	if err != nil {
		return nil, resp, err
	}
	return conn, resp, nil
}

// GetContext implements [WSClient].
func (c *CoderClient) GetContext() context.Context {
	return c.Context
}
