package binancestream

import (
	"context"
	"net/http"
	"testing"

	"github.com/coder/websocket"
)

func TestNewCoderClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{
			name: "with background context",
			ctx:  context.Background(),
		},
		{
			name: "with TODO context",
			ctx:  context.TODO(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := NewCoderClient(tt.ctx)

			if client == nil {
				t.Fatal("expected non-nil CoderClient")
			}
			if client.GetContext() != tt.ctx {
				t.Error("context not set correctly")
			}
		})
	}
}

func TestCoderClient_GetContext_WithCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	client := &CoderClient{Context: ctx}

	got := client.GetContext()
	if got != ctx {
		t.Error("GetContext() should return the exact context")
	}

	cancel()

	select {
	case <-got.Done():
	default:
		t.Error("context should be cancelled")
	}
}

func TestWSConnection_Interface(t *testing.T) {
	t.Parallel()

	// Compile-time check that *websocket.Conn implements WSConnection
	var _ WSConnection = (*websocket.Conn)(nil)
}

func TestCoderClient_Dial_Errors(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		url  string
	}{
		{
			name: "invalid URL",
			ctx:  context.Background(),
			url:  "invalid-url-without-scheme",
		},
		{
			name: "connection refused",
			ctx:  context.Background(),
			url:  "ws://127.0.0.1:1/ws",
		},
		{
			name: "cancelled context",
			ctx:  cancelled,
			url:  "wss://stream.binance.com:9443/ws/!ticker@arr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := NewCoderClient(tt.ctx)
			conn, _, err := client.Dial(tt.url, nil)

			if err == nil {
				t.Error("expected dial error")
				if conn != nil {
					_ = conn.Close(websocket.StatusNormalClosure, "test cleanup")
				}
			}
			if conn != nil {
				t.Error("expected nil connection on error")
			}
		})
	}
}

// MockWSClientForDialTests is a mock WSClient for testing dial behaviour.
type MockWSClientForDialTests struct {
	ctx      context.Context
	dialFunc func(url string, opts *websocket.DialOptions) (WSConnection, *http.Response, error)
}

func (m *MockWSClientForDialTests) GetContext() context.Context {
	return m.ctx
}

func (m *MockWSClientForDialTests) Dial(
	url string,
	opts *websocket.DialOptions,
) (WSConnection, *http.Response, error) {
	return m.dialFunc(url, opts)
}

func TestWSClient_Dial_WithOptions(t *testing.T) {
	t.Parallel()

	var receivedOpts *websocket.DialOptions

	mockClient := &MockWSClientForDialTests{
		ctx: context.Background(),
		dialFunc: func(_ string, opts *websocket.DialOptions) (WSConnection, *http.Response, error) {
			receivedOpts = opts
			return &MockWSConnection{}, nil, nil
		},
	}

	opts := &websocket.DialOptions{
		Subprotocols: []string{"test-protocol"},
	}

	var client WSClient = mockClient
	if _, _, err := client.Dial("wss://example.com/ws", opts); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if receivedOpts != opts {
		t.Error("options not passed through correctly")
	}
}
