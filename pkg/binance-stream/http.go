package binancestream

import (
	"net/http"
	"time"
)

// DefaultHTTPTimeout bounds a single REST round trip.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPClient Define the interface for the HTTP client's behaviour
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ HTTPClient = (*http.Client)(nil)

// NewHTTPClient creates an HTTP client with DefaultHTTPTimeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultHTTPTimeout}
}
