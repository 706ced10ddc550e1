// Package httpclient provides a shared, tuned *http.Client component for
// every provider that speaks HTTP.
package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/weavekit/weavekit/internal/catalog"
	"github.com/weavekit/weavekit/internal/manifest"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// defaultTimeout applies when the manifest does not set one.
const defaultTimeout = 30 * time.Second

// NewHTTPClient builds the shared HTTP client from component settings.
func NewHTTPClient(settings manifest.Settings) (*http.Client, error) {
	timeout := defaultTimeout
	if raw, ok := settings.String("timeout"); ok {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", raw, err)
		}
		timeout = parsed
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}, nil
}

// Register registers the constructor with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterConstructor("NewHTTPClient", NewHTTPClient)
}
