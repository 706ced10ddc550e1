// Package ollama provides a local Ollama chat provider component. It is
// marked optional in its manifest: a deployment without a local model server
// simply drops it from the scan.
package ollama

import (
	"net/http"

	"github.com/weavekit/weavekit/internal/catalog"
	"github.com/weavekit/weavekit/internal/manifest"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3"
)

// Client is a configured Ollama API client.
type Client struct {
	http    *http.Client
	baseURL string
	model   string
}

// NewClient builds the provider from the shared HTTP client and the
// component's settings. Ollama needs no credentials.
func NewClient(httpClient *http.Client, settings manifest.Settings) (*Client, error) {
	baseURL := defaultBaseURL
	if v, ok := settings.String("base_url"); ok {
		baseURL = v
	}
	model := defaultModel
	if v, ok := settings.String("model"); ok {
		model = v
	}

	return &Client{http: httpClient, baseURL: baseURL, model: model}, nil
}

// ModelID returns the configured model identifier.
func (c *Client) ModelID() string { return c.model }

// Endpoint returns the configured API base URL.
func (c *Client) Endpoint() string { return c.baseURL }

// Ready always reports true; a local server requires no credentials.
func (c *Client) Ready() bool { return true }

// Register registers the constructor with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterConstructor("NewOllamaClient", NewClient)
}
