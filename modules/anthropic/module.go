// Package anthropic provides the Anthropic chat provider component.
package anthropic

import (
	"net/http"
	"os"

	"github.com/weavekit/weavekit/internal/catalog"
	"github.com/weavekit/weavekit/internal/manifest"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

const (
	defaultBaseURL = "https://api.anthropic.com/v1"
	defaultModel   = "claude-3-5-sonnet-latest"
	apiKeyEnv      = "ANTHROPIC_API_KEY"
)

// Client is a configured Anthropic API client.
type Client struct {
	http    *http.Client
	baseURL string
	model   string
	apiKey  string
}

// NewClient builds the provider from the shared HTTP client and the
// component's settings.
func NewClient(httpClient *http.Client, settings manifest.Settings) (*Client, error) {
	baseURL := defaultBaseURL
	if v, ok := settings.String("base_url"); ok {
		baseURL = v
	}
	model := defaultModel
	if v, ok := settings.String("model"); ok {
		model = v
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		model:   model,
		apiKey:  os.Getenv(apiKeyEnv),
	}, nil
}

// ModelID returns the configured model identifier.
func (c *Client) ModelID() string { return c.model }

// Endpoint returns the configured API base URL.
func (c *Client) Endpoint() string { return c.baseURL }

// Ready reports whether the client has credentials to make requests.
func (c *Client) Ready() bool { return c.apiKey != "" }

// Register registers the constructor with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterConstructor("NewAnthropicClient", NewClient)
}
