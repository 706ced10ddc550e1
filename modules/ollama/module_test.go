package ollama

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/weavekit/weavekit/internal/manifest"
)

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c, err := NewClient(&http.Client{}, manifest.Settings{})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:11434", c.Endpoint())
	require.Equal(t, "llama3", c.ModelID())
}

func TestNewClient_Settings(t *testing.T) {
	t.Parallel()

	c, err := NewClient(&http.Client{}, manifest.Settings{
		"base_url": cty.StringVal("http://gpu-box:11434"),
		"model":    cty.StringVal("mistral"),
	})
	require.NoError(t, err)
	require.Equal(t, "http://gpu-box:11434", c.Endpoint())
	require.Equal(t, "mistral", c.ModelID())
}

func TestClient_Ready(t *testing.T) {
	t.Parallel()

	// A local server needs no credentials.
	c, err := NewClient(&http.Client{}, manifest.Settings{})
	require.NoError(t, err)
	require.True(t, c.Ready())
}
