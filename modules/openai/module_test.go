package openai

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/weavekit/weavekit/internal/manifest"
)

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(&http.Client{}, manifest.Settings{})
	require.NoError(t, err)
	require.Equal(t, "https://api.openai.com/v1", c.Endpoint())
	require.Equal(t, "gpt-4o-mini", c.ModelID())
}

func TestNewClient_Settings(t *testing.T) {
	c, err := NewClient(&http.Client{}, manifest.Settings{
		"base_url": cty.StringVal("https://proxy.internal/v1"),
		"model":    cty.StringVal("gpt-4.1"),
	})
	require.NoError(t, err)
	require.Equal(t, "https://proxy.internal/v1", c.Endpoint())
	require.Equal(t, "gpt-4.1", c.ModelID())
}

func TestClient_Ready(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c, err := NewClient(&http.Client{}, manifest.Settings{})
	require.NoError(t, err)
	require.False(t, c.Ready())

	t.Setenv("OPENAI_API_KEY", "sk-test")
	c, err = NewClient(&http.Client{}, manifest.Settings{})
	require.NoError(t, err)
	require.True(t, c.Ready())
}
