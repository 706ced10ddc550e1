package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Paths(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "long flag", args: []string{"-components", "./modules"}, want: "./modules"},
		{name: "shorthand flag", args: []string{"-c", "./modules"}, want: "./modules"},
		{name: "positional argument", args: []string{"./modules"}, want: "./modules"},
		{name: "long flag beats positional", args: []string{"-components", "./a", "./b"}, want: "./a"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			require.False(t, shouldExit)
			require.Equal(t, tc.want, cfg.ComponentsPath)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{"./modules"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 0, cfg.HTTPPort)
	require.Empty(t, cfg.EnvFile)
}

func TestParse_AllOptions(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{
		"-components", "./modules",
		"-env-file", ".env.local",
		"-http-port", "8090",
		"-log-format", "JSON",
		"-log-level", "DEBUG",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, ".env.local", cfg.EnvFile)
	require.Equal(t, 8090, cfg.HTTPPort)
	require.Equal(t, "json", cfg.LogFormat, "format is case-insensitive")
	require.Equal(t, "debug", cfg.LogLevel, "level is case-insensitive")
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "COMPONENTS_PATH")
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-bogus", "./modules"}},
		{name: "invalid log format", args: []string{"-log-format", "xml", "./modules"}},
		{name: "invalid log level", args: []string{"-log-level", "trace", "./modules"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.False(t, shouldExit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
		})
	}
}
