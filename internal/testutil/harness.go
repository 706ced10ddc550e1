// Package testutil provides shared helpers for exercising the full runtime
// in tests: a thread-safe log buffer and a harness that materializes manifest
// trees into temp directories and boots the app against them.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weavekit/weavekit/internal/app"
	"github.com/weavekit/weavekit/internal/catalog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a harness boot.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// WriteManifestTree materializes a map of relative paths to file contents
// under a fresh temp directory and returns its root.
func WriteManifestTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// BootApp materializes the given manifest files and boots the app over them
// with the provided modules. Log output is captured at debug level.
func BootApp(t *testing.T, files map[string]string, modules ...catalog.Module) *HarnessResult {
	t.Helper()

	root := WriteManifestTree(t, files)

	cfg, err := app.NewConfig(app.Config{
		ComponentsPath: root,
		LogFormat:      "text",
		LogLevel:       "debug",
	})
	require.NoError(t, err)

	buf := &SafeBuffer{}
	booted, err := app.NewApp(buf, cfg, modules...)
	return &HarnessResult{
		LogOutput: buf.String(),
		Err:       err,
		App:       booted,
	}
}
