// Package testutil runs the whole application against folio files written
// into a temporary directory.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mijahauan/EG-HG/internal/app"
	"github.com/mijahauan/EG-HG/internal/hcl"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunIntegrationTest writes files (relative path -> content) into a fresh
// folio directory and runs the app over it with a background context.
func RunIntegrationTest(t *testing.T, files map[string]string, opts ...func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts ...func(*app.Config)) *HarnessResult {
	t.Helper()

	folioDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(folioDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := &app.Config{
		FolioPath: folioDir,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	out := &app.SafeBuffer{}
	testApp := app.NewApp(out, cfg, hcl.NewLoader())
	runErr := testApp.Run(ctx)

	if os.Getenv("EGHG_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
	}

	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		App:    testApp,
	}
}

// WithInning restricts the run to one inning.
func WithInning(name string) func(*app.Config) {
	return func(cfg *app.Config) {
		cfg.Inning = name
	}
}
