package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/mijahauan/EG-HG/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an app over the HCL loader with debug logging into
// the returned buffer. Set EGHG_TEST_LOGS=true to print the buffer after
// the test.
func SetupAppTest(t *testing.T, cfg *Config) (*App, *SafeBuffer) {
	t.Helper()

	out := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(out, cfg, hcl.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("EGHG_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	return testApp, out
}
