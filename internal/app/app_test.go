package app

import (
	"context"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const folioHCL = `
graph "greek" {
  description = "Socrates is a man"
  clif        = "(Man Socrates)"
}

inning "double negation" {
  thesis = "(not (P a))"
  domain = "greek"

  move "remove_negation" {}
  move "remove_negation" {}
  move "erase" {
    arguments {
      item_ids = items(contested)
    }
  }
}

inning "wrapped" {
  thesis = "(Q b)"

  move "add_double_cut" {
    arguments {
      item_ids = named("Q")
    }
  }
}
`

func writeFolio(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folio.hcl"), []byte(content), 0o600))
	return dir
}

func TestRun_PlaysEveryInning(t *testing.T) {
	cfg := &Config{FolioPath: writeFolio(t, folioHCL)}
	a, out := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))

	log := out.String()
	assert.Contains(t, log, `inning "double negation": status=skeptic_win player=proposer moves=3`)
	assert.Contains(t, log, `inning "wrapped": status=in_progress player=proposer moves=1`)
	assert.Contains(t, log, "(not (not (not (Q b))))")
	assert.Equal(t, []string{"greek"}, a.Game().Names())
}

func TestRun_SelectedInning(t *testing.T) {
	cfg := &Config{FolioPath: writeFolio(t, folioHCL), Inning: "wrapped"}
	a, out := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.NotContains(t, out.String(), `inning "double negation"`)
	assert.Contains(t, out.String(), `inning "wrapped"`)
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		folio   string
		inning  string
		wantErr string
	}{
		{name: "invalid hcl", folio: `graph "g" {`, wantErr: "failed to load folio"},
		{name: "bad graph clif", folio: `graph "g" { clif = "(not)" }`, wantErr: "failed to build folio"},
		{name: "unknown inning", folio: folioHCL, inning: "missing", wantErr: "inning 'missing' not found"},
		{
			name: "rejected move",
			folio: `inning "i" {
				thesis = "(P a)"
				move "erase" {
					arguments {
						item_ids = named("P")
					}
				}
			}`,
			wantErr: "inning 'i' move 1 (erase)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{FolioPath: writeFolio(t, tc.folio), Inning: tc.inning}
			a, _ := SetupAppTest(t, cfg)
			assert.ErrorContains(t, a.Run(context.Background()), tc.wantErr)
		})
	}
}

func TestRun_EmptyFolio(t *testing.T) {
	cfg := &Config{FolioPath: t.TempDir()}
	a, out := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "No innings found in folio")
}

func TestRun_Translate(t *testing.T) {
	cfg := &Config{Translate: "(forall (x) (if (Man x) (Mortal x)))"}
	a, out := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "nodes=1 edges=6 cuts=4")
	assert.Contains(t, out.String(), "(forall (x) (if (Man x) (Mortal x)))")

	t.Run("syntax error", func(t *testing.T) {
		cfg := &Config{Translate: "(Man"}
		a, _ := SetupAppTest(t, cfg)
		assert.ErrorContains(t, a.Run(context.Background()), "translation failed")
	})
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRun_TranslateWithHealthServer(t *testing.T) {
	// Translate mode returns before the server goroutine may have started.
	for i := 0; i < 20; i++ {
		cfg := &Config{Translate: "(P a)", HealthcheckPort: freePort(t)}
		a, out := SetupAppTest(t, cfg)

		require.NoError(t, a.Run(context.Background()))
		assert.Contains(t, out.String(), "nodes=1 edges=1 cuts=0")
	}
}

func TestRoutes(t *testing.T) {
	cfg := &Config{Translate: "(P a)"}
	a, _ := SetupAppTest(t, cfg)
	require.NoError(t, a.Run(context.Background()))

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, 200, rec.Code)
		assert.Equal(t, "OK\n", rec.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `eghg_translations_total{outcome="ok"} 1`)
	})
}
