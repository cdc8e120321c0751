package integration_tests

import (
	"testing"

	"github.com/mijahauan/EG-HG/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Test for: invalid folios are rejected before any inning is played
func TestErrorHandling_InvalidFolio_IsRejected(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name: "hcl syntax error",
			files: map[string]string{"main.hcl": `
				inning "broken" {
					thesis = "(P a)"
				// Missing closing brace here
			`},
			wantErr: "failed to parse",
		},
		{
			name:    "graph with bad clif",
			files:   map[string]string{"main.hcl": `graph "g" { clif = "(forall x (P x))" }`},
			wantErr: "graph 'g'",
		},
		{
			name: "graph declared twice",
			files: map[string]string{
				"a.hcl": `graph "g" { clif = "(P a)" }`,
				"b.hcl": `graph "g" { clif = "(P b)" }`,
			},
			wantErr: "already declared",
		},
		{
			name: "domain missing from folio",
			files: map[string]string{"main.hcl": `
				inning "i" {
					thesis = "(P a)"
					domain = "nowhere"
				}
			`},
			wantErr: "graph not found in folio",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := testutil.RunIntegrationTest(t, tc.files)
			require.Error(t, result.Err)
			require.Contains(t, result.Err.Error(), tc.wantErr)
		})
	}
}

// Test for: a rejected move stops the inning and names the move
func TestErrorHandling_RejectedMove_StopsRun(t *testing.T) {
	folio := `
		inning "i" {
			thesis = "(P a)"
			move "erase" {
				arguments {
					item_ids = named("P")
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": folio})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "inning 'i' move 1 (erase)")
	require.Contains(t, result.Err.Error(), "negative area")
	require.Contains(t, result.Output, "Transformation rejected.")
}
