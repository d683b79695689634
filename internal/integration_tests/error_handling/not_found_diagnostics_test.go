package integration_tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modreg/internal/app"
	"github.com/vk/modreg/internal/registry"
	"github.com/vk/modreg/internal/resolve"
	"github.com/vk/modreg/internal/testutil"
)

func TestErrorHandling_NotFound_ListsRelativeCandidates(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"main.hcl": `
		entries = ["p"]

		package "p" {
			unit {
				module = "."
				path   = "p/a/index.js"
				source = "require('./missing')"
			}
		}
	`}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	var nf *registry.NotFoundError
	require.True(t, errors.As(result.Err, &nf), "expected a NotFoundError in %v", result.Err)
	assert.Equal(t, resolve.ModeRelative, nf.Mode)
	assert.Equal(t, "p", nf.From)
	require.Len(t, nf.Candidates, 7)
	assert.Equal(t, "p:p/a/missing", nf.Candidates[0].String())
	assert.Equal(t, "p:p/a/missing/index.cjs", nf.Candidates[6].String())
	assert.Contains(t, result.Err.Error(), "p:p/a/missing.js")
}

func TestErrorHandling_NotFound_ListsPackageCandidates(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"main.hcl": `
		package "x" {
			unit {
				module  = "./other"
				exports = 1
			}
		}
	`}
	cfg := app.Config{Entries: []string{"x/y/z"}}

	// --- Act ---
	result := testutil.RunIntegrationTestWithConfig(t.Context(), t, cfg, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, registry.ErrModuleNotFound)
	var nf *registry.NotFoundError
	require.True(t, errors.As(result.Err, &nf))
	assert.Equal(t, resolve.ModePackage, nf.Mode)
	got := make([]string, len(nf.Candidates))
	for i, c := range nf.Candidates {
		got[i] = c.String()
	}
	assert.Equal(t, []string{"x/y/z:.", "x/y:./z", "x:./y/z"}, got)
}
