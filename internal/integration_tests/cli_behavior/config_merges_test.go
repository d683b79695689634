package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modreg/internal/testutil"
)

// TestCLI_MergesManifests_AcrossFormats validates that HCL and YAML manifests
// found anywhere under the manifest directory end up in one environment.
func TestCLI_MergesManifests_AcrossFormats(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"manifests/a.hcl": `
			package "a" {
				unit {
					module  = "."
					exports = { from = "hcl" }
				}
			}
		`,
		"manifests/nested/b.yaml": `
packages:
  - name: b
    units:
      - module: "."
        source: "exports.from = 'yaml'; exports.a = require('a').from"
`,
		"manifests/c.yml": "entries: [b, a]\n",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.JSONEq(t, `{"b": {"from": "yaml", "a": "hcl"}, "a": {"from": "hcl"}}`, result.Output)
	testutil.AssertModuleLoaded(t, result, "a")
	testutil.AssertModuleLoaded(t, result, "b")
}
