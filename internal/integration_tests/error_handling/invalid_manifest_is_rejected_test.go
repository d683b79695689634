package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modreg/internal/testutil"
)

func TestErrorHandling_InvalidManifest_IsRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   map[string]string
		errText string
	}{
		{
			name: "hcl syntax",
			files: map[string]string{"main.hcl": `
				package "p" {
					unit {
				// Missing closing braces here
			`},
			errText: "failed to parse HCL file",
		},
		{
			name:    "yaml unknown field",
			files:   map[string]string{"main.yaml": "packages:\n  - name: p\n    modules: []\n"},
			errText: "failed to decode YAML file",
		},
		{
			name: "two bodies",
			files: map[string]string{"main.hcl": `
				package "p" {
					unit {
						module  = "."
						factory = "print"
						source  = "exports.x = 1"
					}
				}
			`},
			errText: "sets more than one body",
		},
		{
			name:    "missing package name",
			files:   map[string]string{"main.yaml": "packages:\n  - units:\n      - module: \".\"\n        exports: 1\n"},
			errText: "package name is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunIntegrationTest(t, tc.files)

			// --- Assert ---
			require.Error(t, result.Err)
			assert.Nil(t, result.App)
			assert.Contains(t, result.Err.Error(), "application startup panicked")
			assert.Contains(t, result.Err.Error(), tc.errText)
		})
	}
}
