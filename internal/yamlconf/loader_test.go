package yamlconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modreg/internal/config"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeManifest(t, `
entries: [app]
packages:
  - name: app
    units:
      - module: "."
        path: app/index.js
        source: |
          exports.greeting = require('./greet').text
      - path: app/greet.js
        exports:
          text: hello
          n: 2
      - path: app/nothing.js
        exports: null
---
packages:
  - name: env
    units:
      - module: "."
        factory: env_vars
`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	expected := &config.Model{
		Entries: []string{"app"},
		Units: []*config.Unit{
			{Package: "app", Module: ".", Path: "app/index.js", Source: "exports.greeting = require('./greet').text\n", File: path},
			{Package: "app", Path: "app/greet.js", Exports: map[string]any{"text": "hello", "n": 2}, HasExports: true, File: path},
			{Package: "app", Path: "app/nothing.js", File: path},
			{Package: "env", Module: ".", Factory: "env_vars", File: path},
		},
	}
	if diff := cmp.Diff(expected, model); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Load_NullExportsIsNoBody(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeManifest(t, `
packages:
  - name: p
    units:
      - module: x
        path: p/x.js
        exports: null
      - module: y
        path: p/y.js
        exports: ~
`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Units, 2)
	for _, u := range model.Units {
		kind, err := u.Kind()
		require.NoError(t, err)
		assert.False(t, u.HasExports, "unit %s", u)
		assert.Equal(t, config.BodyNone, kind, "unit %s", u)
	}
}

func TestLoader_Load_NonStringKeys(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeManifest(t, `
packages:
  - name: p
    units:
      - path: p/keys.js
        exports:
          1: one
          two: 2
          nested:
            - {true: val}
`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Units, 1)
	expected := map[string]any{
		"1":      "one",
		"two":    2,
		"nested": []any{map[string]any{"true": "val"}},
	}
	if diff := cmp.Diff(expected, model.Units[0].Exports); diff != "" {
		t.Errorf("exports mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Load_UnknownField(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "packages:\n  - name: x\n    unitz: []\n")

	_, err := NewLoader().Load(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode YAML file")
}

func TestLoader_Load_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open YAML file")
}
