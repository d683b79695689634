package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit_Kind(t *testing.T) {
	testCases := []struct {
		name      string
		unit      Unit
		expected  BodyKind
		expectErr string
	}{
		{name: "factory", unit: Unit{Factory: "env_vars"}, expected: BodyFactory},
		{name: "source", unit: Unit{Source: "exports.a = 1"}, expected: BodySource},
		{name: "function", unit: Unit{Function: "function(){}"}, expected: BodyFunction},
		{name: "exports", unit: Unit{HasExports: true}, expected: BodyExports},
		{name: "alias only", unit: Unit{Package: "p", Module: "./alias", Path: "p/a.js"}, expected: BodyNone},
		{name: "two", unit: Unit{Package: "p", Factory: "x", Source: "y"}, expectErr: "factory, source"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := tc.unit.Kind()
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func TestModel_Validate(t *testing.T) {
	m := &Model{Units: []*Unit{
		{Package: "ok", Module: ".", Factory: "f"},
		{Package: "", Module: ".", Factory: "f"},
		{Package: "p", Factory: "f"},
	}}

	err := m.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "package name is required")
	assert.Contains(t, err.Error(), "module or path is required")
}

func TestModel_Merge(t *testing.T) {
	m := &Model{Entries: []string{"a"}}
	m.Merge(&Model{Entries: []string{"b"}, Units: []*Unit{{Package: "b"}}})
	m.Merge(nil)

	assert.Equal(t, []string{"a", "b"}, m.Entries)
	assert.Len(t, m.Units, 1)
}
