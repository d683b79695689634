package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// LoadCount returns how many times the log output reports the module with
// the given ID as loaded.
func LoadCount(result *HarnessResult, id string) int {
	n := 0
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if !strings.Contains(line, `msg="Module loaded."`) {
			continue
		}
		for _, field := range strings.Fields(line) {
			if field == "id="+id {
				n++
			}
		}
	}
	return n
}

// AssertModuleLoaded checks that the module with the given ID ran its
// factory exactly once.
func AssertModuleLoaded(t *testing.T, result *HarnessResult, id string) {
	t.Helper()
	require.Equal(t, 1, LoadCount(result, id), "expected module %q to be loaded exactly once", id)
}
