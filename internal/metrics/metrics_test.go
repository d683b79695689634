package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modreg/internal/registry"
)

func TestCollector_ObservesEnvironment(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := NewCollector("")
	env := registry.New(registry.WithObserver(c))

	ok, err := env.Define("p", ".", "p/index.js")
	require.NoError(t, err)
	_, err = env.Define("p", "./alias", "p/index.js")
	require.NoError(t, err)
	require.NoError(t, ok.Register(func(m *registry.Module) error { return nil }))

	bad, err := env.Define("q", ".", "")
	require.NoError(t, err)
	require.NoError(t, bad.Register(func(m *registry.Module) error { return errors.New("boom") }))

	// --- Act ---
	_, err = env.Require("p")
	require.NoError(t, err)
	_, err = env.Require("q")
	require.Error(t, err)
	_, err = env.Require("missing")
	require.Error(t, err)

	// --- Assert ---
	assert.Equal(t, 1.0, testutil.ToFloat64(c.defines.WithLabelValues("p", "new")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.defines.WithLabelValues("p", "alias")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.loads.WithLabelValues("p", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.loads.WithLabelValues("q", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.unresolved.WithLabelValues("package")))
}

func TestCollector_Handler(t *testing.T) {
	t.Parallel()

	c := NewCollector("test")
	c.Unresolved(&registry.NotFoundError{ID: "x"})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_resolver_unresolved_total")
}
