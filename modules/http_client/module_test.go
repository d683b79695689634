package http_client

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modreg/internal/handlers"
	"github.com/vk/modreg/internal/jsunit"
	"github.com/vk/modreg/internal/registry"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		fmt.Fprintf(w, "%s %s", r.URL.Path, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFactory_GoCallers(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv := echoServer(t)
	env := registry.New()
	rec, err := env.Define("net", "./http", "")
	require.NoError(t, err)
	require.NoError(t, rec.Register((&Module{Client: srv.Client()}).Factory))

	// --- Act ---
	v, err := env.Require("net/http")
	require.NoError(t, err)
	exports := v.(*registry.Exports)
	requestFn, _ := exports.Get("request")
	resp, err := requestFn.(func(string, string, string) (map[string]any, error))("post", srv.URL+"/x", "payload")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp["status_code"])
	assert.Equal(t, "/x payload", resp["body"])
	assert.Equal(t, "POST", resp["headers"].(map[string]any)["X-Method"])
}

func TestFactory_JavaScriptCallers(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv := echoServer(t)
	catalog := handlers.New()
	(&Module{Client: srv.Client()}).Register(catalog)
	factory, ok := catalog.Factory(FactoryName)
	require.True(t, ok)

	env := registry.New()
	host := jsunit.New(env)
	lib, err := env.Define("net", "./http", "")
	require.NoError(t, err)
	require.NoError(t, lib.Register(factory))

	app, err := env.Define("app", ".", "")
	require.NoError(t, err)
	body, err := host.Body("app", fmt.Sprintf(`
		var http = require('net/http');
		var r = http.get(%q);
		exports.status = r.status_code;
		exports.body = r.body;
		try {
			http.get('http://[::1]:namedport');
		} catch (e) {
			exports.failed = true;
		}
	`, srv.URL+"/hello"))
	require.NoError(t, err)
	require.NoError(t, app.Register(body))

	// --- Act ---
	v, err := env.Require("app")

	// --- Assert ---
	require.NoError(t, err)
	exports := v.(*registry.Exports)
	status, _ := exports.Get("status")
	assert.EqualValues(t, 200, status)
	got, _ := exports.Get("body")
	assert.Equal(t, "/hello ", got)
	failed, _ := exports.Get("failed")
	assert.Equal(t, true, failed)
}
