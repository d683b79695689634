package http_client

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vk/modreg/internal/handlers"
	"github.com/vk/modreg/internal/registry"
)

// FactoryName is the catalog name manifests use to bind this factory.
const FactoryName = "http_client"

// DefaultTimeout bounds every request made through the exported functions.
const DefaultTimeout = 30 * time.Second

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Client overrides the default client, for tests.
	Client *http.Client
}

// Factory exports request(method, url, body) and get(url). Both return an
// object with status_code, headers and body, or fail with the transport error.
func (m *Module) Factory(mod *registry.Module) error {
	client := m.Client
	if client == nil {
		client = &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	request := func(method, url, body string) (map[string]any, error) {
		return do(client, method, url, body)
	}
	get := func(url string) (map[string]any, error) {
		return do(client, http.MethodGet, url, "")
	}

	exports := mod.Exports.(*registry.Exports)
	exports.Set("request", request)
	exports.Set("get", get)
	return nil
}

func do(client *http.Client, method, url, body string) (map[string]any, error) {
	if method == "" {
		method = http.MethodGet
	}
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(strings.ToUpper(method), url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	headers := make(map[string]any, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}
	return map[string]any{
		"status_code": resp.StatusCode,
		"headers":     headers,
		"body":        string(bodyBytes),
	}, nil
}

// Register registers the factory with the catalog.
func (m *Module) Register(c *handlers.Catalog) {
	c.RegisterFactory(FactoryName, m.Factory)
}
