package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/modreg/internal/config"
	"github.com/vk/modreg/internal/ctxlog"
	"github.com/vk/modreg/internal/handlers"
	"github.com/vk/modreg/internal/jsunit"
	"github.com/vk/modreg/internal/metrics"
	"github.com/vk/modreg/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	model      *config.Model
	catalog    *handlers.Catalog
	env        *registry.Environment
	host       *jsunit.Host
	metrics    *metrics.Collector
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the
// manifests, registers the Go modules (coreModules when none are given) and
// defines every unit. Configuration problems are fatal and panic.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...handlers.Module) *App {
	logW := cfg.LogOutput
	if logW == nil {
		logW = outW
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.ManifestPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load manifests: %w", err))
	}
	logger.Debug("Manifests loaded.", "units", len(model.Units))

	catalog := handlers.New()
	if len(modules) == 0 {
		modules = coreModules(outW)
	}
	for _, mod := range modules {
		mod.Register(catalog)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "factories", catalog.Names())

	collector := metrics.NewCollector(metrics.DefaultNamespace)
	env := registry.New(registry.WithLogger(logger), registry.WithObserver(collector))
	host := jsunit.New(env, jsunit.WithLogger(logger))
	if err := host.Expose(cfg.GlobalName); err != nil {
		panic(fmt.Errorf("failed to expose registry as %q: %w", cfg.GlobalName, err))
	}

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		model:   model,
		catalog: catalog,
		env:     env,
		host:    host,
		metrics: collector,
	}

	if err := a.defineUnits(ctx); err != nil {
		panic(err)
	}
	if err := env.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Environment validation passed.", "env", env.ID())

	return a
}

// Environment returns the application's registry environment.
func (a *App) Environment() *registry.Environment {
	return a.env
}

// Host returns the JavaScript host bound to the environment.
func (a *App) Host() *jsunit.Host {
	return a.host
}

// Metrics returns the collector observing the environment.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}
