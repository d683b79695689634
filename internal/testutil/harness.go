package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/vk/modreg/internal/app"
	"github.com/vk/modreg/internal/handlers"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files into a temporary directory, builds an App
// reading every manifest in it and runs it with a background context.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...handlers.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithConfig(context.Background(), t, app.Config{}, files, modules...)
}

// RunIntegrationTestWithConfig is RunIntegrationTest with a caller supplied
// context and configuration. ManifestPaths, LogOutput and LogLevel are
// overwritten. A startup panic is returned as Err with a nil App.
func RunIntegrationTestWithConfig(ctx context.Context, t *testing.T, cfg app.Config, files map[string]string, modules ...handlers.Module) *HarnessResult {
	t.Helper()

	out := &app.SafeBuffer{}
	logs := &app.SafeBuffer{}
	cfg.ManifestPaths = []string{app.WriteManifests(t, files)}
	cfg.LogOutput = logs
	cfg.LogLevel = "debug"

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Err: err}
	}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("MODREG_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, appConfig, app.DefaultLoader(), modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logs.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("MODREG_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}
