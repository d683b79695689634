package app

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/tidwall/gjson"
	"github.com/vk/modreg/internal/ctxlog"
)

// Run requires every entry identifier and writes their exports as a JSON
// object keyed by identifier. With List set it prints the record table
// instead and requires nothing.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.MetricsPort > 0 {
		if err := a.startServer(ctx, a.config.MetricsPort); err != nil {
			return err
		}
		defer func() {
			if cerr := a.closeServer(ctx); err == nil {
				err = cerr
			}
		}()
	}

	if a.config.List {
		return a.writeList()
	}

	entries := a.config.Entries
	if len(entries) == 0 {
		entries = a.model.Entries
	}
	if len(entries) == 0 {
		a.logger.Warn("No entries to require.")
	}

	results := make([]field, 0, len(entries))
	for _, id := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		exports, err := a.env.Require(id)
		if err != nil {
			return fmt.Errorf("failed to require %q: %w", id, err)
		}
		a.logger.Info("Required entry.", "id", id)
		results = append(results, field{Key: id, Value: exports})
	}

	out, err := newRenderer(a.host).render(results)
	if err != nil {
		return fmt.Errorf("failed to render exports: %w", err)
	}

	if a.config.Query != "" {
		res := gjson.GetBytes(out, a.config.Query)
		if !res.Exists() {
			return fmt.Errorf("query %q matched nothing", a.config.Query)
		}
		out = []byte(res.Raw)
	}

	if _, err := fmt.Fprintln(a.outW, string(out)); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) writeList() error {
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPACKAGE\tMODULE\tPATH\tSTATE")
	for _, r := range a.env.Records() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID(), r.Package(), dash(r.ModuleName()), dash(r.Path()), r.State())
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
