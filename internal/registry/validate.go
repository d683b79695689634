package registry

import (
	"context"
	"errors"

	"github.com/vk/modreg/internal/ctxlog"
)

// Validate checks that every defined record has a factory, so a manifest that
// names a unit without binding code fails at startup instead of at the first
// require.
func (e *Environment) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var errs []error
	for _, r := range e.Records() {
		if r.State() == Unregistered {
			logger.Warn("Module defined without a factory.", "id", r.ID())
			errs = append(errs, &MissingRegistrationError{ID: r.ID()})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Debug("Registry validation passed.", "records", len(e.Records()))
	return nil
}
