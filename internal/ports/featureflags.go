package ports

import (
	"context"
)

// FeatureFlags evaluates boolean toggles without exposing where they live.
// The application uses it for behaviour that deliberately departs from the
// default contract, such as discarding stale generations.
//
//	if flags.IsEnabled(ctx, app.FlagDiscardStaleGenerations, false) {
//	    ...
//	}
type FeatureFlags interface {
	// IsEnabled returns defaultValue if the flag is unknown.
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
}
