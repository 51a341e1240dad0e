// Package flags provides the configuration-backed feature flag source.
package flags

import (
	"context"
	"strings"

	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// Static serves flags loaded once from the features config section. Names
// are matched case-insensitively, and "_" and "-" are interchangeable so
// that gate_interactive_on_auth and gate-interactive-on-auth are one flag.
type Static struct {
	flags map[string]bool
}

var _ ports.FeatureFlags = (*Static)(nil)

// New copies values.
func New(values map[string]bool) *Static {
	s := &Static{flags: make(map[string]bool, len(values))}
	for name, on := range values {
		s.flags[normalize(name)] = on
	}

	return s
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	if on, ok := s.flags[normalize(flag)]; ok {
		return on
	}

	return defaultValue
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}
