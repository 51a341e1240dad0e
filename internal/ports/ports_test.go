package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string {
	return s.name
}

func (s *stubChecker) Check(context.Context) error {
	return s.err
}

// blockingChecker waits for its context to end.
type blockingChecker struct {
	name string
}

func (b *blockingChecker) Name() string {
	return b.name
}

func (b *blockingChecker) Check(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRegister(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "document-store"}))

	err := registry.Register(&stubChecker{name: "document-store"})

	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "document-store")
	assert.Len(t, registry.checkers, 1)
}

func TestCheckAll_NoCheckers(t *testing.T) {
	result := NewHealthRegistry().CheckAll(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Empty(t, result.Checks)
	assert.False(t, result.Timestamp.IsZero())
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name           string
		checkers       []HealthChecker
		expectedStatus HealthStatus
		failing        map[string]string
	}{
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "generative-api"},
				&stubChecker{name: "document-store"},
			},
			expectedStatus: HealthStatusHealthy,
		},
		{
			name: "one unhealthy",
			checkers: []HealthChecker{
				&stubChecker{name: "generative-api"},
				&stubChecker{name: "document-store", err: errors.New("connection refused")},
			},
			expectedStatus: HealthStatusUnhealthy,
			failing:        map[string]string{"document-store": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Len(t, result.Checks, len(tt.checkers))

			for name, check := range result.Checks {
				if msg, ok := tt.failing[name]; ok {
					assert.Equal(t, HealthStatusUnhealthy, check.Status)
					assert.Equal(t, msg, check.Message)
				} else {
					assert.Equal(t, HealthStatusHealthy, check.Status)
					assert.Empty(t, check.Message)
				}
			}
		})
	}
}

func TestCheckAll_PerCheckTimeout(t *testing.T) {
	registry := NewHealthRegistry()
	registry.CheckTimeout = 20 * time.Millisecond

	require.NoError(t, registry.Register(&blockingChecker{name: "slow"}))
	require.NoError(t, registry.Register(&stubChecker{name: "fast"}))

	start := time.Now()
	result := registry.CheckAll(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["slow"].Status)
	assert.Contains(t, result.Checks["slow"].Message, "deadline exceeded")
	assert.Equal(t, HealthStatusHealthy, result.Checks["fast"].Status)
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&blockingChecker{name: "slow"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow"].Message, "context canceled")
}
