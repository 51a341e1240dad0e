package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallel2(t *testing.T) {
	a, b, err := Parallel2(context.Background(),
		func(context.Context) (int, error) { return 7, nil },
		func(context.Context) (string, error) { return "seven", nil },
	)

	require.NoError(t, err)
	assert.Equal(t, 7, a)
	assert.Equal(t, "seven", b)
}

func TestParallel2_ErrorCancelsSibling(t *testing.T) {
	errFirst := errors.New("first failed")

	a, b, err := Parallel2(context.Background(),
		func(context.Context) (int, error) { return 1, errFirst },
		func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "cancelled", ctx.Err()
			case <-time.After(5 * time.Second):
				return "finished", nil
			}
		},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.Contains(t, err.Error(), "parallel execution failed")
	assert.Zero(t, a)
	assert.Empty(t, b)
}
