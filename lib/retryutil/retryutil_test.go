package retryutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEventualSuccess(t *testing.T) {
	calls := 0
	out, err := Do(context.Background(), 3, time.Millisecond, func() (string, error) {
		calls++
		if calls < 3 {
			return "", fmt.Errorf("not ready")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, 3, calls)
}

func TestExhaustion(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), 3, time.Millisecond, func() (int, error) {
		calls++
		return 0, fmt.Errorf("still not ready")
	})
	require.EqualError(t, err, "still not ready")
	require.Equal(t, 3, calls)
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Do(ctx, 3, time.Minute, func() (int, error) {
		return 0, fmt.Errorf("not ready")
	})
	require.ErrorIs(t, err, context.Canceled)
}
