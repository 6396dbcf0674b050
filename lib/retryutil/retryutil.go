package retryutil

import (
	"context"
	"log/slog"
	"time"
)

// Do runs fn up to attempts times, sleeping delay between failures.
// It returns the last error when every attempt fails. The portal
// renders some tables only after its own scripts settle, so readiness
// dependent extraction is wrapped with this rather than retrying per
// field.
func Do[T any](ctx context.Context, attempts int, delay time.Duration, fn func() (T, error)) (T, error) {
	var out T
	var err error

	for i := 0; i < attempts; i++ {
		out, err = fn()
		if err == nil {
			return out, nil
		}
		slog.WarnContext(ctx, "retrying after failure", "attempt", i+1, "of", attempts, "err", err)

		if i == attempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return out, ctx.Err()
		}
	}
	return out, err
}
