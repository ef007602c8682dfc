package storage

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"time"
)

const (
	backoffInitial    = 1 * time.Second
	backoffMax        = 30 * time.Second
	backoffMultiplier = 2.0
	maxAttempts       = 5
)

// Push uploads the local files at paths under prefix, keyed by base name.
// Each upload is retried with backoff up to maxAttempts before the whole
// push fails. Returns the uploaded object keys in input order.
func Push(ctx context.Context, up Uploader, prefix string, paths []string) ([]string, error) {
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		body, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("storage: read %s: %w", p, err)
		}
		key := path.Join(prefix, filepath.Base(p))
		if err := uploadWithRetry(ctx, up, key, body); err != nil {
			return nil, err
		}
		slog.Info("storage: uploaded", "key", key, "bytes", len(body))
		keys = append(keys, key)
	}
	return keys, nil
}

// uploadWithRetry attempts one upload, backing off between failures.
func uploadWithRetry(ctx context.Context, up Uploader, key string, body []byte) error {
	bo := newBackoff()
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = up.Upload(ctx, key, body)
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		wait := bo.next()
		slog.Warn("storage: upload failed, will retry",
			"key", key, "attempt", attempt, "err", lastErr, "retry_in", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("storage: upload %s after %d attempts: %w", key, maxAttempts, lastErr)
}

// backoff implements truncated exponential backoff with jitter.
type backoff struct {
	current time.Duration
}

func newBackoff() *backoff {
	return &backoff{current: backoffInitial}
}

// next returns the current backoff duration and advances the internal state.
func (b *backoff) next() time.Duration {
	d := b.current
	// Apply ±25 % jitter.
	jitter := time.Duration(float64(b.current) * 0.25 * (rand.Float64()*2 - 1)) //nolint:gosec // not crypto
	d += jitter
	if d < 0 {
		d = 0
	}

	b.current = time.Duration(float64(b.current) * backoffMultiplier)
	if b.current > backoffMax {
		b.current = backoffMax
	}
	return d
}
