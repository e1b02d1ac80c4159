package services

import (
	"context"
	"fmt"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

// SettleOptions bounds the wait for an asynchronous view update
type SettleOptions struct {
	Timeout time.Duration
	Poll    time.Duration
}

// DefaultSettleOptions returns the settle bounds used when none are configured
func DefaultSettleOptions() SettleOptions {
	return SettleOptions{
		Timeout: 5 * time.Second,
		Poll:    100 * time.Millisecond,
	}
}

// ReadFunc reads the current text of an observed value
type ReadFunc func(ctx context.Context) (string, error)

// WaitUntil reads once immediately and then polls until accept returns true
// for the read value, which it returns. Read errors are retried until the
// deadline because the element may be re-rendering. On expiry it returns the
// last successfully read value with an error wrapping
// models.ErrPreconditionTimeout.
func WaitUntil(ctx context.Context, what string, opts SettleOptions, read ReadFunc, accept func(string) bool) (string, error) {
	if opts.Timeout <= 0 || opts.Poll <= 0 {
		opts = DefaultSettleOptions()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	ticker := time.NewTicker(opts.Poll)
	defer ticker.Stop()

	var (
		last    string
		lastErr error
	)
	for {
		current, err := read(timeoutCtx)
		if err == nil {
			last, lastErr = current, nil
			if accept(current) {
				return current, nil
			}
		} else {
			lastErr = err
		}

		select {
		case <-ticker.C:
		case <-timeoutCtx.Done():
			if ctx.Err() != nil {
				return last, ctx.Err()
			}
			if lastErr != nil {
				return last, fmt.Errorf("%w: %s did not settle within %s: %v", models.ErrPreconditionTimeout, what, opts.Timeout, lastErr)
			}
			return last, fmt.Errorf("%w: %s did not settle within %s (last %q)", models.ErrPreconditionTimeout, what, opts.Timeout, last)
		}
	}
}

// WaitForChange polls until the value read differs from before
func WaitForChange(ctx context.Context, what, before string, opts SettleOptions, read ReadFunc) (string, error) {
	return WaitUntil(ctx, what, opts, read, func(current string) bool {
		return current != before
	})
}
