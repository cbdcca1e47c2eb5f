package element

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
)

// Default polling values.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultInterval = 500 * time.Millisecond
)

// WaitPolicy governs how a helper polls the driver.
type WaitPolicy struct {
	Timeout  time.Duration
	Interval time.Duration
	Reverse  bool // wait for absence instead of presence
}

// Poll runs fn at a constant interval until it returns nil, returns a
// backoff.Permanent error, the policy timeout elapses or ctx is done. fn always
// runs at least once, and once more at the deadline when the last sleep was
// cut short by it.
//
// On timeout the returned error matches core.ErrWaitTimeout and wraps the
// last error returned by fn.
func Poll(ctx context.Context, fn func(context.Context) error, p WaitPolicy) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	start := time.Now()

	pctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	var (
		last     error
		sleeping bool
	)
	op := func() error {
		sleeping = false
		last = fn(ctx)
		if last != nil && ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return last
	}
	b := backoff.WithContext(backoff.NewConstantBackOff(interval), pctx)
	err := backoff.RetryNotify(op, b, func(error, time.Duration) { sleeping = true })
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err == nil || err != pctx.Err() {
		return err
	}

	if sleeping {
		if last = fn(ctx); last == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if perm, ok := last.(*backoff.PermanentError); ok {
			return perm.Err
		}
	}
	return core.ErrWaitTimeout.
		WithMessagef("timed out after %s", elapsedSince(start)).
		WithCause(last)
}

func elapsedSince(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}
