// Package element implements the interaction helpers the page objects are
// built from: click, presence checks, waits, gestures and value reads against
// a core.Driver, with explicit timing semantics.
package element

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/locator"
	"github.com/devicelab-dev/messenger-pages/pkg/logger"
	"github.com/devicelab-dev/messenger-pages/pkg/platform"
	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

// Target is anything a helper can act on: a selectors.Descriptor resolved
// against the configured platform, or a raw locator.Locator.
type Target interface {
	Describe() string
}

// Config holds the helper timings.
type Config struct {
	ClickTimeout   time.Duration // find timeout for Click, GetText, PressAndHold...
	PresentTimeout time.Duration // default for IsPresent when timeout <= 0
	PollInterval   time.Duration
	Artifacts      core.ArtifactConfig
}

// DefaultConfig returns the default helper timings.
func DefaultConfig() Config {
	return Config{
		ClickTimeout:   5 * time.Second,
		PresentTimeout: 5 * time.Second,
		PollInterval:   DefaultInterval,
		Artifacts:      core.DefaultArtifactConfig(),
	}
}

// Helpers performs actions against resolved locators.
type Helpers struct {
	driver   core.Driver
	resolver *selectors.Resolver
	env      platform.Env
	cfg      Config
}

var errNotYet = errors.New("condition not met yet")

// New creates helpers for the given driver and platform. Zero timings in cfg
// fall back to DefaultConfig.
func New(driver core.Driver, resolver *selectors.Resolver, env platform.Env, cfg Config) *Helpers {
	def := DefaultConfig()
	if cfg.ClickTimeout <= 0 {
		cfg.ClickTimeout = def.ClickTimeout
	}
	if cfg.PresentTimeout <= 0 {
		cfg.PresentTimeout = def.PresentTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if resolver == nil {
		resolver = selectors.NewResolver(env.Platform, selectors.Default())
	}
	return &Helpers{driver: driver, resolver: resolver, env: env, cfg: cfg}
}

// Driver returns the underlying driver.
func (h *Helpers) Driver() core.Driver { return h.driver }

// Env returns the platform and service the helpers were built for.
func (h *Helpers) Env() platform.Env { return h.env }

// Resolver returns the selector resolver.
func (h *Helpers) Resolver() *selectors.Resolver { return h.resolver }

// Config returns the helper timings.
func (h *Helpers) Config() Config { return h.cfg }

// Locate turns a target into a locator.
func (h *Helpers) Locate(t Target) (locator.Locator, error) {
	switch v := t.(type) {
	case selectors.Descriptor:
		return h.resolver.Resolve(v)
	case locator.Locator:
		if v.IsZero() {
			return locator.Locator{}, core.ErrNoLocator
		}
		return v, nil
	case nil:
		return locator.Locator{}, core.ErrNoLocator
	default:
		return locator.Locator{}, core.ErrInvalidDescriptor.WithMessagef("unsupported target %T", t)
	}
}

func (h *Helpers) find(ctx context.Context, l locator.Locator) ([]string, error) {
	return h.driver.FindElements(ctx, string(l.Strategy), l.Value)
}

func (h *Helpers) policy(timeout time.Duration) WaitPolicy {
	return WaitPolicy{Timeout: timeout, Interval: h.cfg.PollInterval}
}

// waitFor returns the id of the first element matching t within timeout.
func (h *Helpers) waitFor(ctx context.Context, t Target, timeout time.Duration) (string, error) {
	l, err := h.Locate(t)
	if err != nil {
		return "", err
	}
	start := time.Now()
	var id string
	err = Poll(ctx, func(ctx context.Context) error {
		ids, err := h.find(ctx, l)
		if err != nil {
			return backoff.Permanent(core.DriverError("find "+t.Describe(), err))
		}
		if len(ids) == 0 {
			return core.ErrElementNotFound
		}
		id = ids[0]
		return nil
	}, h.policy(timeout))
	if errors.Is(err, core.ErrWaitTimeout) {
		return "", notFound(t, "not found", start, err)
	}
	return id, err
}

func notFound(t Target, what string, start time.Time, cause error) error {
	elapsed := elapsedSince(start)
	return core.ErrElementNotFound.
		WithMessagef("element %s %s after %s", t.Describe(), what, elapsed).
		WithDetails(map[string]interface{}{"element": t.Describe(), "elapsed": elapsed.String()}).
		WithCause(cause)
}

// Click finds t within the click timeout and taps it.
func (h *Helpers) Click(ctx context.Context, t Target) error {
	return h.ClickWithin(ctx, t, h.cfg.ClickTimeout)
}

// ClickWithin is Click with an explicit find timeout. A timeout <= 0 means
// the configured click timeout.
func (h *Helpers) ClickWithin(ctx context.Context, t Target, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = h.cfg.ClickTimeout
	}
	id, err := h.waitFor(ctx, t, timeout)
	if err != nil {
		return err
	}
	logger.Debug("click %s", t.Describe())
	return core.DriverError("click "+t.Describe(), h.driver.Click(ctx, id))
}

// ClickIfExists clicks t only if it shows up within timeout and reports
// whether it clicked. Absence is not an error.
func (h *Helpers) ClickIfExists(ctx context.Context, t Target, timeout time.Duration) (bool, error) {
	present, err := h.IsPresent(ctx, t, true, timeout)
	if err != nil || !present {
		return false, err
	}
	if err := h.ClickWithin(ctx, t, h.cfg.PollInterval); err != nil {
		return false, err
	}
	return true, nil
}

// IsPresent polls until the presence of t equals expect or timeout elapses and
// returns the last observed presence. It never fails with ErrElementNotFound.
// A failed lookup is logged and observes nothing, so it never satisfies an
// absence check. A lost session or server aborts the check with its error, and
// an absence check that never got a lookup through returns the driver error.
// Errors are also returned when t cannot be resolved or ctx is done.
func (h *Helpers) IsPresent(ctx context.Context, t Target, expect bool, timeout time.Duration) (bool, error) {
	l, err := h.Locate(t)
	if err != nil {
		return false, err
	}
	if timeout <= 0 {
		timeout = h.cfg.PresentTimeout
	}
	var (
		present  bool
		observed bool
		lastErr  error
	)
	err = Poll(ctx, func(ctx context.Context) error {
		ids, err := h.find(ctx, l)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			lastErr = core.DriverError("find "+t.Describe(), err)
			if errors.Is(err, core.ErrNoSession) || errors.Is(err, core.ErrServerUnreachable) {
				return backoff.Permanent(lastErr)
			}
			logger.Warn("presence check for %s failed: %v", t.Describe(), err)
			return errNotYet
		}
		observed = true
		present = len(ids) > 0
		if present == expect {
			return nil
		}
		return errNotYet
	}, h.policy(timeout))
	if ctx.Err() != nil {
		return present, ctx.Err()
	}
	if err != nil && !errors.Is(err, core.ErrWaitTimeout) {
		return present, err
	}
	if !observed && !expect && lastErr != nil {
		return false, lastErr
	}
	return present, nil
}

// WaitForExist blocks until t exists, or until it is gone when reverse is
// set. On timeout it fails with ErrElementNotFound naming the element and the
// elapsed time; the cause matches core.ErrWaitTimeout.
func (h *Helpers) WaitForExist(ctx context.Context, t Target, timeout, interval time.Duration, reverse bool) error {
	return h.Wait(ctx, t, WaitPolicy{Timeout: timeout, Interval: interval, Reverse: reverse})
}

// Wait is WaitForExist taking a WaitPolicy.
func (h *Helpers) Wait(ctx context.Context, t Target, p WaitPolicy) error {
	l, err := h.Locate(t)
	if err != nil {
		return err
	}
	if p.Interval <= 0 {
		p.Interval = h.cfg.PollInterval
	}
	start := time.Now()
	err = Poll(ctx, func(ctx context.Context) error {
		ids, err := h.find(ctx, l)
		if err != nil {
			return backoff.Permanent(core.DriverError("find "+t.Describe(), err))
		}
		if (len(ids) > 0) != p.Reverse {
			return nil
		}
		return errNotYet
	}, p)
	if errors.Is(err, core.ErrWaitTimeout) {
		if p.Reverse {
			return notFound(t, "still present", start, err)
		}
		return notFound(t, "not found", start, err)
	}
	return err
}

// WaitForDisplayed waits until t exists and is displayed.
func (h *Helpers) WaitForDisplayed(ctx context.Context, t Target, timeout time.Duration) error {
	l, err := h.Locate(t)
	if err != nil {
		return err
	}
	start := time.Now()
	err = Poll(ctx, func(ctx context.Context) error {
		ids, err := h.find(ctx, l)
		if err != nil {
			return backoff.Permanent(core.DriverError("find "+t.Describe(), err))
		}
		if len(ids) == 0 {
			return core.ErrElementNotFound
		}
		displayed, err := h.driver.ElementDisplayed(ctx, ids[0])
		if err != nil {
			return err
		}
		if !displayed {
			return errNotYet
		}
		return nil
	}, h.policy(timeout))
	if errors.Is(err, core.ErrWaitTimeout) {
		return notFound(t, "not displayed", start, err)
	}
	return err
}

// IsDisplayed reports whether t exists and is displayed right now.
func (h *Helpers) IsDisplayed(ctx context.Context, t Target) (bool, error) {
	l, err := h.Locate(t)
	if err != nil {
		return false, err
	}
	ids, err := h.find(ctx, l)
	if err != nil || len(ids) == 0 {
		return false, nil
	}
	displayed, err := h.driver.ElementDisplayed(ctx, ids[0])
	if err != nil {
		return false, nil
	}
	return displayed, nil
}

// WaitUntil polls cond until it reports true. Errors from cond are retried.
// On timeout it fails with ErrWaitTimeout carrying msg.
func (h *Helpers) WaitUntil(ctx context.Context, cond func(context.Context) (bool, error), timeout time.Duration, msg string) error {
	start := time.Now()
	var last error
	err := Poll(ctx, func(ctx context.Context) error {
		ok, err := cond(ctx)
		if err != nil {
			last = err
			return err
		}
		if !ok {
			return errNotYet
		}
		return nil
	}, h.policy(timeout))
	if errors.Is(err, core.ErrWaitTimeout) {
		if msg == "" {
			msg = "condition not met"
		}
		return core.ErrWaitTimeout.
			WithMessagef("%s after %s", msg, elapsedSince(start)).
			WithCause(last)
	}
	return err
}

// PressAndHold long-presses t for d.
func (h *Helpers) PressAndHold(ctx context.Context, t Target, d time.Duration) error {
	id, err := h.waitFor(ctx, t, h.cfg.ClickTimeout)
	if err != nil {
		return err
	}
	logger.Debug("press and hold %s for %s", t.Describe(), d)
	return core.DriverError("long press "+t.Describe(), h.driver.LongPress(ctx, id, d))
}

// MoveTo drags t by (dx, dy) pixels.
func (h *Helpers) MoveTo(ctx context.Context, dx, dy int, t Target) error {
	id, err := h.waitFor(ctx, t, h.cfg.ClickTimeout)
	if err != nil {
		return err
	}
	logger.Debug("move %s by (%d,%d)", t.Describe(), dx, dy)
	return core.DriverError("drag "+t.Describe(), h.driver.Drag(ctx, id, dx, dy))
}

// GetText returns the visible text of t.
func (h *Helpers) GetText(ctx context.Context, t Target) (string, error) {
	id, err := h.waitFor(ctx, t, h.cfg.ClickTimeout)
	if err != nil {
		return "", err
	}
	text, err := h.driver.ElementText(ctx, id)
	if err != nil {
		return "", core.DriverError("get text of "+t.Describe(), err)
	}
	return text, nil
}

// GetValue returns the value of t: the text on Android and the value
// attribute on iOS, falling back to the label text when the value is empty.
func (h *Helpers) GetValue(ctx context.Context, t Target) (string, error) {
	id, err := h.waitFor(ctx, t, h.cfg.ClickTimeout)
	if err != nil {
		return "", err
	}
	if h.env.IsIOS() {
		v, err := h.driver.ElementAttribute(ctx, id, "value")
		if err != nil {
			return "", core.DriverError("get value of "+t.Describe(), err)
		}
		if v != "" {
			return v, nil
		}
	}
	text, err := h.driver.ElementText(ctx, id)
	if err != nil {
		return "", core.DriverError("get value of "+t.Describe(), err)
	}
	return text, nil
}

// SetValue types text into t.
func (h *Helpers) SetValue(ctx context.Context, t Target, text string) error {
	id, err := h.waitFor(ctx, t, h.cfg.ClickTimeout)
	if err != nil {
		return err
	}
	return core.DriverError("type into "+t.Describe(), h.driver.SendKeys(ctx, id, text))
}

// OpenNotifications pulls down the notification shade.
func (h *Helpers) OpenNotifications(ctx context.Context) error {
	return core.DriverError("open notifications", h.driver.OpenNotifications(ctx))
}

// Pause sleeps for d or until ctx is done.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
