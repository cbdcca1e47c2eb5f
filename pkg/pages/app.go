// Package pages holds the page objects of the messenger app. Each page
// exposes business-level actions composed from descriptor resolution and the
// element helpers. Actions that may change screens return a Nav; best-effort
// checks return a Soft result.
package pages

import (
	"context"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/element"
	"github.com/devicelab-dev/messenger-pages/pkg/gestures"
	"github.com/devicelab-dev/messenger-pages/pkg/logger"
	"github.com/devicelab-dev/messenger-pages/pkg/platform"
)

// Options carries the run settings the pages need.
type Options struct {
	// UserFirstName of the signed-in user; the iOS settings icon is labeled
	// with it.
	UserFirstName string
	// OpenWait bounds the extra wait for a conversation to open on slow
	// services. Default 5s.
	OpenWait time.Duration
}

// App groups the page objects of one session. Pages reference each other
// through it.
type App struct {
	Home            *MessengerHome
	Conversation    *Conversation
	Navigator       *Navigator
	NewConversation *NewConversation
	Settings        *Settings
	Roles           *Roles

	h    *element.Helpers
	g    *gestures.Gestures
	opts Options
}

// NewApp creates every page on top of h.
func NewApp(h *element.Helpers, opts Options) *App {
	if opts.OpenWait <= 0 {
		opts.OpenWait = 5 * time.Second
	}
	a := &App{h: h, g: gestures.New(h), opts: opts}
	b := base{app: a}
	a.Home = &MessengerHome{base: b}
	a.Conversation = &Conversation{base: b}
	a.Navigator = &Navigator{base: b}
	a.NewConversation = &NewConversation{base: b}
	a.Settings = &Settings{base: b}
	a.Roles = &Roles{base: b}
	return a
}

// Helpers returns the element helpers the pages act through.
func (a *App) Helpers() *element.Helpers { return a.h }

// Gestures returns the list gestures.
func (a *App) Gestures() *gestures.Gestures { return a.g }

// Env returns the platform and service of the session.
func (a *App) Env() platform.Env { return a.h.Env() }

type base struct {
	app *App
}

func (b base) h() *element.Helpers   { return b.app.h }
func (b base) g() *gestures.Gestures { return b.app.g }
func (b base) env() platform.Env     { return b.app.h.Env() }

func (b base) present(ctx context.Context, t element.Target, expect bool, timeout time.Duration) (bool, error) {
	return b.h().IsPresent(ctx, t, expect, timeout)
}

// soft logs a failed best-effort check and captures the configured artifacts.
func (b base) soft(ctx context.Context, name string, err error) error {
	softErr := core.ErrConditionNotMet.WithMessage(name).WithCause(err)
	logger.Warn("%s: %v", name, err)
	b.h().CaptureFailure(ctx, name, softErr)
	return softErr
}
