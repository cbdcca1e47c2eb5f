package pages

import (
	"context"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

const screenCheckTimeout = 3 * time.Second

// Settings is the settings screen.
type Settings struct {
	base
}

// Screen implements Page.
func (s *Settings) Screen() Screen { return ScreenSettings }

// IsOpened reports whether the settings screen is shown.
func (s *Settings) IsOpened(ctx context.Context) (bool, error) {
	return s.present(ctx, selectors.ScreenTitle("Settings"), true, screenCheckTimeout)
}

// Roles is the roles screen.
type Roles struct {
	base
}

// Screen implements Page.
func (r *Roles) Screen() Screen { return ScreenRoles }

// IsOpened reports whether the roles screen is shown.
func (r *Roles) IsOpened(ctx context.Context) (bool, error) {
	return r.present(ctx, selectors.ScreenTitle("Roles"), true, screenCheckTimeout)
}
