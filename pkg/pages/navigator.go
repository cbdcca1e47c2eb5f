package pages

import (
	"context"
	"fmt"

	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

// AppPage is a tab of the bottom navigator.
type AppPage string

// Navigator tabs.
const (
	PageInbox    AppPage = "Inbox"
	PageSettings AppPage = "Settings"
	PageRoles    AppPage = "Roles"
	PagePatients AppPage = "Patients"
)

// ConversationType is an entry of the new conversation menu.
type ConversationType string

// New conversation types.
const (
	ConversationIndividual ConversationType = "New Message"
	ConversationGroup      ConversationType = "New Group"
	ConversationBroadcast  ConversationType = "Broadcast"
)

// Navigator is the bottom tab bar, reachable from every top-level screen.
type Navigator struct {
	base
}

// Screen implements Page. The navigator overlays the messenger home screen.
func (n *Navigator) Screen() Screen { return ScreenMessengerHome }

func (n *Navigator) pageFor(p AppPage) (Page, error) {
	switch p {
	case PageInbox, PagePatients:
		return n.app.Home, nil
	case PageSettings:
		return n.app.Settings, nil
	case PageRoles:
		return n.app.Roles, nil
	default:
		return nil, fmt.Errorf("unknown app page %q", p)
	}
}

// NavigateTo taps the tab of page.
func (n *Navigator) NavigateTo(ctx context.Context, page AppPage) (Nav, error) {
	target, err := n.pageFor(page)
	if err != nil {
		return Stay(n), err
	}
	if err := n.h().Click(ctx, selectors.NavigatorTab(string(page))); err != nil {
		return Stay(n), err
	}
	return NavigateTo(target), nil
}

// ClickPlus opens the new conversation menu and picks kind.
func (n *Navigator) ClickPlus(ctx context.Context, kind ConversationType) (Nav, error) {
	if err := n.h().Click(ctx, selectors.PlusButton()); err != nil {
		return Stay(n), err
	}
	if err := n.h().Click(ctx, selectors.NewConversationType(string(kind))); err != nil {
		return Stay(n), err
	}
	return NavigateTo(n.app.NewConversation), nil
}
