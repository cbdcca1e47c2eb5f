package pages

import (
	"context"

	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

// NewConversation is the recipient picker of a new conversation.
type NewConversation struct {
	base
}

// Screen implements Page.
func (n *NewConversation) Screen() Screen { return ScreenNewConversation }

// ComposeNewMessage searches for recipient and opens a conversation with them.
func (n *NewConversation) ComposeNewMessage(ctx context.Context, recipient string) (Nav, error) {
	if err := n.h().SetValue(ctx, selectors.RecipientSearch(), recipient); err != nil {
		return Stay(n), err
	}
	if err := n.h().Click(ctx, selectors.RecipientResult(recipient)); err != nil {
		return Stay(n), err
	}
	return NavigateTo(n.app.Conversation), nil
}

// ClickUserToForward picks name as the forward recipient.
func (n *NewConversation) ClickUserToForward(ctx context.Context, name string) (Nav, error) {
	if err := n.h().Click(ctx, selectors.RecipientResult(name)); err != nil {
		return Stay(n), err
	}
	return Stay(n), nil
}
