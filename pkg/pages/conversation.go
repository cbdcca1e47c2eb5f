package pages

import (
	"context"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

const conversationCheckTimeout = 2 * time.Second

// Conversation is an open conversation.
type Conversation struct {
	base
}

// Screen implements Page.
func (c *Conversation) Screen() Screen { return ScreenConversation }

// IsOpened reports whether a conversation is open, judged by its message
// input.
func (c *Conversation) IsOpened(ctx context.Context) (bool, error) {
	return c.present(ctx, selectors.MessageInput(), true, conversationCheckTimeout)
}

// HasTitle reports whether the open conversation is titled title.
func (c *Conversation) HasTitle(ctx context.Context, title string) (bool, error) {
	return c.present(ctx, selectors.ConversationTitle(title), true, conversationCheckTimeout)
}

// NavigateBackToHome closes the conversation if one is open.
func (c *Conversation) NavigateBackToHome(ctx context.Context) (Nav, error) {
	if _, err := c.h().ClickIfExists(ctx, selectors.CloseConversation(), conversationCheckTimeout); err != nil {
		return Stay(c), err
	}
	return NavigateTo(c.app.Home), nil
}

// SendMessage types text into the message input.
func (c *Conversation) SendMessage(ctx context.Context, text string) (Nav, error) {
	if err := c.h().SetValue(ctx, selectors.MessageInput(), text); err != nil {
		return Stay(c), err
	}
	return Stay(c), nil
}
