package selectors

import (
	"sync"

	"github.com/devicelab-dev/messenger-pages/pkg/locator"
)

// Supporting screen resource ids.
const (
	idMessageInput    = "com.tigertext:id/message_input"
	idNewMessageFab   = "com.tigertext:id/fab_new_message"
	idRecipientSearch = "com.tigertext:id/recipient_search"
	idToolbarTitle    = "com.tigertext:id/toolbar_title"
)

// Supporting screen descriptor names.
const (
	NameMessageInput        = "messageInput"
	NameConversationTitle   = "conversationTitle"
	NameNavigatorTab        = "navigatorTab"
	NamePlusButton          = "plusButton"
	NameNewConversationType = "newConversationType"
	NameRecipientSearch     = "recipientSearch"
	NameRecipientResult     = "recipientResult"
	NameScreenTitle         = "screenTitle"
)

func MessageInput() Descriptor                  { return D(NameMessageInput) }
func ConversationTitle(title string) Descriptor { return D(NameConversationTitle, title) }
func NavigatorTab(page string) Descriptor       { return D(NameNavigatorTab, page) }
func PlusButton() Descriptor                    { return D(NamePlusButton) }
func NewConversationType(kind string) Descriptor {
	return D(NameNewConversationType, kind)
}
func RecipientSearch() Descriptor            { return D(NameRecipientSearch) }
func RecipientResult(name string) Descriptor { return D(NameRecipientResult, name) }
func ScreenTitle(title string) Descriptor    { return D(NameScreenTitle, title) }

// registerScreens adds the conversation, navigator, new conversation,
// settings and roles elements.
func registerScreens(r *Registry) {
	r.Add(NameMessageInput,
		Fixed(locator.ResourceIDAndroid(idMessageInput)),
		Fixed(locator.NameIOS("Message Input")))
	r.Add(NameConversationTitle,
		One(func(title string) locator.Locator {
			return locator.TextContainsAndResourceIDAndroid(title, idToolbarTitle)
		}),
		One(func(title string) locator.Locator {
			return xpath(`//XCUIElementTypeNavigationBar//XCUIElementTypeStaticText[contains(@name,"%s")]`, title)
		}))
	r.Add(NameNavigatorTab,
		One(locator.ContentDescAndroid),
		One(func(page string) locator.Locator { return locator.NameIOS(page + " Tab") }))
	r.Add(NamePlusButton,
		Fixed(locator.ResourceIDAndroid(idNewMessageFab)),
		Literal("~New Message"))
	r.Add(NameNewConversationType,
		One(locator.TextAndroid),
		One(locator.PredicateLabelIOS))
	r.Add(NameRecipientSearch,
		Fixed(locator.ResourceIDAndroid(idRecipientSearch)),
		Fixed(locator.PredicateLabelIOS("Search")))
	r.Add(NameRecipientResult,
		One(func(name string) locator.Locator {
			return locator.TextContainsAndResourceIDAndroid(name, idDisplayName)
		}),
		One(locator.StaticTextContainsIOS))
	r.Add(NameScreenTitle,
		One(func(title string) locator.Locator { return locator.TextAndResourceIDAndroid(title, idToolbarTitle) }),
		One(func(title string) locator.Locator {
			return xpath(`//XCUIElementTypeNavigationBar[@name="%s"]`, title)
		}))
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry with every screen's descriptors. It is built
// once and must not be modified.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		registerMessengerHome(r)
		registerScreens(r)
		defaultRegistry = r
	})
	return defaultRegistry
}
