package pages

import "fmt"

// Screen names an app screen.
type Screen string

// App screens.
const (
	ScreenMessengerHome   Screen = "messenger-home"
	ScreenConversation    Screen = "conversation"
	ScreenNewConversation Screen = "new-conversation"
	ScreenSettings        Screen = "settings"
	ScreenRoles           Screen = "roles"
)

// Page is a page object bound to one screen.
type Page interface {
	Screen() Screen
}

// Nav is the result of a page action: the screen the app is on afterwards and
// its page object.
type Nav struct {
	Screen Screen
	Page   Page
	Moved  bool // the action navigated away from the calling page
}

// Stay reports that the action left the app on p.
func Stay(p Page) Nav {
	return Nav{Screen: p.Screen(), Page: p}
}

// NavigateTo reports that the action moved the app to p.
func NavigateTo(p Page) Nav {
	return Nav{Screen: p.Screen(), Page: p, Moved: true}
}

// String renders the navigation for logs.
func (n Nav) String() string {
	if n.Moved {
		return fmt.Sprintf("navigated to %s", n.Screen)
	}
	return fmt.Sprintf("stayed on %s", n.Screen)
}

// As returns the page of n as T.
func As[T Page](n Nav) (T, bool) {
	p, ok := n.Page.(T)
	return p, ok
}

// Home returns the messenger home page of n, or nil.
func (n Nav) Home() *MessengerHome {
	p, _ := As[*MessengerHome](n)
	return p
}

// Conversation returns the conversation page of n, or nil.
func (n Nav) Conversation() *Conversation {
	p, _ := As[*Conversation](n)
	return p
}
