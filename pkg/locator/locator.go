// Package locator holds platform-native element locators and the builders
// that produce them.
//
// Builders interpolate their arguments verbatim. A quote inside an argument
// ends up inside the XPath or predicate unchanged, so callers pass values
// that are already valid in the target syntax.
package locator

import (
	"strings"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
)

// Strategy is a W3C/Appium element location strategy.
type Strategy string

// Strategies understood by Appium.
const (
	XPath           Strategy = "xpath"
	AccessibilityID Strategy = "accessibility id"
	ID              Strategy = "id"
	ClassName       Strategy = "class name"
	UiAutomator     Strategy = "-android uiautomator"
	IOSPredicate    Strategy = "-ios predicate string"
	IOSClassChain   Strategy = "-ios class chain"
)

// Locator is a resolved, platform-native element query.
type Locator struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Value    string   `json:"value" yaml:"value"`
}

// New returns a locator for the given strategy and value.
func New(strategy Strategy, value string) Locator {
	return Locator{Strategy: strategy, Value: value}
}

// IsZero reports whether the locator is empty.
func (l Locator) IsZero() bool {
	return l.Strategy == "" || l.Value == ""
}

// String renders the locator as strategy=value for logs and errors.
func (l Locator) String() string {
	if l.IsZero() {
		return "<empty locator>"
	}
	return string(l.Strategy) + "=" + l.Value
}

// Describe implements the Target naming used in diagnostics.
func (l Locator) Describe() string {
	return l.String()
}

// Parse converts a WebdriverIO-style selector string into a Locator:
//
//	~name                        accessibility id
//	//xpath or (//xpath)[1]      xpath
//	[name="x"]                   xpath //*[@name="x"]
//	-ios predicate string:...    ios predicate
//	-ios class chain:...         ios class chain
//	android=...                  uiautomator
//	id=pkg:id/name               id
//	pkg:id/name                  id
//	android.widget.Button        class name
func Parse(s string) (Locator, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Locator{}, core.ErrInvalidLocator.WithMessage("empty selector")
	case strings.HasPrefix(s, "~"):
		if len(s) == 1 {
			return Locator{}, core.ErrInvalidLocator.WithMessage("empty accessibility id")
		}
		return New(AccessibilityID, s[1:]), nil
	case strings.HasPrefix(s, "/"), strings.HasPrefix(s, "("):
		return New(XPath, s), nil
	case strings.HasPrefix(s, "[@"):
		return New(XPath, "//*"+s), nil
	case strings.HasPrefix(s, "["):
		return New(XPath, "//*[@"+s[1:]), nil
	case strings.HasPrefix(s, string(IOSPredicate)+":"):
		return nonEmpty(IOSPredicate, strings.TrimPrefix(s, string(IOSPredicate)+":"))
	case strings.HasPrefix(s, string(IOSClassChain)+":"):
		return nonEmpty(IOSClassChain, strings.TrimPrefix(s, string(IOSClassChain)+":"))
	case strings.HasPrefix(s, "android="):
		return nonEmpty(UiAutomator, strings.TrimPrefix(s, "android="))
	case strings.HasPrefix(s, "id="):
		return nonEmpty(ID, strings.TrimPrefix(s, "id="))
	case strings.Contains(s, ":id/"):
		return New(ID, s), nil
	default:
		return New(ClassName, s), nil
	}
}

// MustParse is Parse for selector literals known to be valid.
func MustParse(s string) Locator {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

func nonEmpty(strategy Strategy, value string) (Locator, error) {
	if value == "" {
		return Locator{}, core.ErrInvalidLocator.WithMessagef("empty %s", strategy)
	}
	return New(strategy, value), nil
}
