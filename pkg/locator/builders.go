package locator

import "fmt"

// Android builders. Resource ids are full ids, e.g. com.tigertext:id/display_name.

// TextAndroid matches an element whose text equals text.
func TextAndroid(text string) Locator {
	return New(XPath, fmt.Sprintf(`//*[@text="%s"]`, text))
}

// TextContainsAndroid matches an element whose text contains text.
func TextContainsAndroid(text string) Locator {
	return New(XPath, fmt.Sprintf(`//*[contains(@text, "%s")]`, text))
}

// TextAndResourceIDAndroid matches text exactly within a resource id.
func TextAndResourceIDAndroid(text, resourceID string) Locator {
	return New(XPath, fmt.Sprintf(`//*[@resource-id="%s" and @text="%s"]`, resourceID, text))
}

// TextContainsAndResourceIDAndroid matches a text fragment within a resource id.
func TextContainsAndResourceIDAndroid(text, resourceID string) Locator {
	return New(XPath, fmt.Sprintf(`//*[@resource-id="%s" and contains(@text, "%s")]`, resourceID, text))
}

// ResourceIDAndroid matches by resource id.
func ResourceIDAndroid(resourceID string) Locator {
	return New(ID, resourceID)
}

// ContentDescAndroid matches by content-desc, which Appium exposes as the
// accessibility id on Android.
func ContentDescAndroid(desc string) Locator {
	return New(AccessibilityID, desc)
}

// ContainsContentDescAndResourceIDAndroid matches a descendant with
// resourceID of the element whose content-desc contains desc.
func ContainsContentDescAndResourceIDAndroid(desc, resourceID string) Locator {
	return New(XPath, fmt.Sprintf(`//*[contains(@content-desc, "%s")]//*[@resource-id="%s"]`, desc, resourceID))
}

// iOS builders.

// NameIOS matches by accessibility id (the XCUIElement name).
func NameIOS(name string) Locator {
	return New(AccessibilityID, name)
}

// ContainsNameIOS matches an element whose name contains name.
func ContainsNameIOS(name string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`name CONTAINS "%s"`, name))
}

// LabelIOS matches an element whose label starts with label.
func LabelIOS(label string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`label BEGINSWITH "%s"`, label))
}

// PredicateLabelIOS matches an element whose label equals label.
func PredicateLabelIOS(label string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`label == "%s"`, label))
}

// PredicateLabelContainsIOS matches an element whose label contains label.
func PredicateLabelContainsIOS(label string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`label CONTAINS "%s"`, label))
}

// NameValueIOS matches name and value exactly.
func NameValueIOS(name, value string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`name == "%s" AND value == "%s"`, name, value))
}

// StaticTextValueIOS matches a static text whose value equals value.
func StaticTextValueIOS(value string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`type == "XCUIElementTypeStaticText" AND value == "%s"`, value))
}

// StaticTextValueContainsIOS matches a static text whose value contains value.
func StaticTextValueContainsIOS(value string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`type == "XCUIElementTypeStaticText" AND value CONTAINS "%s"`, value))
}

// StaticTextContainsIOS matches a static text whose name or label contains text.
func StaticTextContainsIOS(text string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`type == "XCUIElementTypeStaticText" AND (name CONTAINS "%s" OR label CONTAINS "%s")`, text, text))
}

// StaticTextIndexIOS matches the index-th (1-based) static text named name.
func StaticTextIndexIOS(name string, index int) Locator {
	return New(XPath, fmt.Sprintf(`(//XCUIElementTypeStaticText[@name="%s"])[%d]`, name, index))
}

// TypeOtherIOS matches an XCUIElementTypeOther named name.
func TypeOtherIOS(name string) Locator {
	return New(XPath, fmt.Sprintf(`//XCUIElementTypeOther[@name="%s"]`, name))
}

// ButtonByValueIOS matches a button whose value equals value.
func ButtonByValueIOS(value string) Locator {
	return New(IOSPredicate, fmt.Sprintf(`type == "XCUIElementTypeButton" AND value == "%s"`, value))
}
