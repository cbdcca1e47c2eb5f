package core

// ErrorCategory classifies the type of error for better debugging and reporting
type ErrorCategory int

const (
	ErrCategoryNone      ErrorCategory = iota // No error
	ErrCategoryAssertion                      // Element not found, condition not met
	ErrCategoryTimeout                        // Wait timed out
	ErrCategoryDriver                         // Automation backend call failed (stale element, crash, connection)
	ErrCategorySelector                       // Descriptor could not be turned into a locator
	ErrCategoryConfig                         // Invalid configuration, unsupported platform
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryAssertion:
		return "assertion"
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryDriver:
		return "driver"
	case ErrCategorySelector:
		return "selector"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}
