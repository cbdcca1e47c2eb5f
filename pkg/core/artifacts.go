package core

// Attachment represents a debug artifact captured when a check fails
type Attachment struct {
	Name        string `json:"name"`        // Descriptive name: screenshot, hierarchy
	ContentType string `json:"contentType"` // MIME type: image/png, application/xml
	Path        string `json:"path"`        // File path on disk
	Body        []byte `json:"-"`           // In-memory content (not serialized to JSON)
}

// Common attachment names
const (
	AttachmentScreenshot = "screenshot"
	AttachmentHierarchy  = "hierarchy"
)

// Common content types
const (
	ContentTypePNG = "image/png"
	ContentTypeXML = "application/xml"
)

// NewScreenshotAttachment creates a screenshot attachment
func NewScreenshotAttachment(path string, data []byte) Attachment {
	return Attachment{
		Name:        AttachmentScreenshot,
		ContentType: ContentTypePNG,
		Path:        path,
		Body:        data,
	}
}

// NewHierarchyAttachment creates a page source attachment
func NewHierarchyAttachment(path string, data []byte) Attachment {
	return Attachment{
		Name:        AttachmentHierarchy,
		ContentType: ContentTypeXML,
		Path:        path,
		Body:        data,
	}
}

// ArtifactConfig controls when and what artifacts are captured
type ArtifactConfig struct {
	Dir string `yaml:"dir" json:"dir"` // Output directory; empty disables writing to disk

	// When to capture
	CaptureOnSoftFailure bool `yaml:"captureOnSoftFailure" json:"captureOnSoftFailure"` // Default: true
	CaptureOnTimeout     bool `yaml:"captureOnTimeout" json:"captureOnTimeout"`         // Default: false

	// What to capture
	Screenshot  bool `yaml:"screenshot" json:"screenshot"`   // Default: true
	UIHierarchy bool `yaml:"uiHierarchy" json:"uiHierarchy"` // Default: false
}

// DefaultArtifactConfig returns sensible defaults for artifact capture
func DefaultArtifactConfig() ArtifactConfig {
	return ArtifactConfig{
		Dir:                  "artifacts",
		CaptureOnSoftFailure: true,
		CaptureOnTimeout:     false,
		Screenshot:           true,
		UIHierarchy:          false,
	}
}

// ShouldCapture reports whether artifacts are wanted for an error of the
// given category. Soft failures are reported with ErrCategoryAssertion.
func (c ArtifactConfig) ShouldCapture(category ErrorCategory) bool {
	switch category {
	case ErrCategoryAssertion:
		return c.CaptureOnSoftFailure
	case ErrCategoryTimeout:
		return c.CaptureOnTimeout
	default:
		return false
	}
}
