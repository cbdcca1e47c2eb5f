package element

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/logger"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// TakeScreenshot captures the screen into the artifacts directory as
// <name>-<uuid>.png. With an empty artifacts directory the image is kept in
// memory only.
func (h *Helpers) TakeScreenshot(ctx context.Context, name string) (core.Attachment, error) {
	data, err := h.driver.Screenshot(ctx)
	if err != nil {
		return core.Attachment{}, core.DriverError("screenshot", err)
	}
	dir := h.cfg.Artifacts.Dir
	if dir == "" {
		return core.NewScreenshotAttachment("", data), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return core.Attachment{}, fmt.Errorf("failed to create artifacts dir: %w", err)
	}
	if name = unsafeName.ReplaceAllString(name, "_"); name == "" {
		name = core.AttachmentScreenshot
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.png", name, uuid.NewString()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return core.Attachment{}, fmt.Errorf("failed to write screenshot: %w", err)
	}
	logger.Info("screenshot saved to %s", path)
	return core.NewScreenshotAttachment(path, data), nil
}

// CaptureFailure takes the artifacts configured for err's category. Capture
// problems are logged, never returned.
func (h *Helpers) CaptureFailure(ctx context.Context, name string, err error) []core.Attachment {
	a := h.cfg.Artifacts
	if err == nil || !a.ShouldCapture(core.CategoryOf(err)) {
		return nil
	}
	var out []core.Attachment
	if a.Screenshot {
		shot, serr := h.TakeScreenshot(ctx, name)
		if serr != nil {
			logger.Warn("screenshot for %s failed: %v", name, serr)
		} else {
			out = append(out, shot)
		}
	}
	if a.UIHierarchy {
		src, serr := h.driver.Source(ctx)
		if serr != nil {
			logger.Warn("hierarchy for %s failed: %v", name, serr)
			return out
		}
		path := ""
		if a.Dir != "" {
			path = filepath.Join(a.Dir, fmt.Sprintf("%s-%s.xml", unsafeName.ReplaceAllString(name, "_"), uuid.NewString()))
			werr := os.MkdirAll(a.Dir, 0o755)
			if werr == nil {
				werr = os.WriteFile(path, []byte(src), 0o644)
			}
			if werr != nil {
				logger.Warn("hierarchy for %s not written: %v", name, werr)
				path = ""
			}
		}
		out = append(out, core.NewHierarchyAttachment(path, []byte(src)))
	}
	return out
}
