package element

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/driver/mock"
	"github.com/devicelab-dev/messenger-pages/pkg/locator"
	"github.com/devicelab-dev/messenger-pages/pkg/platform"
	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newHelpers(t *testing.T, p platform.Platform) (*Helpers, *mock.Driver) {
	t.Helper()
	d := mock.New(mock.Config{Platform: p.String()})
	h := New(d, nil, platform.Env{Platform: p}, Config{
		ClickTimeout:   100 * time.Millisecond,
		PresentTimeout: 100 * time.Millisecond,
		PollInterval:   10 * time.Millisecond,
		Artifacts:      core.ArtifactConfig{Dir: t.TempDir(), CaptureOnSoftFailure: true, Screenshot: true},
	})
	return h, d
}

func resolve(t *testing.T, h *Helpers, desc selectors.Descriptor) locator.Locator {
	t.Helper()
	l, err := h.Resolver().Resolve(desc)
	require.NoError(t, err)
	return l
}

func TestLocate(t *testing.T) {
	h, _ := newHelpers(t, platform.Android)

	l, err := h.Locate(selectors.ConversationTile("Jane Doe"))
	require.NoError(t, err)
	assert.Contains(t, l.Value, "Jane Doe")

	raw := locator.NameIOS("x")
	l, err = h.Locate(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, l)

	_, err = h.Locate(locator.Locator{})
	assert.ErrorIs(t, err, core.ErrNoLocator)
	_, err = h.Locate(nil)
	assert.ErrorIs(t, err, core.ErrNoLocator)
}

func TestIsPresent_MissingReturnsFalseQuickly(t *testing.T) {
	d := mock.New(mock.Config{})
	h := New(d, nil, platform.Env{Platform: platform.Android}, Config{})

	start := time.Now()
	present, err := h.IsPresent(context.Background(), selectors.ConversationTile("Nobody"), true, 500*time.Millisecond)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.False(t, present)
	assert.GreaterOrEqual(t, elapsed, 500*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestIsPresent_Idempotent(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	tile := selectors.ConversationTile("Jane Doe")
	d.Show(resolve(t, h, tile), "Jane Doe")

	ctx := context.Background()
	first, err := h.IsPresent(ctx, tile, true, 50*time.Millisecond)
	require.NoError(t, err)
	second, err := h.IsPresent(ctx, tile, true, 50*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, first, second)

	missing := selectors.ConversationTile("Nobody")
	first, _ = h.IsPresent(ctx, missing, true, 30*time.Millisecond)
	second, _ = h.IsPresent(ctx, missing, true, 30*time.Millisecond)
	assert.False(t, first)
	assert.Equal(t, first, second)
}

func TestIsPresent_ExpectAbsent(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	popup := selectors.SuccessPopup()
	d.Show(resolve(t, h, popup), "Success")
	d.HideAfter(resolve(t, h, popup), 30*time.Millisecond)

	present, err := h.IsPresent(context.Background(), popup, false, time.Second)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestIsPresent_DriverErrorIsAbsence(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	d.FailOn("FindElements", errors.New("socket hang up"))

	present, err := h.IsPresent(context.Background(), selectors.ConversationTile("Jane Doe"), true, 30*time.Millisecond)
	assert.NoError(t, err)
	assert.False(t, present)
}

func TestIsPresent_DriverErrorNeverSatisfiesAbsence(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	tile := selectors.ConversationTile("Jane Doe")
	d.Show(resolve(t, h, tile), "Jane Doe")
	d.FailOn("FindElements", errors.New("socket hang up"))

	start := time.Now()
	present, err := h.IsPresent(context.Background(), tile, false, 50*time.Millisecond)
	assert.ErrorIs(t, err, core.ErrDriver)
	assert.False(t, present)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestIsPresent_LostSessionIsReturned(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	tile := selectors.ConversationTile("Jane Doe")
	d.Show(resolve(t, h, tile), "Jane Doe")
	d.FailOn("FindElements", core.ErrNoSession)

	for _, expect := range []bool{true, false} {
		start := time.Now()
		_, err := h.IsPresent(context.Background(), tile, expect, 2*time.Second)
		assert.ErrorIs(t, err, core.ErrNoSession)
		assert.Less(t, time.Since(start), time.Second)
	}

	d.FailOn("FindElements", core.ErrServerUnreachable)
	_, err := h.IsPresent(context.Background(), tile, false, 2*time.Second)
	assert.ErrorIs(t, err, core.ErrServerUnreachable)
}

func TestIsPresent_UnsupportedPlatform(t *testing.T) {
	d := mock.New(mock.Config{})
	h := New(d, nil, platform.Env{}, Config{})

	_, err := h.IsPresent(context.Background(), selectors.ConversationTile("Jane Doe"), true, time.Second)
	assert.ErrorIs(t, err, core.ErrUnsupportedPlatform)
}

func TestIsPresent_CanceledContext(t *testing.T) {
	h, _ := newHelpers(t, platform.Android)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.IsPresent(ctx, selectors.ConversationTile("Jane Doe"), true, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitForExist_Appears(t *testing.T) {
	h, d := newHelpers(t, platform.IOS)
	tile := selectors.EscalationTile("ESC-1")
	d.ShowAfter(resolve(t, h, tile), 40*time.Millisecond)

	require.NoError(t, h.WaitForExist(context.Background(), tile, time.Second, 10*time.Millisecond, false))
}

func TestWaitForExist_Reverse(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	popup := selectors.SuccessPopup()
	d.Show(resolve(t, h, popup), "Success")
	d.HideAfter(resolve(t, h, popup), 40*time.Millisecond)

	require.NoError(t, h.WaitForExist(context.Background(), popup, time.Second, 10*time.Millisecond, true))
}

func TestWaitForExist_TimeoutNamesElementAndElapsed(t *testing.T) {
	h, _ := newHelpers(t, platform.Android)
	tile := selectors.ConversationTile("Jane Doe")

	err := h.WaitForExist(context.Background(), tile, 60*time.Millisecond, 20*time.Millisecond, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrElementNotFound)
	assert.ErrorIs(t, err, core.ErrWaitTimeout)
	assert.Contains(t, err.Error(), "conversationTile(Jane Doe)")
	assert.Contains(t, err.Error(), "not found after")

	var ee *core.ExecutionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "conversationTile(Jane Doe)", ee.Details["element"])
	elapsed, perr := time.ParseDuration(ee.Details["elapsed"].(string))
	require.NoError(t, perr)
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
}

func TestWaitForExist_ReverseTimeout(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	popup := selectors.SuccessPopup()
	d.Show(resolve(t, h, popup), "Success")

	err := h.WaitForExist(context.Background(), popup, 30*time.Millisecond, 10*time.Millisecond, true)
	assert.ErrorIs(t, err, core.ErrElementNotFound)
	assert.Contains(t, err.Error(), "still present")
}

func TestWaitForExist_DriverErrorAborts(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	boom := errors.New("instrumentation crashed")
	d.FailOn("FindElements", boom)

	start := time.Now()
	err := h.WaitForExist(context.Background(), selectors.SuccessPopup(), time.Second, 10*time.Millisecond, false)
	assert.ErrorIs(t, err, core.ErrDriver)
	assert.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWaitForDisplayed(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	banner := selectors.OnDutyBanner()
	d.Add(resolve(t, h, banner), &mock.Element{Text: "On Duty", Hidden: true})

	err := h.WaitForDisplayed(context.Background(), banner, 40*time.Millisecond)
	assert.ErrorIs(t, err, core.ErrElementNotFound)
	assert.Contains(t, err.Error(), "not displayed")

	d.Remove(resolve(t, h, banner))
	d.Show(resolve(t, h, banner), "On Duty")
	require.NoError(t, h.WaitForDisplayed(context.Background(), banner, 40*time.Millisecond))

	shown, err := h.IsDisplayed(context.Background(), banner)
	require.NoError(t, err)
	assert.True(t, shown)
}

func TestWaitUntil(t *testing.T) {
	h, _ := newHelpers(t, platform.Android)
	ctx := context.Background()

	calls := 0
	require.NoError(t, h.WaitUntil(ctx, func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	}, time.Second, "third call"))
	assert.Equal(t, 3, calls)

	last := errors.New("badge is 2")
	err := h.WaitUntil(ctx, func(context.Context) (bool, error) {
		return false, last
	}, 30*time.Millisecond, "badge count 3")
	assert.ErrorIs(t, err, core.ErrWaitTimeout)
	assert.ErrorIs(t, err, last)
	assert.True(t, strings.HasPrefix(err.Error(), "badge count 3 after"))
}

func TestClick(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	tile := selectors.ConversationTile("Jane Doe")
	d.Show(resolve(t, h, tile), "Jane Doe")

	require.NoError(t, h.Click(context.Background(), tile))
	assert.Equal(t, 1, d.Clicked(resolve(t, h, tile)))
}

func TestClickWithin_ZeroUsesClickTimeout(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	tile := selectors.ConversationTile("Jane Doe")
	d.ShowAfter(resolve(t, h, tile), 30*time.Millisecond)

	require.NoError(t, h.ClickWithin(context.Background(), tile, 0))
	assert.Equal(t, 1, d.Clicked(resolve(t, h, tile)))
}

func TestClick_NotFound(t *testing.T) {
	h, _ := newHelpers(t, platform.Android)

	err := h.Click(context.Background(), selectors.ConversationTile("Jane Doe"))
	assert.ErrorIs(t, err, core.ErrElementNotFound)
}

func TestClick_DriverError(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	tile := selectors.ConversationTile("Jane Doe")
	d.Show(resolve(t, h, tile), "Jane Doe")
	d.FailOn("Click", errors.New("stale element reference"))

	err := h.Click(context.Background(), tile)
	assert.ErrorIs(t, err, core.ErrDriver)
	assert.Equal(t, core.ErrCategoryDriver, core.CategoryOf(err))
}

func TestClickIfExists(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	ctx := context.Background()
	ok := selectors.EnableCallerIDOKButton()

	clicked, err := h.ClickIfExists(ctx, ok, 30*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, clicked)

	d.Show(resolve(t, h, ok), "OK")
	clicked, err = h.ClickIfExists(ctx, ok, 30*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, clicked)
	assert.Equal(t, 1, d.Clicked(resolve(t, h, ok)))
}

func TestPressAndHoldAndMoveTo(t *testing.T) {
	h, d := newHelpers(t, platform.IOS)
	ctx := context.Background()
	tile := selectors.PatientTileName("Jane Doe")
	el := d.Show(resolve(t, h, tile), "Jane Doe")

	require.NoError(t, h.PressAndHold(ctx, tile, 2*time.Second))
	dur, pressed := d.LongPressed(resolve(t, h, tile))
	assert.True(t, pressed)
	assert.Equal(t, 2*time.Second, dur)

	require.NoError(t, h.MoveTo(ctx, -100, 263, tile))
	assert.Equal(t, []mock.Drag{{ElementID: el.ID, DX: -100, DY: 263}}, d.Drags())
}

func TestGetValue(t *testing.T) {
	ctx := context.Background()

	t.Run("android reads text", func(t *testing.T) {
		h, d := newHelpers(t, platform.Android)
		badge := selectors.UnreadCountByTile("Jane Doe")
		d.Add(resolve(t, h, badge), &mock.Element{Text: "3", Attributes: map[string]string{"value": "ignored"}})

		v, err := h.GetValue(ctx, badge)
		require.NoError(t, err)
		assert.Equal(t, "3", v)
	})

	t.Run("ios reads value attribute", func(t *testing.T) {
		h, d := newHelpers(t, platform.IOS)
		badge := selectors.UnreadCountByTile("Jane Doe")
		d.Add(resolve(t, h, badge), &mock.Element{Text: "label", Attributes: map[string]string{"value": "3"}})

		v, err := h.GetValue(ctx, badge)
		require.NoError(t, err)
		assert.Equal(t, "3", v)
	})

	t.Run("ios falls back to text", func(t *testing.T) {
		h, d := newHelpers(t, platform.IOS)
		badge := selectors.UnreadCountByTile("Jane Doe")
		d.Add(resolve(t, h, badge), &mock.Element{Text: "4", Attributes: map[string]string{"value": ""}})

		v, err := h.GetValue(ctx, badge)
		require.NoError(t, err)
		assert.Equal(t, "4", v)
	})

	t.Run("absent element fails", func(t *testing.T) {
		h, _ := newHelpers(t, platform.Android)
		_, err := h.GetValue(ctx, selectors.UnreadCountByTile("Jane Doe"))
		assert.ErrorIs(t, err, core.ErrElementNotFound)
	})
}

func TestGetTextAndSetValue(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	ctx := context.Background()
	input := selectors.MessageInput()
	d.Show(resolve(t, h, input), "draft")

	text, err := h.GetText(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "draft", text)

	require.NoError(t, h.SetValue(ctx, input, "hello"))
	assert.Equal(t, "hello", d.Typed(resolve(t, h, input)))
}

func TestSwipe(t *testing.T) {
	h, d := newHelpers(t, platform.Android)

	require.NoError(t, h.Swipe(context.Background(), Up, 2))
	swipes := d.Swipes()
	require.Len(t, swipes, 2)
	assert.Equal(t, core.Point{X: 540, Y: 1600}, swipes[0].From)
	assert.Equal(t, core.Point{X: 540, Y: 800}, swipes[0].To)
	assert.Equal(t, SwipeDuration, swipes[0].Duration)

	require.NoError(t, h.Swipe(context.Background(), Down, 0))
	swipes = d.Swipes()
	require.Len(t, swipes, 3)
	assert.Equal(t, core.Point{X: 540, Y: 800}, swipes[2].From)

	assert.Error(t, h.Swipe(context.Background(), Direction("diagonal"), 1))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" Down ")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestTakeScreenshot(t *testing.T) {
	h, d := newHelpers(t, platform.Android)

	shot, err := h.TakeScreenshot(context.Background(), "badge count/3")
	require.NoError(t, err)
	assert.Equal(t, core.ContentTypePNG, shot.ContentType)
	assert.Equal(t, h.Config().Artifacts.Dir, filepath.Dir(shot.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(shot.Path), "badge_count_3-"))

	data, err := os.ReadFile(shot.Path)
	require.NoError(t, err)
	assert.Equal(t, shot.Body, data)
	assert.Equal(t, 1, d.Screenshots())
}

func TestCaptureFailure(t *testing.T) {
	h, d := newHelpers(t, platform.Android)
	ctx := context.Background()

	assert.Nil(t, h.CaptureFailure(ctx, "x", nil))
	assert.Nil(t, h.CaptureFailure(ctx, "x", core.ErrDriver))

	shots := h.CaptureFailure(ctx, "unread", core.ErrConditionNotMet)
	require.Len(t, shots, 1)
	assert.Equal(t, core.AttachmentScreenshot, shots[0].Name)
	assert.Equal(t, 1, d.Screenshots())
}

func TestPause(t *testing.T) {
	require.NoError(t, Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Pause(ctx, time.Hour), context.Canceled)
}

func TestPoll_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errNotYet
		}
		return nil
	}, WaitPolicy{Timeout: time.Second, Interval: 5 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPoll_PermanentStops(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Poll(context.Background(), func(context.Context) error {
		calls++
		return backoff.Permanent(boom)
	}, WaitPolicy{Timeout: time.Second, Interval: 5 * time.Millisecond})
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestPoll_TimeoutWrapsLastError(t *testing.T) {
	start := time.Now()
	err := Poll(context.Background(), func(context.Context) error {
		return core.ErrElementNotFound
	}, WaitPolicy{Timeout: 40 * time.Millisecond, Interval: 10 * time.Millisecond})
	assert.ErrorIs(t, err, core.ErrWaitTimeout)
	assert.ErrorIs(t, err, core.ErrElementNotFound)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestPoll_ChecksOnceMoreAtDeadline(t *testing.T) {
	start := time.Now()
	calls := 0
	err := Poll(context.Background(), func(context.Context) error {
		calls++
		if time.Since(start) >= 30*time.Millisecond {
			return nil
		}
		return errNotYet
	}, WaitPolicy{Timeout: 30 * time.Millisecond, Interval: time.Second})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPoll_ZeroTimeoutRunsOnce(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), func(context.Context) error {
		calls++
		return errNotYet
	}, WaitPolicy{Interval: 5 * time.Millisecond})
	assert.ErrorIs(t, err, core.ErrWaitTimeout)
	assert.Equal(t, 1, calls)
}

func TestPoll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Poll(ctx, func(context.Context) error {
		return errNotYet
	}, WaitPolicy{Timeout: time.Second, Interval: 5 * time.Millisecond})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, core.ErrWaitTimeout)
}
