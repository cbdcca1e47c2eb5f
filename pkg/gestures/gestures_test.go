package gestures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/driver/mock"
	"github.com/devicelab-dev/messenger-pages/pkg/element"
	"github.com/devicelab-dev/messenger-pages/pkg/platform"
	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

func setup(t *testing.T) (*Gestures, *element.Helpers, *mock.Driver) {
	t.Helper()
	d := mock.New(mock.Config{})
	h := element.New(d, nil, platform.Env{Platform: platform.Android}, element.Config{PollInterval: 5 * time.Millisecond})
	g := New(h)
	g.Settle = time.Millisecond
	return g, h, d
}

func TestSwipeDirections(t *testing.T) {
	g, _, d := setup(t)
	ctx := context.Background()

	require.NoError(t, g.SwipeUp(ctx, 1))
	require.NoError(t, g.SwipeDown(ctx, 2))

	swipes := d.Swipes()
	require.Len(t, swipes, 3)
	assert.Greater(t, swipes[0].From.Y, swipes[0].To.Y, "swipe up moves the finger up")
	assert.Less(t, swipes[1].From.Y, swipes[1].To.Y, "swipe down moves the finger down")
}

func TestScroll(t *testing.T) {
	g, _, d := setup(t)
	ctx := context.Background()

	require.NoError(t, g.Scroll(ctx, ScrollDown))
	require.NoError(t, g.Scroll(ctx, ScrollUp))

	swipes := d.Swipes()
	require.Len(t, swipes, 2)
	assert.Equal(t, core.Point{X: 540, Y: 1600}, swipes[0].From)
	assert.Equal(t, core.Point{X: 540, Y: 800}, swipes[1].From)
}

func TestScrollUntilDisplayed_AlreadyVisible(t *testing.T) {
	g, h, d := setup(t)
	tile := selectors.ConversationTile("Jane Doe")
	l, err := h.Locate(tile)
	require.NoError(t, err)
	d.Show(l, "Jane Doe")

	shown, err := g.ScrollUntilDisplayed(context.Background(), tile, 5, ScrollDown)
	require.NoError(t, err)
	assert.True(t, shown)
	assert.Empty(t, d.Swipes())
}

func TestScrollUntilDisplayed_AfterScrolls(t *testing.T) {
	g, h, d := setup(t)
	tile := selectors.ConversationTile("Jane Doe")
	l, err := h.Locate(tile)
	require.NoError(t, err)
	d.Add(l, &mock.Element{Text: "Jane Doe", AppearAfterFinds: 3})

	shown, err := g.CheckIfDisplayedWithScrollDown(context.Background(), tile, 5)
	require.NoError(t, err)
	assert.True(t, shown)
	assert.Len(t, d.Swipes(), 2)
}

func TestScrollUntilDisplayed_GivesUp(t *testing.T) {
	g, _, d := setup(t)

	shown, err := g.CheckIfDisplayedWithScrollUp(context.Background(), selectors.GroupName("Cardiology"), 2)
	require.NoError(t, err)
	assert.False(t, shown)
	assert.Len(t, d.Swipes(), 2)
}

func TestScrollUntilDisplayed_Canceled(t *testing.T) {
	g, _, _ := setup(t)
	g.Settle = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.ScrollUntilDisplayed(ctx, selectors.GroupName("Cardiology"), 3, ScrollDown)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
