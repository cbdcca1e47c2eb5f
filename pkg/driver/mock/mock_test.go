package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/locator"
)

var tile = locator.TextAndroid("Jane Doe")

func find(t *testing.T, d *Driver, l locator.Locator) []string {
	t.Helper()
	ids, err := d.FindElements(context.Background(), string(l.Strategy), l.Value)
	require.NoError(t, err)
	return ids
}

func TestFindElements_Unknown(t *testing.T) {
	d := New(Config{})
	ids := find(t, d, tile)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
	assert.Equal(t, 1, d.Finds(tile))
}

func TestShowAfter(t *testing.T) {
	d := New(Config{})
	d.ShowAfter(tile, 50*time.Millisecond)

	assert.Empty(t, find(t, d, tile))
	time.Sleep(80 * time.Millisecond)
	assert.Len(t, find(t, d, tile), 1)
}

func TestHideAfter(t *testing.T) {
	d := New(Config{})
	el := d.Show(tile, "Jane Doe")
	d.HideAfter(tile, 30*time.Millisecond)

	assert.Equal(t, []string{el.ID}, find(t, d, tile))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, find(t, d, tile))

	_, err := d.ElementText(context.Background(), el.ID)
	assert.Error(t, err, "gone element is stale")
}

func TestAppearAndGoneAfterFinds(t *testing.T) {
	d := New(Config{})
	d.Add(tile, &Element{AppearAfterFinds: 3, GoneAfterFinds: 4})

	assert.Empty(t, find(t, d, tile))
	assert.Empty(t, find(t, d, tile))
	assert.Len(t, find(t, d, tile), 1)
	assert.Len(t, find(t, d, tile), 1)
	assert.Empty(t, find(t, d, tile))
}

func TestClickRecordsAndRunsHook(t *testing.T) {
	d := New(Config{})
	next := locator.NameIOS("Message Input")
	el := d.Add(tile, &Element{OnClick: func(d *Driver) { d.Show(next, "") }})

	require.NoError(t, d.Click(context.Background(), el.ID))
	assert.Equal(t, []string{el.ID}, d.Clicks())
	assert.Equal(t, 1, d.Clicked(tile))
	assert.Len(t, find(t, d, next), 1)
}

func TestGesturesRecorded(t *testing.T) {
	ctx := context.Background()
	d := New(Config{})
	el := d.Show(tile, "Jane Doe")

	require.NoError(t, d.LongPress(ctx, el.ID, 2*time.Second))
	require.NoError(t, d.Drag(ctx, el.ID, -100, 263))
	require.NoError(t, d.Swipe(ctx, core.Point{X: 1, Y: 2}, core.Point{X: 3, Y: 4}, time.Second))
	require.NoError(t, d.SendKeys(ctx, el.ID, "hi"))
	require.NoError(t, d.OpenNotifications(ctx))

	dur, ok := d.LongPressed(tile)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, dur)
	assert.Equal(t, []Drag{{ElementID: el.ID, DX: -100, DY: 263}}, d.Drags())
	assert.Len(t, d.Swipes(), 1)
	assert.Equal(t, "hi", d.Typed(tile))
	assert.Equal(t, 1, d.Notifications())
}

func TestFailOn(t *testing.T) {
	d := New(Config{})
	boom := errors.New("boom")
	d.FailOn("FindElements", boom)

	_, err := d.FindElements(context.Background(), "xpath", "//*")
	assert.ErrorIs(t, err, boom)

	d.FailOn("FindElements", nil)
	_, err = d.FindElements(context.Background(), "xpath", "//*")
	assert.NoError(t, err)
}

func TestFindDelayHonorsContext(t *testing.T) {
	d := New(Config{FindDelay: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := d.FindElements(ctx, "xpath", "//*")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAttributesAndSource(t *testing.T) {
	ctx := context.Background()
	d := New(Config{})
	el := d.Add(tile, &Element{Text: "3", Attributes: map[string]string{"content-desc": "badge"}, Hidden: true})

	v, err := d.ElementAttribute(ctx, el.ID, "value")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
	v, _ = d.ElementAttribute(ctx, el.ID, "content-desc")
	assert.Equal(t, "badge", v)

	displayed, err := d.ElementDisplayed(ctx, el.ID)
	require.NoError(t, err)
	assert.False(t, displayed)

	src, err := d.Source(ctx)
	require.NoError(t, err)
	assert.Contains(t, src, `text="3"`)
	assert.Contains(t, src, `displayed="false"`)
}

func TestScreenshotIsPNG(t *testing.T) {
	d := New(Config{})
	data, err := d.Screenshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, data[:4])
	assert.Equal(t, 1, d.Screenshots())
}
