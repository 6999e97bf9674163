package engine

import (
	"strings"
	"testing"

	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/config"
	"github.com/mobile-next/touchgestures/events"
	"github.com/mobile-next/touchgestures/gesture"
	"github.com/mobile-next/touchgestures/gesture/touchscreen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	executed []actions.Action
	wheel    []float64
	clicks   int
}

func (e *recordingExecutor) Execute(action actions.Action) error {
	e.executed = append(e.executed, action)
	return nil
}

func (e *recordingExecutor) WheelScroll(amount float64) error {
	e.wheel = append(e.wheel, amount)
	return nil
}

func (e *recordingExecutor) SecondaryClick() error {
	e.clicks++
	return nil
}

const fourFingerSwipeLeft = `{"type":"down","slot":0,"x":100,"y":100}
{"type":"down","slot":1,"x":120,"y":100}
{"type":"down","slot":2,"x":140,"y":100}
{"type":"down","slot":3,"x":160,"y":100}
{"type":"frame"}
{"type":"motion","slot":0,"x":40,"y":100}
{"type":"motion","slot":1,"x":60,"y":100}
{"type":"motion","slot":2,"x":80,"y":100}
{"type":"motion","slot":3,"x":100,"y":100}
{"type":"frame"}
{"type":"up","slot":0}
{"type":"up","slot":1}
{"type":"up","slot":2}
{"type":"up","slot":3}
`

const touchpadSwipeRight = `{"type":"swipe_begin","fingers":3}
{"type":"swipe_update","fingers":3,"dx":30,"dy":2}
{"type":"swipe_end","fingers":3}
`

func newEngine(t *testing.T, settings string) (*Engine, *recordingExecutor) {
	t.Helper()

	cfg, err := config.Parse([]byte(settings))
	require.NoError(t, err)

	executor := &recordingExecutor{}
	e, err := New(cfg, executor, actions.StaticWindows{})
	require.NoError(t, err)
	return e, executor
}

func TestEngine_ReplayTouchScreen(t *testing.T) {
	e, executor := newEngine(t, config.DefaultMapping)

	count, err := e.Replay(events.NewReader(strings.NewReader(fourFingerSwipeLeft)))
	require.NoError(t, err)

	assert.Equal(t, 14, count)
	assert.Equal(t, []actions.Action{"Meta+Left"}, executor.executed)
	assert.Empty(t, executor.wheel)
	assert.Zero(t, executor.clicks)
}

func TestEngine_ReplayTouchpad(t *testing.T) {
	e, executor := newEngine(t, config.DefaultMapping)

	count, err := e.Replay(events.NewReader(strings.NewReader(touchpadSwipeRight)))
	require.NoError(t, err)

	assert.Equal(t, 3, count)
	assert.Equal(t, []actions.Action{"Ctrl+Alt+Right"}, executor.executed)
}

func TestEngine_ReplayStopsAtBadRecord(t *testing.T) {
	e, executor := newEngine(t, config.DefaultMapping)

	input := touchpadSwipeRight + "{\"type\":\"wobble\"}\n" + touchpadSwipeRight
	count, err := e.Replay(events.NewReader(strings.NewReader(input)))

	assert.ErrorIs(t, err, events.ErrUnknownEventType)
	assert.Equal(t, 3, count)
	assert.Len(t, executor.executed, 1)
}

func TestEngine_HandleUnknownRecord(t *testing.T) {
	e, _ := newEngine(t, config.DefaultMapping)
	assert.ErrorIs(t, e.Handle(events.Record{Type: "hover"}), events.ErrUnknownEventType)
}

func TestEngine_ResetForgetsContacts(t *testing.T) {
	e, executor := newEngine(t, config.DefaultMapping)

	for slot := 0; slot < 4; slot++ {
		require.NoError(t, e.Handle(events.FromTouch(gesture.TouchDownAt(slot, float64(slot*20), 0))))
	}
	e.Reset()

	twoFingerScroll := []gesture.TouchEvent{
		gesture.TouchDownAt(0, 100, 100),
		gesture.TouchDownAt(1, 140, 100),
		gesture.Motion(0, 100, 160),
		gesture.Motion(1, 140, 160),
		gesture.Frame(),
	}
	for _, ev := range twoFingerScroll {
		require.NoError(t, e.Handle(events.FromTouch(ev)))
	}

	assert.Equal(t, []float64{6}, executor.wheel)

	status := e.Status()
	assert.Equal(t, touchscreen.RecognizerStatus{Index: 0, Kind: "swipe", Fingers: 2, Started: true, Contacts: 2}, status.Recognizers[0])
	assert.Equal(t, 2, status.Recognizers[3].Contacts)
	assert.True(t, status.Recognizers[3].Cancelled)
}

func TestEngine_TwoFingerZoomOption(t *testing.T) {
	e, _ := newEngine(t, "[engine]\ntwo_finger_zoom = true\n")
	status := e.Status().Recognizers
	require.Len(t, status, 5)
	assert.Equal(t, "zoom", status[1].Kind)
	assert.Equal(t, 2, status[1].Fingers)

	e, _ = newEngine(t, "")
	assert.Len(t, e.Status().Recognizers, 4)
}

func TestEngine_UncachedResolver(t *testing.T) {
	e, executor := newEngine(t, "[engine]\nresolver_cache = 0\n\n[touchpad.swipe.3]\nfinished.right = Meta+Tab\n")

	_, err := e.Replay(events.NewReader(strings.NewReader(touchpadSwipeRight)))
	require.NoError(t, err)
	assert.Equal(t, []actions.Action{"Meta+Tab"}, executor.executed)
}
