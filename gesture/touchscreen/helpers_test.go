package touchscreen

import (
	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/gesture"
)

func feed(r Recognizer, evs ...gesture.TouchEvent) []gesture.State {
	states := make([]gesture.State, 0, len(evs))
	for _, ev := range evs {
		states = append(states, r.HandleEvent(ev))
	}
	return states
}

func process(c *Coordinator, evs ...gesture.TouchEvent) {
	for _, ev := range evs {
		c.ProcessEvent(ev)
	}
}

// scaled returns points scaled by factor around (cx, cy)
func scaled(points []gesture.Point, cx, cy, factor float64) []gesture.Point {
	out := make([]gesture.Point, len(points))
	for i, p := range points {
		out[i] = gesture.Point{X: cx + (p.X-cx)*factor, Y: cy + (p.Y-cy)*factor}
	}
	return out
}

func downs(points []gesture.Point) []gesture.TouchEvent {
	evs := make([]gesture.TouchEvent, len(points))
	for i, p := range points {
		evs[i] = gesture.TouchDownAt(i, p.X, p.Y)
	}
	return evs
}

func motions(points []gesture.Point) []gesture.TouchEvent {
	evs := make([]gesture.TouchEvent, len(points))
	for i, p := range points {
		evs[i] = gesture.Motion(i, p.X, p.Y)
	}
	return evs
}

func ups(n int) []gesture.TouchEvent {
	evs := make([]gesture.TouchEvent, n)
	for i := range evs {
		evs[i] = gesture.TouchUpAt(i)
	}
	return evs
}

type recordingListener struct {
	begins, updates, cancels, finishes []int
}

func (l *recordingListener) OnBegin(index int)     { l.begins = append(l.begins, index) }
func (l *recordingListener) OnUpdate(index int)    { l.updates = append(l.updates, index) }
func (l *recordingListener) OnCancelled(index int) { l.cancels = append(l.cancels, index) }
func (l *recordingListener) OnFinished(index int)  { l.finishes = append(l.finishes, index) }

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

type mapResolver map[gesture.Notification]actions.Action

func (m mapResolver) Resolve(fingers int, kind gesture.Kind, phase gesture.Phase, direction gesture.Direction) (actions.Action, bool) {
	action, ok := m[gesture.Notification{Fingers: fingers, Kind: kind, Phase: phase, Direction: direction}]
	return action, ok
}

type fakeWindows struct {
	maximized bool
	queries   int
}

func (w *fakeWindows) ActiveWindow() (actions.WindowHandle, error) {
	return 7, nil
}

func (w *fakeWindows) IsMaximized(actions.WindowHandle) (bool, error) {
	w.queries++
	return w.maximized, nil
}
