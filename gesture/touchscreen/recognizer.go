package touchscreen

import (
	"github.com/mobile-next/touchgestures/gesture"
)

// Listener receives phase notifications from recognizers, keyed by the
// index assigned at registration.
type Listener interface {
	OnBegin(index int)
	OnUpdate(index int)
	OnCancelled(index int)
	OnFinished(index int)
}

// Recognizer is a touch-screen gesture state machine. Every recognizer
// sees the full raw event stream and decides on its own whether the
// stream is its gesture.
type Recognizer interface {
	HandleEvent(ev gesture.TouchEvent) gesture.State
	Reset()
	Cancel()
	IsCancelled() bool
	IsStarted() bool
	ActiveContacts() int
	LastDirection() gesture.Direction
	TotalDirection() gesture.Direction
	FingerCount() int
	Kind() gesture.Kind

	attach(index int, listener Listener)
	releaseContacts()
}

type notifier struct {
	index    int
	listener Listener
}

func (n *notifier) attach(index int, listener Listener) {
	n.index = index
	n.listener = listener
}

func (n *notifier) notifyBegin() {
	if n.listener != nil {
		n.listener.OnBegin(n.index)
	}
}

func (n *notifier) notifyUpdate() {
	if n.listener != nil {
		n.listener.OnUpdate(n.index)
	}
}

func (n *notifier) notifyCancelled() {
	if n.listener != nil {
		n.listener.OnCancelled(n.index)
	}
}

func (n *notifier) notifyFinished() {
	if n.listener != nil {
		n.listener.OnFinished(n.index)
	}
}

// classifier compares two snapshots of the tracked points, returning
// false when the change is too small to count.
type classifier func(from, to []gesture.Point) (gesture.Direction, bool)

// contactGesture is the finger-tracking skeleton shared by the swipe and
// zoom recognizers. It begins once exactly arity contacts are down and
// cancels as soon as one more lands.
type contactGesture struct {
	notifier

	points   tracker
	classify classifier

	started       bool
	cancelled     bool
	lastDirection gesture.Direction
	lastDelta     gesture.Point
}

func newContactGesture(arity int, classify classifier) contactGesture {
	return contactGesture{
		points:   newTracker(arity),
		classify: classify,
	}
}

func (g *contactGesture) HandleEvent(ev gesture.TouchEvent) gesture.State {
	switch ev.Type {
	case gesture.TouchDown:
		return g.down(ev)
	case gesture.TouchMotion:
		if g.cancelled {
			return gesture.StateIgnore
		}
		g.points.move(ev.Slot, ev.Position)
		if !g.started {
			g.points.setStart(ev.Slot, ev.Position)
		}
	case gesture.TouchUp:
		return g.up()
	case gesture.TouchFrame:
		return g.frame()
	case gesture.TouchCancel:
		g.cancelled = true
		g.notifyCancelled()
		return gesture.StateCancelled
	}

	return gesture.StateIgnore
}

func (g *contactGesture) down(ev gesture.TouchEvent) gesture.State {
	count := g.points.press()
	if g.cancelled {
		return gesture.StateIgnore
	}

	arity := g.points.arity
	if count <= arity {
		g.points.setStart(ev.Slot, ev.Position)
	}

	switch {
	case count == arity:
		g.started = true
		g.points.snapshot()
		g.notifyBegin()
		return gesture.StateBegin
	case count > arity:
		g.cancelled = true
		g.notifyCancelled()
		return gesture.StateCancelled
	}

	return gesture.StateIgnore
}

func (g *contactGesture) up() gesture.State {
	if g.points.release() > 0 {
		return gesture.StateIgnore
	}

	if !g.cancelled && g.started && g.lastDirection != gesture.None {
		g.notifyFinished()
		return gesture.StateFinished
	}

	// aborted before anything was recognized, or already reported as cancelled
	g.Reset()
	return gesture.StateIgnore
}

func (g *contactGesture) frame() gesture.State {
	if g.cancelled || !g.started || g.points.active != g.points.arity {
		return gesture.StateIgnore
	}

	direction, ok := g.classify(g.points.last, g.points.current)
	if !ok {
		return gesture.StateIgnore
	}

	g.lastDelta = gesture.Centroid(g.points.current).Sub(gesture.Centroid(g.points.last))
	g.lastDirection = direction
	g.points.slide()
	g.notifyUpdate()
	return gesture.StateUpdate
}

// Reset returns the recognizer to idle. The hardware contact count is
// kept, since fingers may still be down.
func (g *contactGesture) Reset() {
	g.started = false
	g.cancelled = false
	g.lastDirection = gesture.None
	g.lastDelta = gesture.Point{}
	g.points.clear()
}

func (g *contactGesture) Cancel() {
	if g.cancelled {
		return
	}
	g.cancelled = true
	g.notifyCancelled()
}

func (g *contactGesture) IsCancelled() bool {
	return g.cancelled
}

func (g *contactGesture) IsStarted() bool {
	return g.started
}

func (g *contactGesture) LastDirection() gesture.Direction {
	return g.lastDirection
}

// TotalDirection classifies the full extent of the gesture, start against
// current, regardless of how many updates fired on the way.
func (g *contactGesture) TotalDirection() gesture.Direction {
	direction, ok := g.classify(g.points.start, g.points.current)
	if !ok {
		return gesture.None
	}
	return direction
}

func (g *contactGesture) FingerCount() int {
	return g.points.arity
}

// ActiveContacts is the number of contacts currently on the screen
func (g *contactGesture) ActiveContacts() int {
	return g.points.active
}

func (g *contactGesture) releaseContacts() {
	g.points.active = 0
}
