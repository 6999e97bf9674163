package touchpad

import (
	"math"

	"github.com/mobile-next/touchgestures/gesture"
	"github.com/mobile-next/touchgestures/utils"
)

const (
	// swipe movement, in device units, per emitted update and the minimum
	// total movement for a directional finish
	swipeThreshold = 20.0

	// relative scale change per emitted pinch update
	pinchRatio = 1.5

	unsetScale = -1.0
)

// Listener receives every notification the touchpad recognizer emits
type Listener interface {
	OnGesture(n gesture.Notification)
}

// State is a copy of the recognizer's accumulators
type State struct {
	TotalDelta    gesture.Point `json:"total_delta"`
	WindowedDelta gesture.Point `json:"windowed_delta"`
	TotalScale    float64       `json:"total_scale"`
	LastScale     float64       `json:"last_scale"`
	TotalAngle    float64       `json:"total_angle"`
	Fingers       int           `json:"fingers"`
	Cancelled     bool          `json:"cancelled"`
}

// Recognizer turns driver-aggregated touchpad gestures into notifications.
// Swipe and pinch run as two independent machines over shared
// accumulators; the driver never interleaves them.
type Recognizer struct {
	listener Listener
	state    State
}

func NewRecognizer(listener Listener) *Recognizer {
	r := &Recognizer{listener: listener}
	r.Reset()
	return r
}

func (r *Recognizer) State() State {
	return r.state
}

func (r *Recognizer) Reset() {
	r.state = State{LastScale: unsetScale}
}

func (r *Recognizer) HandleEvent(ev gesture.PadEvent) {
	switch ev.Type {
	case gesture.SwipeBegin:
		r.Reset()
		r.state.Fingers = ev.Fingers
	case gesture.SwipeUpdate:
		r.swipeUpdate(ev.DX, ev.DY)
	case gesture.SwipeEnd:
		r.swipeEnd(ev)
	case gesture.PinchBegin:
		r.Reset()
		r.state.Fingers = ev.Fingers
	case gesture.PinchUpdate:
		r.pinchUpdate(ev.Scale, ev.AngleDelta)
	case gesture.PinchEnd:
		r.pinchEnd(ev)
	}
}

func (r *Recognizer) swipeUpdate(dx, dy float64) {
	s := &r.state
	s.TotalDelta.X += dx
	s.TotalDelta.Y += dy
	s.WindowedDelta.X += dx
	s.WindowedDelta.Y += dy

	if math.Abs(s.WindowedDelta.X) <= swipeThreshold && math.Abs(s.WindowedDelta.Y) <= swipeThreshold {
		return
	}

	direction := gesture.DominantAxis(s.WindowedDelta.X, s.WindowedDelta.Y)
	s.WindowedDelta = gesture.Point{}
	r.emit(gesture.Swipe, gesture.Update, direction)
}

func (r *Recognizer) swipeEnd(ev gesture.PadEvent) {
	r.state.Cancelled = ev.Cancelled
	r.state.Fingers = ev.Fingers

	if r.state.Cancelled {
		r.emit(gesture.Swipe, gesture.Cancelled, gesture.None)
	} else {
		total := r.state.TotalDelta
		r.emit(gesture.Swipe, gesture.Finished, gesture.ThresholdAxis(total.X, total.Y, swipeThreshold))
	}
	r.Reset()
}

func (r *Recognizer) pinchUpdate(scale, angleDelta float64) {
	s := &r.state
	s.TotalScale = scale
	s.TotalAngle += angleDelta

	if s.LastScale < 0 {
		s.LastScale = s.TotalScale
		return
	}
	if scaleRatio(s.TotalScale, s.LastScale) <= pinchRatio {
		return
	}

	direction := gesture.ZoomOut
	if s.TotalScale > s.LastScale {
		direction = gesture.ZoomIn
	}
	s.LastScale = s.TotalScale
	r.emit(gesture.Pinch, gesture.Update, direction)
}

// scaleRatio is the relative change between two scales, at least 1. A
// change from or to zero is infinite.
func scaleRatio(a, b float64) float64 {
	if a == b {
		return 1
	}
	if a == 0 || b == 0 {
		return math.Inf(1)
	}
	return math.Max(a/b, b/a)
}

// pinchEnd trusts the driver's cancelled flag only when no scale was ever
// reported; drivers often flag a pinch-out as cancelled.
func (r *Recognizer) pinchEnd(ev gesture.PadEvent) {
	r.state.Cancelled = ev.Cancelled
	r.state.Fingers = ev.Fingers

	if r.state.Cancelled && r.state.TotalScale == 0 {
		r.emit(gesture.Pinch, gesture.Cancelled, gesture.None)
	} else {
		direction := gesture.ZoomOut
		if r.state.TotalScale > 1 {
			direction = gesture.ZoomIn
		}
		r.emit(gesture.Pinch, gesture.Finished, direction)
	}
	r.Reset()
}

func (r *Recognizer) emit(kind gesture.Kind, phase gesture.Phase, direction gesture.Direction) {
	n := gesture.Notification{
		Fingers:   r.state.Fingers,
		Kind:      kind,
		Phase:     phase,
		Direction: direction,
	}
	utils.Verbose("touchpad %d finger %s %s %s", n.Fingers, n.Kind, n.Phase, n.Direction)

	if r.listener != nil {
		r.listener.OnGesture(n)
	}
}
