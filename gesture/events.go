package gesture

// TouchEventType enumerates the raw touch-screen events
type TouchEventType int

const (
	TouchDown TouchEventType = iota
	TouchMotion
	TouchUp
	TouchFrame
	TouchCancel
)

func (t TouchEventType) String() string {
	switch t {
	case TouchDown:
		return "down"
	case TouchMotion:
		return "motion"
	case TouchUp:
		return "up"
	case TouchFrame:
		return "frame"
	case TouchCancel:
		return "cancel"
	}
	return "unknown"
}

// TouchEvent is one raw touch-screen sample. Slot and position are only
// meaningful for Down and Motion; Up carries the slot only.
type TouchEvent struct {
	Type     TouchEventType
	Slot     int
	Position Point
}

func TouchDownAt(slot int, x, y float64) TouchEvent {
	return TouchEvent{Type: TouchDown, Slot: slot, Position: Point{X: x, Y: y}}
}

func Motion(slot int, x, y float64) TouchEvent {
	return TouchEvent{Type: TouchMotion, Slot: slot, Position: Point{X: x, Y: y}}
}

func TouchUpAt(slot int) TouchEvent {
	return TouchEvent{Type: TouchUp, Slot: slot}
}

func Frame() TouchEvent {
	return TouchEvent{Type: TouchFrame}
}

func HardwareCancel() TouchEvent {
	return TouchEvent{Type: TouchCancel}
}

// PadEventType enumerates the pre-aggregated touchpad gesture events
type PadEventType int

const (
	SwipeBegin PadEventType = iota
	SwipeUpdate
	SwipeEnd
	PinchBegin
	PinchUpdate
	PinchEnd
)

func (t PadEventType) String() string {
	switch t {
	case SwipeBegin:
		return "swipe_begin"
	case SwipeUpdate:
		return "swipe_update"
	case SwipeEnd:
		return "swipe_end"
	case PinchBegin:
		return "pinch_begin"
	case PinchUpdate:
		return "pinch_update"
	case PinchEnd:
		return "pinch_end"
	}
	return "unknown"
}

// PadEvent is one touchpad gesture event as reported by the driver. Scale
// is cumulative since the gesture began; DX, DY and AngleDelta are
// incremental.
type PadEvent struct {
	Type       PadEventType
	Fingers    int
	DX         float64
	DY         float64
	Scale      float64
	AngleDelta float64
	Cancelled  bool
}
