package touchscreen

import (
	"github.com/mobile-next/touchgestures/gesture"
)

// DragAndTap recognizes one finger dragging while a second finger taps.
// Every completed tap is reported as an update; the gesture finishes when
// the last finger lifts after at least one tap.
type DragAndTap struct {
	notifier

	active int

	dragSlot  int
	origin    gesture.Point
	dragging  bool
	tapping   bool
	taps      int
	cancelled bool
}

func NewDragAndTap() *DragAndTap {
	return &DragAndTap{}
}

func (d *DragAndTap) HandleEvent(ev gesture.TouchEvent) gesture.State {
	switch ev.Type {
	case gesture.TouchDown:
		return d.down(ev)
	case gesture.TouchMotion:
		if d.cancelled || d.active == 0 || ev.Slot != d.dragSlot {
			return gesture.StateIgnore
		}
		if !d.dragging && ev.Position.Sub(d.origin).ManhattanLength() >= gesture.NoiseFloor {
			d.dragging = true
		}
	case gesture.TouchUp:
		return d.up(ev)
	case gesture.TouchCancel:
		d.cancelled = true
		d.notifyCancelled()
		return gesture.StateCancelled
	}

	return gesture.StateIgnore
}

func (d *DragAndTap) down(ev gesture.TouchEvent) gesture.State {
	d.active++
	if d.cancelled {
		return gesture.StateIgnore
	}

	switch d.active {
	case 1:
		d.dragSlot = ev.Slot
		d.origin = ev.Position
		return gesture.StateIgnore
	case 2:
		if !d.dragging {
			// second finger arrived before the first one dragged
			d.cancelled = true
			return gesture.StateIgnore
		}
		d.tapping = true
		if d.taps == 0 {
			d.notifyBegin()
			return gesture.StateBegin
		}
		return gesture.StateIgnore
	}

	d.cancelled = true
	d.notifyCancelled()
	return gesture.StateCancelled
}

func (d *DragAndTap) up(ev gesture.TouchEvent) gesture.State {
	if d.active > 0 {
		d.active--
	}

	if d.active == 0 {
		if !d.cancelled && d.taps > 0 {
			d.notifyFinished()
			return gesture.StateFinished
		}
		d.Reset()
		return gesture.StateIgnore
	}

	if d.cancelled || !d.tapping {
		return gesture.StateIgnore
	}

	if ev.Slot == d.dragSlot {
		// the dragging finger lifted while the tap was still down
		d.cancelled = true
		return gesture.StateIgnore
	}

	d.tapping = false
	d.taps++
	d.notifyUpdate()
	return gesture.StateUpdate
}

func (d *DragAndTap) Reset() {
	d.dragSlot = 0
	d.origin = gesture.Point{}
	d.dragging = false
	d.tapping = false
	d.taps = 0
	d.cancelled = false
}

func (d *DragAndTap) Cancel() {
	if d.cancelled {
		return
	}
	d.cancelled = true
	d.notifyCancelled()
}

func (d *DragAndTap) IsCancelled() bool {
	return d.cancelled
}

// IsStarted reports whether a tap has begun during the current drag
func (d *DragAndTap) IsStarted() bool {
	return d.tapping || d.taps > 0
}

func (d *DragAndTap) ActiveContacts() int {
	return d.active
}

// Taps is the number of completed taps in the current drag
func (d *DragAndTap) Taps() int {
	return d.taps
}

func (d *DragAndTap) LastDirection() gesture.Direction {
	return gesture.None
}

func (d *DragAndTap) TotalDirection() gesture.Direction {
	return gesture.None
}

func (d *DragAndTap) FingerCount() int {
	return 2
}

func (d *DragAndTap) Kind() gesture.Kind {
	return gesture.DragAndTap
}

func (d *DragAndTap) releaseContacts() {
	d.active = 0
}
