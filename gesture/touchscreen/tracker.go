package touchscreen

import (
	"github.com/mobile-next/touchgestures/gesture"
)

// tracker keeps start, last-recorded and current positions per slot for a
// fixed number of slots. Slots outside [0, arity) are not tracked.
type tracker struct {
	arity  int
	active int

	start   []gesture.Point
	last    []gesture.Point
	current []gesture.Point
}

func newTracker(arity int) tracker {
	return tracker{
		arity:   arity,
		start:   make([]gesture.Point, arity),
		last:    make([]gesture.Point, arity),
		current: make([]gesture.Point, arity),
	}
}

func (t *tracker) press() int {
	t.active++
	return t.active
}

// release never drops below zero, so an unmatched up is harmless
func (t *tracker) release() int {
	if t.active > 0 {
		t.active--
	}
	return t.active
}

func (t *tracker) tracked(slot int) bool {
	return slot >= 0 && slot < t.arity
}

func (t *tracker) setStart(slot int, p gesture.Point) {
	if t.tracked(slot) {
		t.start[slot] = p
	}
}

func (t *tracker) move(slot int, p gesture.Point) {
	if t.tracked(slot) {
		t.current[slot] = p
	}
}

func (t *tracker) snapshot() {
	copy(t.last, t.start)
	copy(t.current, t.start)
}

func (t *tracker) slide() {
	copy(t.last, t.current)
}

func (t *tracker) clear() {
	for i := 0; i < t.arity; i++ {
		t.start[i] = gesture.Point{}
		t.last[i] = gesture.Point{}
		t.current[i] = gesture.Point{}
	}
}
