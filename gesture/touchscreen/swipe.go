package touchscreen

import (
	"math"

	"github.com/mobile-next/touchgestures/gesture"
)

// Swipe recognizes an n-finger translation of the contact centroid
type Swipe struct {
	contactGesture
}

func NewSwipe(fingers int) *Swipe {
	return &Swipe{contactGesture: newContactGesture(fingers, classifySwipe)}
}

func NewTwoFingerSwipe() *Swipe {
	return NewSwipe(2)
}

func NewFourFingerSwipe() *Swipe {
	return NewSwipe(4)
}

func (s *Swipe) Kind() gesture.Kind {
	return gesture.Swipe
}

// LastOffset is the signed movement along the dominant axis of the most
// recent update.
func (s *Swipe) LastOffset() float64 {
	if math.Abs(s.lastDelta.X) > math.Abs(s.lastDelta.Y) {
		return s.lastDelta.X
	}
	return s.lastDelta.Y
}

func classifySwipe(from, to []gesture.Point) (gesture.Direction, bool) {
	delta := gesture.Centroid(to).Sub(gesture.Centroid(from))
	if delta.ManhattanLength() < gesture.NoiseFloor {
		return gesture.None, false
	}
	return gesture.DominantAxis(delta.X, delta.Y), true
}
