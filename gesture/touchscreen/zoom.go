package touchscreen

import (
	"math"

	"github.com/mobile-next/touchgestures/gesture"
)

const (
	// relative change in finger spread needed to classify a zoom step
	zoomRatio = 1.25

	// absolute change in finger spread, in device units, below which a
	// step is treated as jitter
	zoomMinChange = 5.0
)

// Zoom recognizes n fingers moving apart or together
type Zoom struct {
	contactGesture
}

func NewZoom(fingers int) *Zoom {
	return &Zoom{contactGesture: newContactGesture(fingers, classifyZoom)}
}

func NewThreeFingerZoom() *Zoom {
	return NewZoom(3)
}

func (z *Zoom) Kind() gesture.Kind {
	return gesture.Zoom
}

func classifyZoom(from, to []gesture.Point) (gesture.Direction, bool) {
	before := gesture.Spread(from)
	after := gesture.Spread(to)
	if before <= 0 || after <= 0 {
		return gesture.None, false
	}
	if math.Abs(after-before) < zoomMinChange {
		return gesture.None, false
	}

	switch {
	case after/before >= zoomRatio:
		return gesture.ZoomIn, true
	case before/after >= zoomRatio:
		return gesture.ZoomOut, true
	}
	return gesture.None, false
}
