package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDominantAxis(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Direction
	}{
		{"mostly right", 30, 5, Right},
		{"mostly up", 5, -30, Up},
		{"left", -40, 10, Left},
		{"down", 3, 26, Down},
		{"tie goes vertical", 10, 10, Down},
		{"zero", 0, 0, Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DominantAxis(tt.dx, tt.dy))
		})
	}
}

func TestThresholdAxis(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Direction
	}{
		{"right past threshold", 21, 3, Right},
		{"right at threshold", 20, 3, None},
		{"left past threshold", -25, 0, Left},
		{"up past threshold", 1, -21, Up},
		{"down below threshold", 0, 15, None},
		{"nothing", 0, 0, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThresholdAxis(tt.dx, tt.dy, 20))
		})
	}
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point{}, Centroid(nil))
	assert.Equal(t, Point{X: 2, Y: 3}, Centroid([]Point{{1, 1}, {3, 5}}))
}

func TestSpread(t *testing.T) {
	square := []Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	assert.InDelta(t, math.Sqrt2, Spread(square), 1e-9)
	assert.Equal(t, 0.0, Spread(nil))
	assert.Equal(t, 0.0, Spread([]Point{{4, 4}, {4, 4}}))
}

func TestManhattanLength(t *testing.T) {
	assert.Equal(t, 7.0, Point{X: -3, Y: 4}.ManhattanLength())
	assert.Equal(t, Point{X: 2, Y: -1}, Point{X: 5, Y: 1}.Sub(Point{X: 3, Y: 2}))
}

func TestParseNames(t *testing.T) {
	direction, ok := ParseDirection("zoomout")
	assert.True(t, ok)
	assert.Equal(t, ZoomOut, direction)

	phase, ok := ParsePhase("finished")
	assert.True(t, ok)
	assert.Equal(t, Finished, phase)

	kind, ok := ParseKind("dragtap")
	assert.True(t, ok)
	assert.Equal(t, DragAndTap, kind)

	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
	_, ok = ParsePhase("")
	assert.False(t, ok)
	_, ok = ParseKind("rotate")
	assert.False(t, ok)

	assert.Equal(t, "unknown", Direction(42).String())
}
