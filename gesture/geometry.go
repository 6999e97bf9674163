package gesture

import "math"

// NoiseFloor is the minimum Manhattan displacement, in device units, that
// counts as movement for touch-screen recognizers.
const NoiseFloor = 25.0

// Point is a position in device millimeters
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) ManhattanLength() float64 {
	return math.Abs(p.X) + math.Abs(p.Y)
}

func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Centroid returns the arithmetic mean of points, or the zero point when
// points is empty.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return Point{X: c.X / n, Y: c.Y / n}
}

// Spread is the mean distance of points from their centroid
func Spread(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}

	c := Centroid(points)
	var total float64
	for _, p := range points {
		total += p.Distance(c)
	}
	return total / float64(len(points))
}

// DominantAxis classifies a delta by whichever axis moved further. Ties go
// to the vertical axis; a zero delta classifies as Up.
func DominantAxis(dx, dy float64) Direction {
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Right
		}
		return Left
	}
	if dy > 0 {
		return Down
	}
	return Up
}

// ThresholdAxis is DominantAxis with a minimum magnitude on the dominant
// axis; anything at or below threshold yields None.
func ThresholdAxis(dx, dy, threshold float64) Direction {
	if math.Abs(dx) > math.Abs(dy) {
		switch {
		case dx > threshold:
			return Right
		case dx < -threshold:
			return Left
		}
		return None
	}

	switch {
	case dy > threshold:
		return Down
	case dy < -threshold:
		return Up
	}
	return None
}
