// Package systems contains the per-tick sensing, motion, and foraging rules.
package systems

import (
	"math"

	"github.com/pthm-cable/foragers/components"
)

const twoPi = 2 * math.Pi

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Wrap01 wraps a coordinate into [0, 1).
func Wrap01(v float64) float64 {
	v -= math.Floor(v)
	// Tiny negative inputs round up to exactly 1
	if v >= 1 {
		v = 0
	}
	return v
}

// WrapAngle wraps a heading to [0, 2*Pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// NormalizeAngle wraps an angle to [-Pi, Pi).
func NormalizeAngle(a float64) float64 {
	return WrapAngle(a+math.Pi) - math.Pi
}

// Delta returns the shortest wrap-around vector from one point to another.
func Delta(from, to components.Position) (dx, dy float64) {
	dx = to.X - from.X
	dy = to.Y - from.Y
	if dx > 0.5 {
		dx -= 1
	} else if dx < -0.5 {
		dx += 1
	}
	if dy > 0.5 {
		dy -= 1
	} else if dy < -0.5 {
		dy += 1
	}
	return dx, dy
}

// Distance returns the toroidal distance between two points.
func Distance(a, b components.Position) float64 {
	dx, dy := Delta(a, b)
	return math.Hypot(dx, dy)
}

// FoodSource is an ordered, indexable set of food positions.
type FoodSource interface {
	Len() int
	FoodAt(i int) components.Position
}

// FoodList adapts a slice of positions to FoodSource.
type FoodList []components.Position

func (l FoodList) Len() int                         { return len(l) }
func (l FoodList) FoodAt(i int) components.Position { return l[i] }
