package systems

import (
	"math"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/config"
)

// Eye converts nearby food into a retina with one activation per cell.
// Cells evenly divide the field of view, centered on the animal's heading,
// with cell 0 at the most negative relative angle.
type Eye struct {
	FOVAngle    float64
	Cells       int
	MaxDistance float64
}

// NewEye creates an eye from config.
func NewEye(cfg config.EyeConfig) Eye {
	return Eye{
		FOVAngle:    cfg.FOVAngle,
		Cells:       cfg.Cells,
		MaxDistance: cfg.MaxDistance,
	}
}

// cellIndex maps a relative angle in [-fov/2, fov/2] to a cell.
// A food exactly on a boundary belongs to the lower-index cell.
func (e Eye) cellIndex(angle float64) int {
	width := e.FOVAngle / float64(e.Cells)
	idx := int(math.Ceil((angle+e.FOVAngle/2)/width)) - 1
	if idx < 0 {
		return 0
	}
	if idx >= e.Cells {
		return e.Cells - 1
	}
	return idx
}

// Process fills out (len == Cells) with the retina for an animal.
// Each visible food adds (max - d) / max to its cell.
func (e Eye) Process(pos components.Position, rotation float64, food FoodSource, out []float64) {
	for i := range out {
		out[i] = 0
	}

	half := e.FOVAngle / 2
	for i := 0; i < food.Len(); i++ {
		dx, dy := Delta(pos, food.FoodAt(i))
		d := math.Hypot(dx, dy)
		if d >= e.MaxDistance {
			continue
		}

		// Food under the animal counts as dead ahead
		var angle float64
		if d > 0 {
			angle = NormalizeAngle(math.Atan2(dy, dx) - rotation)
		}
		if angle < -half || angle > half {
			continue
		}

		out[e.cellIndex(angle)] += (e.MaxDistance - d) / e.MaxDistance
	}
}
