package systems

import (
	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/rng"
)

// Nearest returns the closest food within the eating radius.
// Ties go to the lowest index. A zero radius never eats.
func (p Physics) Nearest(pos components.Position, food FoodSource) (int, bool) {
	if p.EatingRadius <= 0 {
		return -1, false
	}

	best := -1
	bestDist := p.EatingRadius
	for i := 0; i < food.Len(); i++ {
		d := Distance(pos, food.FoodAt(i))
		if d > p.EatingRadius {
			continue
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}

// RandomPosition draws a uniform position in the unit square.
func RandomPosition(src *rng.Source) components.Position {
	return components.Position{X: src.Float64(), Y: src.Float64()}
}
