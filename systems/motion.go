package systems

import (
	"math"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/config"
)

// Physics holds the motion and foraging limits shared by all animals.
type Physics struct {
	MinSpeed     float64
	MaxSpeed     float64
	MaxTurn      float64
	MaxAccel     float64
	EatingRadius float64
}

// NewPhysics creates physics limits from config.
func NewPhysics(cfg config.PhysicsConfig) Physics {
	return Physics{
		MinSpeed:     cfg.MinSpeed,
		MaxSpeed:     cfg.MaxSpeed,
		MaxTurn:      cfg.MaxTurn,
		MaxAccel:     cfg.MaxAccel,
		EatingRadius: cfg.EatingRadius,
	}
}

// Steer applies normalized brain outputs (turn, accel in [-1, 1]).
// Rotation wraps; speed saturates at the configured limits.
func (p Physics) Steer(rot *components.Rotation, m *components.Motion, turn, accel float64) {
	rot.Angle = WrapAngle(rot.Angle + clampFloat(turn, -1, 1)*p.MaxTurn)
	m.Speed = clampFloat(m.Speed+clampFloat(accel, -1, 1)*p.MaxAccel, p.MinSpeed, p.MaxSpeed)
}

// Advance moves a position one tick along its heading, wrapping at the edges.
func Advance(pos *components.Position, rot components.Rotation, m components.Motion) {
	pos.X = Wrap01(pos.X + m.Speed*math.Cos(rot.Angle))
	pos.Y = Wrap01(pos.Y + m.Speed*math.Sin(rot.Angle))
}
