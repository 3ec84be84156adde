// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/foragers/neural"

// Position is a point in the toroidal unit square, each axis in [0, 1).
type Position struct {
	X, Y float64
}

// Rotation is an animal's facing angle in [0, 2*Pi).
type Rotation struct {
	Angle float64
}

// Motion holds an animal's current scalar speed.
type Motion struct {
	Speed float64
}

// Forager counts food eaten during the current generation.
type Forager struct {
	Fitness uint32
}

// Mind holds the animal's brain. Each animal owns its brain exclusively.
type Mind struct {
	Brain *neural.Brain
}

// Food marks a food entity.
type Food struct{}
