// Package world stores animals and food as ark entities in fixed slots.
package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foragers/components"
)

// Store holds the current generation. Entities are created once at
// construction and never removed; slot i always refers to the same entity,
// so iteration order is stable for the lifetime of the store.
type Store struct {
	world *ecs.World

	animalMapper *ecs.Map5[
		components.Position,
		components.Rotation,
		components.Motion,
		components.Forager,
		components.Mind,
	]
	foodMapper *ecs.Map2[components.Position, components.Food]

	// Food position reads and respawns
	posMap *ecs.Map1[components.Position]

	animals []ecs.Entity
	food    []ecs.Entity

	Generation uint64
	Tick       uint64
}

// Animal is a view of one animal's components. Fields point into the store.
type Animal struct {
	Pos     *components.Position
	Rot     *components.Rotation
	Motion  *components.Motion
	Forager *components.Forager
	Mind    *components.Mind
}

// New creates a store with len(minds) animals and foodCount food items.
// Every component starts zeroed except Mind; animal i takes ownership of minds[i].Brain.
func New(minds []components.Mind, foodCount int) *Store {
	world := ecs.NewWorld()

	s := &Store{
		world: world,
		animalMapper: ecs.NewMap5[
			components.Position,
			components.Rotation,
			components.Motion,
			components.Forager,
			components.Mind,
		](world),
		foodMapper: ecs.NewMap2[components.Position, components.Food](world),
		posMap:     ecs.NewMap1[components.Position](world),
		animals:    make([]ecs.Entity, 0, len(minds)),
		food:       make([]ecs.Entity, 0, foodCount),
	}

	for i := range minds {
		pos := &components.Position{}
		rot := &components.Rotation{}
		motion := &components.Motion{}
		forager := &components.Forager{}
		mind := &components.Mind{Brain: minds[i].Brain}
		s.animals = append(s.animals, s.animalMapper.NewEntity(pos, rot, motion, forager, mind))
	}
	for i := 0; i < foodCount; i++ {
		s.food = append(s.food, s.foodMapper.NewEntity(&components.Position{}, &components.Food{}))
	}

	return s
}

// NumAnimals returns the fixed population size.
func (s *Store) NumAnimals() int { return len(s.animals) }

// Animal returns the components of the animal in slot i.
func (s *Store) Animal(i int) Animal {
	pos, rot, motion, forager, mind := s.animalMapper.Get(s.animals[i])
	return Animal{Pos: pos, Rot: rot, Motion: motion, Forager: forager, Mind: mind}
}

// Len returns the fixed food count.
func (s *Store) Len() int { return len(s.food) }

// FoodAt returns the position of the food in slot i.
func (s *Store) FoodAt(i int) components.Position {
	return *s.posMap.Get(s.food[i])
}

// SetFood moves the food in slot i.
func (s *Store) SetFood(i int, pos components.Position) {
	*s.posMap.Get(s.food[i]) = pos
}
