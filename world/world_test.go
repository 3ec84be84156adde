package world

import (
	"testing"

	"github.com/pthm-cable/foragers/components"
	"github.com/pthm-cable/foragers/neural"
	"github.com/pthm-cable/foragers/rng"
)

func testMinds(n int) []components.Mind {
	src := rng.New(1)
	minds := make([]components.Mind, n)
	for i := range minds {
		minds[i].Brain = neural.NewBrain(src, neural.Topology{Inputs: 3, Hidden: 2}, 1)
	}
	return minds
}

func TestNewStore(t *testing.T) {
	minds := testMinds(5)
	s := New(minds, 7)

	if s.NumAnimals() != 5 {
		t.Errorf("NumAnimals = %d, want 5", s.NumAnimals())
	}
	if s.Len() != 7 {
		t.Errorf("Len = %d, want 7", s.Len())
	}
	for i := range minds {
		if s.Animal(i).Mind.Brain != minds[i].Brain {
			t.Errorf("animal %d does not own its brain", i)
		}
	}
}

func TestAnimalMutatesInPlace(t *testing.T) {
	s := New(testMinds(3), 1)

	a := s.Animal(1)
	a.Pos.X = 0.25
	a.Rot.Angle = 1
	a.Forager.Fitness = 4

	b := s.Animal(1)
	if b.Pos.X != 0.25 || b.Rot.Angle != 1 || b.Forager.Fitness != 4 {
		t.Errorf("slot 1 did not keep writes: %+v %+v %+v", *b.Pos, *b.Rot, *b.Forager)
	}
	if s.Animal(0).Pos.X != 0 || s.Animal(2).Pos.X != 0 {
		t.Error("write leaked into another slot")
	}
}

func TestSetFood(t *testing.T) {
	s := New(testMinds(1), 3)

	s.SetFood(2, components.Position{X: 0.5, Y: 0.75})

	if got := s.FoodAt(2); got.X != 0.5 || got.Y != 0.75 {
		t.Errorf("FoodAt(2) = %+v", got)
	}
	if got := s.FoodAt(0); got.X != 0 || got.Y != 0 {
		t.Errorf("FoodAt(0) changed: %+v", got)
	}
}

func TestFoodAtReturnsCopy(t *testing.T) {
	s := New(testMinds(1), 1)
	pos := s.FoodAt(0)
	pos.X = 0.9

	if s.FoodAt(0).X != 0 {
		t.Error("FoodAt exposes internal storage")
	}
}

func TestAnimalAndFoodPositionsAreSeparate(t *testing.T) {
	s := New(testMinds(2), 2)
	s.Animal(0).Pos.X = 0.1
	s.SetFood(0, components.Position{X: 0.6})

	if s.Animal(0).Pos.X != 0.1 {
		t.Error("food write reached an animal")
	}
	if s.FoodAt(0).X != 0.6 {
		t.Error("animal write reached a food item")
	}
}
