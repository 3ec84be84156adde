package sim

// AnimalState is the externally visible state of one animal.
type AnimalState struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// FoodState is the externally visible state of one food item.
type FoodState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is a copy of the world. Modifying it never affects the simulation.
type Snapshot struct {
	Generation uint64        `json:"generation"`
	Tick       uint64        `json:"tick"`
	Animals    []AnimalState `json:"animals"`
	Food       []FoodState   `json:"food"`
}

// World returns a snapshot of the current world.
func (s *Simulation) World() Snapshot {
	var snap Snapshot
	s.CopyWorld(&snap)
	return snap
}

// CopyWorld writes the current world into dst, reusing its slices when
// they have enough capacity.
func (s *Simulation) CopyWorld(dst *Snapshot) {
	dst.Generation = s.store.Generation
	dst.Tick = s.store.Tick

	n := s.store.NumAnimals()
	if cap(dst.Animals) < n {
		dst.Animals = make([]AnimalState, n)
	}
	dst.Animals = dst.Animals[:n]
	for i := 0; i < n; i++ {
		a := s.store.Animal(i)
		dst.Animals[i] = AnimalState{X: a.Pos.X, Y: a.Pos.Y, Rotation: a.Rot.Angle}
	}

	f := s.store.Len()
	if cap(dst.Food) < f {
		dst.Food = make([]FoodState, f)
	}
	dst.Food = dst.Food[:f]
	for i := 0; i < f; i++ {
		p := s.store.FoodAt(i)
		dst.Food[i] = FoodState{X: p.X, Y: p.Y}
	}
}
