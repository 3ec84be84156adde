package rng

import (
	"math"
	"testing"
)

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d differs between equal seeds", i)
		}
		if a.Norm(0, 1) != b.Norm(0, 1) {
			t.Fatalf("normal draw %d differs between equal seeds", i)
		}
	}
}

func TestDifferentSeeds(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 20; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 20 {
		t.Error("different seeds produced identical sequences")
	}
}

func TestRanges(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		if v := s.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64 out of range: %v", v)
		}
		if a := s.Angle(); a < 0 || a >= 2*math.Pi {
			t.Fatalf("Angle out of range: %v", a)
		}
		if n := s.IntN(5); n < 0 || n >= 5 {
			t.Fatalf("IntN out of range: %d", n)
		}
		if v := s.Range(-2, 3); v < -2 || v >= 3 {
			t.Fatalf("Range out of range: %v", v)
		}
	}
	if s.IntN(0) != 0 {
		t.Error("IntN(0) should return 0")
	}
}

func TestBoolIsBalanced(t *testing.T) {
	s := New(3)
	heads := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if s.Bool() {
			heads++
		}
	}
	if heads < n*45/100 || heads > n*55/100 {
		t.Errorf("Bool heads = %d of %d, expected near half", heads, n)
	}
}

func TestNormMoments(t *testing.T) {
	s := New(11)
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := s.Norm(1, 0.5)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	if math.Abs(mean-1) > 0.02 {
		t.Errorf("mean = %v, want ~1", mean)
	}
	if math.Abs(std-0.5) > 0.02 {
		t.Errorf("std = %v, want ~0.5", std)
	}
}
