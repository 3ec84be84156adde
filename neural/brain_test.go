package neural

import (
	"errors"
	"testing"

	"github.com/pthm-cable/foragers/rng"
)

var testTopo = Topology{Inputs: 9, Hidden: 18}

func TestNewBrain(t *testing.T) {
	b := NewBrain(rng.New(42), testTopo, 1)

	if b == nil {
		t.Fatal("NewBrain returned nil")
	}

	// Check dimensions
	if r, c := b.W1.Dims(); r != testTopo.Hidden || c != testTopo.Inputs {
		t.Errorf("W1 has wrong dimensions: got %dx%d, want %dx%d", r, c, testTopo.Hidden, testTopo.Inputs)
	}
	if r, c := b.W2.Dims(); r != NumOutputs || c != testTopo.Hidden {
		t.Errorf("W2 has wrong dimensions: got %dx%d, want %dx%d", r, c, NumOutputs, testTopo.Hidden)
	}

	for i, g := range b.Genome() {
		if g < -1 || g > 1 {
			t.Fatalf("gene %d out of init range: %f", i, g)
		}
	}
}

func TestGenomeLen(t *testing.T) {
	want := 18*9 + 18 + 2*18 + 2
	if got := testTopo.GenomeLen(); got != want {
		t.Errorf("GenomeLen = %d, want %d", got, want)
	}
	if got := len(NewBrain(rng.New(1), testTopo, 1).Genome()); got != want {
		t.Errorf("len(Genome()) = %d, want %d", got, want)
	}
}

func TestForward(t *testing.T) {
	b := NewBrain(rng.New(42), testTopo, 1)

	retina := make([]float64, testTopo.Inputs)
	for i := range retina {
		retina[i] = 0.5
	}

	turn, accel := b.Forward(retina)

	if turn < -1 || turn > 1 {
		t.Errorf("turn out of range [-1,1]: %f", turn)
	}
	if accel < -1 || accel > 1 {
		t.Errorf("accel out of range [-1,1]: %f", accel)
	}
}

func TestForwardDeterministic(t *testing.T) {
	b := NewBrain(rng.New(42), testTopo, 1)

	retina := make([]float64, testTopo.Inputs)
	for i := range retina {
		retina[i] = float64(i) / float64(testTopo.Inputs)
	}

	turn1, accel1 := b.Forward(retina)
	turn2, accel2 := b.Forward(retina)

	if turn1 != turn2 || accel1 != accel2 {
		t.Error("Forward is not deterministic")
	}
}

func TestForwardKnownWeights(t *testing.T) {
	topo := Topology{Inputs: 1, Hidden: 1}
	// W1=[1], B1=[0], W2=[[1],[-1]], B2=[0,0]
	b := newBrain(topo)
	if err := b.LoadGenome([]float64{1, 0, 1, -1, 0, 0}); err != nil {
		t.Fatal(err)
	}

	turn, accel := b.Forward([]float64{0})
	if turn != 0 || accel != 0 {
		t.Errorf("zero input should give zero output, got %f, %f", turn, accel)
	}

	turn, accel = b.Forward([]float64{2})
	if turn <= 0 || accel >= 0 {
		t.Errorf("expected positive turn and negative accel, got %f, %f", turn, accel)
	}
	if turn != -accel {
		t.Errorf("outputs should be symmetric: %f vs %f", turn, accel)
	}
}

func TestGenomeRoundTrip(t *testing.T) {
	b := NewBrain(rng.New(5), testTopo, 1)
	genes := b.Genome()

	restored := newBrain(testTopo)
	if err := restored.LoadGenome(genes); err != nil {
		t.Fatalf("LoadGenome: %v", err)
	}

	got := restored.Genome()
	for i := range genes {
		if got[i] != genes[i] {
			t.Fatalf("gene %d: got %f, want %f", i, got[i], genes[i])
		}
	}
}

func TestGenomeIsCopy(t *testing.T) {
	b := NewBrain(rng.New(5), testTopo, 1)
	genes := b.Genome()
	original := genes[0]

	genes[0] = 999
	if b.Genome()[0] != original {
		t.Error("Genome() aliases brain storage")
	}
}

func TestLoadGenomeWrongLength(t *testing.T) {
	b := NewBrain(rng.New(5), testTopo, 1)
	err := b.LoadGenome(make([]float64, 3))
	if !errors.Is(err, ErrGenomeLength) {
		t.Errorf("expected ErrGenomeLength, got %v", err)
	}
}

func BenchmarkForward(b *testing.B) {
	brain := NewBrain(rng.New(42), testTopo, 1)

	retina := make([]float64, testTopo.Inputs)
	for i := range retina {
		retina[i] = 0.5
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		brain.Forward(retina)
	}
}

func TestWeightsFromGenome(t *testing.T) {
	b := NewBrain(rng.New(9), testTopo, 1)

	bw, err := WeightsFromGenome(testTopo, b.Genome())
	if err != nil {
		t.Fatalf("WeightsFromGenome: %v", err)
	}
	if bw.Inputs != testTopo.Inputs || bw.Hidden != testTopo.Hidden {
		t.Errorf("topology = %dx%d", bw.Inputs, bw.Hidden)
	}
	if len(bw.W1) != testTopo.Hidden*testTopo.Inputs || len(bw.B1) != testTopo.Hidden {
		t.Errorf("hidden layer sizes = %d, %d", len(bw.W1), len(bw.B1))
	}
	for i := range bw.W2 {
		if want := b.W2.RawMatrix().Data[i]; bw.W2[i] != want {
			t.Fatalf("W2[%d] = %f, want %f", i, bw.W2[i], want)
		}
	}
	if len(bw.B2) != NumOutputs || bw.B2[1] != b.B2.AtVec(1) {
		t.Errorf("B2 = %v, want %v", bw.B2, b.B2.RawVector().Data)
	}

	// A copy, not a view into the genome
	genes := b.Genome()
	bw2, _ := WeightsFromGenome(testTopo, genes)
	genes[0] = 999
	if bw2.W1[0] == 999 {
		t.Error("WeightsFromGenome aliases the genome")
	}

	if _, err := WeightsFromGenome(testTopo, []float64{1}); !errors.Is(err, ErrGenomeLength) {
		t.Errorf("expected ErrGenomeLength, got %v", err)
	}
}
