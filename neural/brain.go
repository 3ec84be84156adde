// Package neural provides the feedforward brains that steer animals.
package neural

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/foragers/rng"
)

// NumOutputs is fixed: turn and acceleration.
const NumOutputs = 2

// ErrGenomeLength is returned when a genome does not match a topology.
var ErrGenomeLength = errors.New("genome length does not match topology")

// Topology describes the layer sizes of a brain.
type Topology struct {
	Inputs int // one per eye cell
	Hidden int
}

// GenomeLen returns the number of genes (weights and biases) for the topology.
func (t Topology) GenomeLen() int {
	return t.Hidden*t.Inputs + t.Hidden + NumOutputs*t.Hidden + NumOutputs
}

// Brain is a network with one hidden layer.
// Genes are laid out as W1 (row-major), B1, W2 (row-major), B2.
type Brain struct {
	topo Topology

	W1 *mat.Dense    // hidden x inputs
	B1 *mat.VecDense // hidden biases
	W2 *mat.Dense    // outputs x hidden
	B2 *mat.VecDense // output biases

	// Scratch vectors reused across Forward calls
	in     *mat.VecDense
	hidden *mat.VecDense
	out    *mat.VecDense
}

// newBrain allocates a zeroed brain for the topology.
func newBrain(topo Topology) *Brain {
	return &Brain{
		topo:   topo,
		W1:     mat.NewDense(topo.Hidden, topo.Inputs, nil),
		B1:     mat.NewVecDense(topo.Hidden, nil),
		W2:     mat.NewDense(NumOutputs, topo.Hidden, nil),
		B2:     mat.NewVecDense(NumOutputs, nil),
		in:     mat.NewVecDense(topo.Inputs, nil),
		hidden: mat.NewVecDense(topo.Hidden, nil),
		out:    mat.NewVecDense(NumOutputs, nil),
	}
}

// NewBrain creates a brain with weights and biases uniform in [-initRange, initRange].
func NewBrain(src *rng.Source, topo Topology, initRange float64) *Brain {
	b := newBrain(topo)

	for i := 0; i < topo.Hidden; i++ {
		b.B1.SetVec(i, src.Range(-initRange, initRange))
		for j := 0; j < topo.Inputs; j++ {
			b.W1.Set(i, j, src.Range(-initRange, initRange))
		}
	}
	for i := 0; i < NumOutputs; i++ {
		b.B2.SetVec(i, src.Range(-initRange, initRange))
		for j := 0; j < topo.Hidden; j++ {
			b.W2.Set(i, j, src.Range(-initRange, initRange))
		}
	}

	return b
}

// Topology returns the brain's layer sizes.
func (b *Brain) Topology() Topology { return b.topo }

// Forward maps a retina to normalized controls.
// Returns: turn [-1,1], accel [-1,1]
func (b *Brain) Forward(retina []float64) (turn, accel float64) {
	for j := 0; j < b.topo.Inputs; j++ {
		b.in.SetVec(j, retina[j])
	}

	b.hidden.MulVec(b.W1, b.in)
	b.hidden.AddVec(b.hidden, b.B1)
	for i := 0; i < b.topo.Hidden; i++ {
		b.hidden.SetVec(i, math.Tanh(b.hidden.AtVec(i)))
	}

	b.out.MulVec(b.W2, b.hidden)
	b.out.AddVec(b.out, b.B2)

	return math.Tanh(b.out.AtVec(0)), math.Tanh(b.out.AtVec(1))
}

// Genome returns a copy of every weight and bias in genome order.
func (b *Brain) Genome() []float64 {
	genes := make([]float64, 0, b.topo.GenomeLen())
	genes = append(genes, b.W1.RawMatrix().Data...)
	genes = append(genes, b.B1.RawVector().Data...)
	genes = append(genes, b.W2.RawMatrix().Data...)
	genes = append(genes, b.B2.RawVector().Data...)
	return genes
}

// LoadGenome overwrites the brain's weights in place.
func (b *Brain) LoadGenome(genes []float64) error {
	if len(genes) != b.topo.GenomeLen() {
		return fmt.Errorf("%w: got %d, want %d", ErrGenomeLength, len(genes), b.topo.GenomeLen())
	}

	n := copy(b.W1.RawMatrix().Data, genes)
	n += copy(b.B1.RawVector().Data, genes[n:])
	n += copy(b.W2.RawMatrix().Data, genes[n:])
	copy(b.B2.RawVector().Data, genes[n:])
	return nil
}
