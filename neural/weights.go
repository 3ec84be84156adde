package neural

import "fmt"

// BrainWeights holds a genome split into its layers for JSON output.
type BrainWeights struct {
	Inputs int       `json:"inputs"`
	Hidden int       `json:"hidden"`
	W1     []float64 `json:"w1"` // [Hidden * Inputs]
	B1     []float64 `json:"b1"` // [Hidden]
	W2     []float64 `json:"w2"` // [NumOutputs * Hidden]
	B2     []float64 `json:"b2"` // [NumOutputs]
}

// WeightsFromGenome splits a flat genome into its layers.
func WeightsFromGenome(topo Topology, genes []float64) (BrainWeights, error) {
	if len(genes) != topo.GenomeLen() {
		return BrainWeights{}, fmt.Errorf("%w: got %d, want %d", ErrGenomeLength, len(genes), topo.GenomeLen())
	}

	w1 := topo.Hidden * topo.Inputs
	b1 := w1 + topo.Hidden
	w2 := b1 + NumOutputs*topo.Hidden
	return BrainWeights{
		Inputs: topo.Inputs,
		Hidden: topo.Hidden,
		W1:     append([]float64(nil), genes[:w1]...),
		B1:     append([]float64(nil), genes[w1:b1]...),
		W2:     append([]float64(nil), genes[b1:w2]...),
		B2:     append([]float64(nil), genes[w2:]...),
	}, nil
}
