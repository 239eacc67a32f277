package components

import "github.com/pthm-cable/blobs/neural"

// Internal holds the internal neuron state I0..I3.
// I0 starts in [0, 1] and only grows; I1..I3 start in [-1, 1] and drift freely.
type Internal struct {
	I [neural.NumInternal]float32
}

// Genes holds a blob's inherited genome set.
type Genes struct {
	Set neural.Genomes
}
