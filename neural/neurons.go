// Package neural defines the fixed source/sink neuron set, genomes and the
// accumulator evaluation that drives every blob.
package neural

import "math/rand"

// Source is a neuron that produces a value: an internal neuron or a sensor.
// Declaration order is the wire index used by EncodeGenomes.
type Source uint8

const (
	SourceInternal0 Source = iota
	SourceInternal1
	SourceInternal2
	SourceInternal3
	SourceRandom    // uniform in [-1, 1], drawn once per blob per step
	SourcePositionX // x position, [-1, 1]
	SourcePositionY // y position, [-1, 1]

	NumSources = 7
)

// Sink is a neuron that consumes accumulated input: an internal neuron or an action.
type Sink uint8

const (
	SinkInternal0 Sink = iota
	SinkInternal1
	SinkInternal2
	SinkInternal3
	SinkMoveX // tanh of the sum is the signed probability of an x step
	SinkMoveY

	NumSinks = 6
)

var sourceNames = [NumSources]string{"I0", "I1", "I2", "I3", "Random", "Px", "Py"}

var sinkNames = [NumSinks]string{"I0", "I1", "I2", "I3", "Mx", "My"}

// RandomSource returns a source drawn uniformly from the full set.
func RandomSource(rng *rand.Rand) Source {
	return Source(rng.Intn(NumSources))
}

// RandomSink returns a sink drawn uniformly from the full set.
func RandomSink(rng *rand.Rand) Sink {
	return Sink(rng.Intn(NumSinks))
}

// Valid reports whether s is a member of the source set.
func (s Source) Valid() bool {
	return s < NumSources
}

// Valid reports whether s is a member of the sink set.
func (s Sink) Valid() bool {
	return s < NumSinks
}

func (s Source) String() string {
	if !s.Valid() {
		return "Source(?)"
	}
	return sourceNames[s]
}

func (s Sink) String() string {
	if !s.Valid() {
		return "Sink(?)"
	}
	return sinkNames[s]
}
