package neural

import (
	"fmt"
	"math/rand"
)

// GenomeCount is the fixed number of genomes carried by every blob.
const GenomeCount = 8

// Weight bounds for a genome connection.
const (
	MinWeight = -10
	MaxWeight = 10
)

// Genome is one weighted connection from a source to a sink.
type Genome struct {
	Source Source
	Sink   Sink
	Weight int8 // [MinWeight, MaxWeight]
}

// Genomes is a blob's complete genome set. Arrays copy by value, so an
// inherited set is never shared with its parent.
type Genomes [GenomeCount]Genome

// RandomGenome draws source, sink and weight uniformly.
func RandomGenome(rng *rand.Rand) Genome {
	return Genome{
		Source: RandomSource(rng),
		Sink:   RandomSink(rng),
		Weight: int8(MinWeight + rng.Intn(MaxWeight-MinWeight+1)),
	}
}

// RandomGenomes returns a set of independently random genomes.
func RandomGenomes(rng *rand.Rand) Genomes {
	var g Genomes
	for i := range g {
		g[i] = RandomGenome(rng)
	}
	return g
}

func (g Genome) String() string {
	return fmt.Sprintf("%s -> %s (%+d)", g.Source, g.Sink, g.Weight)
}
