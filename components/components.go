// Package components defines the ECS components and the Blob value type.
package components

import (
	"math/rand"

	"github.com/pthm-cable/blobs/neural"
)

// Blob is a value snapshot of one simulated creature. Copies are independent.
type Blob struct {
	Position Position
	Internal Internal
	Genes    Genes
}

// RandomBlob creates a blob with random position, internal state and genomes.
// Only generation zero is built this way.
func RandomBlob(rng *rand.Rand) Blob {
	return BlobWithGenomes(rng, neural.RandomGenomes(rng))
}

// BlobWithGenomes creates a blob carrying the given genome set. Position and
// internal state are always fresh; only genetics is inherited.
func BlobWithGenomes(rng *rand.Rand, genomes neural.Genomes) Blob {
	b := Blob{
		Position: Position{X: signedUnit(rng), Y: signedUnit(rng)},
		Genes:    Genes{Set: genomes},
	}
	b.Internal.I[0] = rng.Float32()
	for i := 1; i < neural.NumInternal; i++ {
		b.Internal.I[i] = signedUnit(rng)
	}
	return b
}

// Inputs exposes the blob's state as neural source values.
func (b *Blob) Inputs(random float32) neural.Inputs {
	return neural.Inputs{
		Internal:  b.Internal.I,
		Random:    random,
		PositionX: b.Position.X,
		PositionY: b.Position.Y,
	}
}

// signedUnit returns a uniform value in [-1, 1).
func signedUnit(rng *rand.Rand) float32 {
	return rng.Float32()*2 - 1
}
