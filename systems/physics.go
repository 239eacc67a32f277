// Package systems contains the per-blob rules of the simulation: the step
// update, boundary-aware movement, selection and repopulation.
package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/neural"
)

// StepSize is the distance of one movement unit. The board spans [-1, 1],
// so a blob crosses it in 128 steps.
const StepSize float32 = 1.0 / 64.0

// Translate turns a signed movement probability into a movement unit of
// -1, 0 or +1. Movement that would reach or cross the board edge is
// suppressed; otherwise the blob commits to a step with probability
// |probability|. A zero probability never moves.
func Translate(rng *rand.Rand, position, probability float32) float32 {
	dir := float32(1)
	if math.Signbit(float64(probability)) {
		dir = -1
	}

	next := position + StepSize*dir
	if next >= 1 || next <= -1 {
		return 0
	}

	if rng.Float32() < float32(math.Abs(float64(probability))) {
		return dir
	}
	return 0
}

// StepBlob advances one blob by a single step: evaluate its genomes against
// its current state, move, and update the internal neurons. It reads and
// writes only b, so blobs can be stepped concurrently with separate rngs.
func StepBlob(rng *rand.Rand, b *components.Blob) {
	random := rng.Float32()*2 - 1
	in := b.Inputs(random)
	out := neural.Think(&b.Genes.Set, &in)

	b.Position.X += Translate(rng, b.Position.X, out.MoveX) * StepSize
	b.Position.Y += Translate(rng, b.Position.Y, out.MoveY) * StepSize

	for i := range b.Internal.I {
		b.Internal.I[i] += out.DeltaInternal[i]
	}
}
