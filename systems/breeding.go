package systems

import (
	"errors"
	"math"
	"math/rand"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/neural"
)

// ErrNoSurvivors is returned when repopulation has nothing to sample from.
var ErrNoSurvivors = errors.New("no survivors to repopulate from")

// Survives is the selection predicate: blobs on the right half of the board
// (sign-positive x) live on. -0 counts as the left half.
func Survives(pos components.Position) bool {
	return !math.Signbit(float64(pos.X))
}

// SelectSurvivors returns the genome sets of all surviving blobs, in
// population order.
func SelectSurvivors(blobs []components.Blob) []neural.Genomes {
	survivors := make([]neural.Genomes, 0, len(blobs))
	for i := range blobs {
		if Survives(blobs[i].Position) {
			survivors = append(survivors, blobs[i].Genes.Set)
		}
	}
	return survivors
}

// Repopulate builds the next generation: each of the n slots copies the
// genome set of a survivor drawn uniformly with replacement, paired with a
// fresh position and internal state. Genomes are copied, never blended or
// mutated.
func Repopulate(rng *rand.Rand, survivors []neural.Genomes, n int) ([]components.Blob, error) {
	if len(survivors) == 0 {
		return nil, ErrNoSurvivors
	}

	blobs := make([]components.Blob, n)
	for i := range blobs {
		parent := survivors[rng.Intn(len(survivors))]
		blobs[i] = components.BlobWithGenomes(rng, parent)
	}
	return blobs, nil
}
