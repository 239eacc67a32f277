package telemetry

import (
	"time"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/neural"
)

// Collector accumulates step timings within a generation and produces
// GenerationStats at each selection boundary.
type Collector struct {
	steps     int
	stepTotal time.Duration
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordStep records the wall time of one simulation step.
func (c *Collector) RecordStep(d time.Duration) {
	c.steps++
	c.stepTotal += d
}

// Collect produces GenerationStats for the population as it stood when
// selection ran and resets the step counters for the next generation.
// survivors is the number of blobs that passed selection.
func (c *Collector) Collect(generation int, blobs []components.Blob, survivors int) GenerationStats {
	n := len(blobs)
	xs := make([]float64, n)
	var internal [neural.NumInternal]float64
	distinct := make(map[neural.Genomes]struct{}, n)

	for i := range blobs {
		b := &blobs[i]
		xs[i] = float64(b.Position.X)
		for k, v := range b.Internal.I {
			internal[k] += float64(v)
		}
		distinct[b.Genes.Set] = struct{}{}
	}

	x := Describe(xs)
	stats := GenerationStats{
		Generation: generation,
		Population: n,
		Survivors:  survivors,
		Killed:     n - survivors,
		XMean:      x.Mean,
		XStd:       x.Std,
		XP10:       x.P10,
		XP50:       x.P50,
		XP90:       x.P90,
		Diversity:  len(distinct),
	}
	if n > 0 {
		stats.SurvivalRate = float64(survivors) / float64(n)
		stats.I0Mean = internal[0] / float64(n)
		stats.I1Mean = internal[1] / float64(n)
		stats.I2Mean = internal[2] / float64(n)
		stats.I3Mean = internal[3] / float64(n)
	}
	if c.steps > 0 {
		stats.MeanStepUS = float64(c.stepTotal.Microseconds()) / float64(c.steps)
	}

	// Reset for next generation
	c.steps = 0
	c.stepTotal = 0

	return stats
}
