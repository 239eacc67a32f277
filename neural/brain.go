package neural

import "math"

// NumInternal is the number of internal neurons (I0..I3).
const NumInternal = 4

// Inputs holds every source value a blob exposes for one evaluation.
type Inputs struct {
	Internal  [NumInternal]float32
	Random    float32
	PositionX float32
	PositionY float32
}

// Value resolves a source against the inputs.
func (in *Inputs) Value(s Source) float32 {
	switch s {
	case SourceInternal0, SourceInternal1, SourceInternal2, SourceInternal3:
		return in.Internal[s-SourceInternal0]
	case SourceRandom:
		return in.Random
	case SourcePositionX:
		return in.PositionX
	case SourcePositionY:
		return in.PositionY
	}
	return 0
}

// Accumulators are the raw per-sink sums of weighted source values.
type Accumulators struct {
	MoveX    float32
	MoveY    float32
	Internal [NumInternal]float32
}

// Add routes a weighted contribution to the sink's accumulator.
func (a *Accumulators) Add(s Sink, v float32) {
	switch s {
	case SinkInternal0, SinkInternal1, SinkInternal2, SinkInternal3:
		a.Internal[s-SinkInternal0] += v
	case SinkMoveX:
		a.MoveX += v
	case SinkMoveY:
		a.MoveY += v
	}
}

// Accumulate evaluates every genome against the inputs. Genomes targeting
// the same sink sum, so genome order does not matter.
func Accumulate(genomes *Genomes, in *Inputs) Accumulators {
	var acc Accumulators
	for i := range genomes {
		g := &genomes[i]
		acc.Add(g.Sink, in.Value(g.Source)*float32(g.Weight))
	}
	return acc
}

// Outputs are the squashed accumulators ready to apply to a blob.
type Outputs struct {
	MoveX float32 // signed step probability, (-1, 1)
	MoveY float32
	// DeltaInternal is added to the internal state. I0 only ever grows
	// (absolute value); I1..I3 are signed.
	DeltaInternal [NumInternal]float32
}

// Think runs the full evaluation: accumulate, then squash with tanh.
func Think(genomes *Genomes, in *Inputs) Outputs {
	acc := Accumulate(genomes, in)

	out := Outputs{
		MoveX: tanh(acc.MoveX),
		MoveY: tanh(acc.MoveY),
	}
	out.DeltaInternal[0] = float32(math.Abs(float64(tanh(acc.Internal[0]))))
	for i := 1; i < NumInternal; i++ {
		out.DeltaInternal[i] = tanh(acc.Internal[i])
	}
	return out
}

func tanh(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}
