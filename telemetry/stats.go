package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises one generation at its selection boundary.
type GenerationStats struct {
	Generation   int     `csv:"generation"`
	Population   int     `csv:"population"`
	Survivors    int     `csv:"survivors"`
	Killed       int     `csv:"killed"`
	SurvivalRate float64 `csv:"survival_rate"`

	// X position distribution before selection
	XMean float64 `csv:"x_mean"`
	XStd  float64 `csv:"x_std"`
	XP10  float64 `csv:"x_p10"`
	XP50  float64 `csv:"x_p50"`
	XP90  float64 `csv:"x_p90"`

	// Internal state means
	I0Mean float64 `csv:"i0_mean"`
	I1Mean float64 `csv:"i1_mean"`
	I2Mean float64 `csv:"i2_mean"`
	I3Mean float64 `csv:"i3_mean"`

	// Number of distinct genome sets in the population
	Diversity int `csv:"diversity"`

	MeanStepUS float64 `csv:"mean_step_us"`
}

// Distribution holds summary statistics of a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Describe computes mean, standard deviation and deciles of values.
// values is not modified. An empty input yields the zero Distribution.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		P10: stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90: stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	} else {
		d.Mean = sorted[0]
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Int("survivors", s.Survivors),
		slog.Int("killed", s.Killed),
		slog.Float64("survival_rate", s.SurvivalRate),
		slog.Float64("x_mean", s.XMean),
		slog.Float64("x_std", s.XStd),
		slog.Float64("x_p10", s.XP10),
		slog.Float64("x_p50", s.XP50),
		slog.Float64("x_p90", s.XP90),
		slog.Float64("i0_mean", s.I0Mean),
		slog.Float64("i1_mean", s.I1Mean),
		slog.Float64("i2_mean", s.I2Mean),
		slog.Float64("i3_mean", s.I3Mean),
		slog.Int("diversity", s.Diversity),
		slog.Float64("mean_step_us", s.MeanStepUS),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation complete", "stats", s)
}
