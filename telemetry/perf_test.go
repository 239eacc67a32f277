package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_StepTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.StartStep()
	pc.StartPhase(PhaseSnapshot)
	time.Sleep(100 * time.Microsecond)
	pc.StartPhase(PhaseThink)
	time.Sleep(200 * time.Microsecond)
	pc.StartPhase(PhaseApply)
	pc.EndStep()

	stats := pc.Stats()
	if stats.AvgStepDuration < 300*time.Microsecond {
		t.Errorf("expected avg step >= 300us, got %v", stats.AvgStepDuration)
	}
	if _, ok := stats.PhaseAvg[PhaseThink]; !ok {
		t.Error("missing think phase")
	}
	if stats.StepsPerSecond <= 0 {
		t.Error("expected positive steps per second")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseThink)
		pc.EndStep()
	}

	if pc.sampleCount != 3 {
		t.Errorf("sampleCount = %d, want 3", pc.sampleCount)
	}
	if pc.writeIndex != 2 {
		t.Errorf("writeIndex = %d, want 2", pc.writeIndex)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseApply)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseThink)
		time.Sleep(500 * time.Microsecond)
		pc.EndStep()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseThink] <= stats.PhasePct[PhaseApply] {
		t.Errorf("think %v%% should exceed apply %v%%",
			stats.PhasePct[PhaseThink], stats.PhasePct[PhaseApply])
	}

	row := stats.ToCSV(7)
	if row.Generation != 7 {
		t.Errorf("Generation = %d, want 7", row.Generation)
	}
	if row.ThinkPct != stats.PhasePct[PhaseThink] {
		t.Errorf("ThinkPct = %v, want %v", row.ThinkPct, stats.PhasePct[PhaseThink])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgStepDuration != 0 {
		t.Error("expected zero avg step duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}
}
