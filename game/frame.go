package game

import (
	"github.com/pthm-cable/blobs/components"
)

// Phase is the engine's position in the generational loop.
type Phase uint8

const (
	PhaseInitializing Phase = iota
	PhaseRunning
	PhaseSelecting
	PhaseRepopulating
	PhaseFinished
	PhaseExtinct
)

var phaseNames = [...]string{
	PhaseInitializing: "initializing",
	PhaseRunning:      "running",
	PhaseSelecting:    "selecting",
	PhaseRepopulating: "repopulating",
	PhaseFinished:     "finished",
	PhaseExtinct:      "extinct",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Done reports whether the engine has stopped advancing.
func (p Phase) Done() bool {
	return p == PhaseFinished || p == PhaseExtinct
}

// Frame is a read-only copy of the engine state published after every step.
type Frame struct {
	Generation         int
	Generations        int
	StepsPerGeneration int
	PopulationCap      int
	Step               int
	Phase              Phase

	Blobs []components.Blob

	// Survivor count of the most recent selection. Starts at the cap.
	Survived int

	// Sample is blob 0; SampleCode is the hex encoding of its genomes.
	Sample     components.Blob
	SampleCode string
}

// Killed returns how many blobs the most recent selection removed.
func (f *Frame) Killed() int {
	return f.PopulationCap - f.Survived
}

// SurvivalRate returns the most recent survivor fraction in [0, 1].
func (f *Frame) SurvivalRate() float64 {
	if f.PopulationCap == 0 {
		return 0
	}
	return float64(f.Survived) / float64(f.PopulationCap)
}
