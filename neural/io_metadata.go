package neural

// IODescriptor describes a source or sink for UI display.
type IODescriptor struct {
	ID          string  // Unique identifier
	Label       string  // Display name
	Description string  // Tooltip/extended description
	Min         float32 // Minimum value
	Max         float32 // Maximum value
	IsCentered  bool    // True for centered bar display (e.g., -1 to +1)
	Group       string  // Logical grouping ("internal", "sensor", "action")
}

// SourceDescriptors returns metadata for all sources, indexed by Source.
func SourceDescriptors() []IODescriptor {
	return []IODescriptor{
		{ID: "i0", Label: "I0", Description: "Internal neuron 0 (only grows)", Min: 0, Max: 1, Group: "internal"},
		{ID: "i1", Label: "I1", Description: "Internal neuron 1", Min: -1, Max: 1, IsCentered: true, Group: "internal"},
		{ID: "i2", Label: "I2", Description: "Internal neuron 2", Min: -1, Max: 1, IsCentered: true, Group: "internal"},
		{ID: "i3", Label: "I3", Description: "Internal neuron 3", Min: -1, Max: 1, IsCentered: true, Group: "internal"},
		{ID: "random", Label: "Random", Description: "Fresh uniform value each step", Min: -1, Max: 1, IsCentered: true, Group: "sensor"},
		{ID: "px", Label: "Px", Description: "Position from center, x axis", Min: -1, Max: 1, IsCentered: true, Group: "sensor"},
		{ID: "py", Label: "Py", Description: "Position from center, y axis", Min: -1, Max: 1, IsCentered: true, Group: "sensor"},
	}
}

// SinkDescriptors returns metadata for all sinks, indexed by Sink.
func SinkDescriptors() []IODescriptor {
	return []IODescriptor{
		{ID: "i0", Label: "I0", Description: "Accumulates |tanh(sum)|", Min: 0, Max: 1, Group: "internal"},
		{ID: "i1", Label: "I1", Description: "Accumulates tanh(sum)", Min: -1, Max: 1, IsCentered: true, Group: "internal"},
		{ID: "i2", Label: "I2", Description: "Accumulates tanh(sum)", Min: -1, Max: 1, IsCentered: true, Group: "internal"},
		{ID: "i3", Label: "I3", Description: "Accumulates tanh(sum)", Min: -1, Max: 1, IsCentered: true, Group: "internal"},
		{ID: "mx", Label: "Mx", Description: "Probability of an x step (sign = direction)", Min: -1, Max: 1, IsCentered: true, Group: "action"},
		{ID: "my", Label: "My", Description: "Probability of a y step (sign = direction)", Min: -1, Max: 1, IsCentered: true, Group: "action"},
	}
}

// Describe returns the descriptor for a source.
func (s Source) Describe() (IODescriptor, bool) {
	if !s.Valid() {
		return IODescriptor{}, false
	}
	return SourceDescriptors()[s], true
}

// Describe returns the descriptor for a sink.
func (s Sink) Describe() (IODescriptor, bool) {
	if !s.Valid() {
		return IODescriptor{}, false
	}
	return SinkDescriptors()[s], true
}
