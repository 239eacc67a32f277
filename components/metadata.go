package components

import "fmt"

// FieldDescriptor describes a blob field for UI display.
type FieldDescriptor struct {
	ID     string // Unique identifier
	Label  string // Display name
	Format string // Printf format (e.g., "%.2f")
	Group  string // Logical grouping
	Value  func(b *Blob) float32
}

// BlobFieldDescriptors returns metadata for the inspectable blob fields.
func BlobFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "x", Label: "x", Format: "%+.3f", Group: "position", Value: func(b *Blob) float32 { return b.Position.X }},
		{ID: "y", Label: "y", Format: "%+.3f", Group: "position", Value: func(b *Blob) float32 { return b.Position.Y }},
		{ID: "i0", Label: "I0", Format: "%.3f", Group: "internal", Value: func(b *Blob) float32 { return b.Internal.I[0] }},
		{ID: "i1", Label: "I1", Format: "%+.3f", Group: "internal", Value: func(b *Blob) float32 { return b.Internal.I[1] }},
		{ID: "i2", Label: "I2", Format: "%+.3f", Group: "internal", Value: func(b *Blob) float32 { return b.Internal.I[2] }},
		{ID: "i3", Label: "I3", Format: "%+.3f", Group: "internal", Value: func(b *Blob) float32 { return b.Internal.I[3] }},
	}
}

// Render formats the field for the given blob.
func (d FieldDescriptor) Render(b *Blob) string {
	return d.Label + " = " + fmt.Sprintf(d.Format, d.Value(b))
}
