package shader

import "fmt"

// AttributeSlot describes where one vertex attribute sits in a vertex record.
// Offset is relative to the base offset passed to Activate, so several vertex
// formats can share one buffer.
type AttributeSlot struct {
	Name       string
	Components int32
	Type       DataType
	Normalized bool
	Stride     int32
	Offset     uintptr
}

// Size returns the attribute size in bytes
func (a AttributeSlot) Size() int {
	return int(a.Components) * a.Type.Size()
}

// Layout is the ordered attribute table of one vertex format
type Layout []AttributeSlot

// Stride returns the record size shared by the slots, zero for an empty layout
func (l Layout) Stride() int32 {
	if len(l) == 0 {
		return 0
	}
	return l[0].Stride
}

// Validate checks that every slot fits inside its vertex record
func (l Layout) Validate() error {
	seen := make(map[string]bool, len(l))
	for _, a := range l {
		if seen[a.Name] {
			return fmt.Errorf("attribute %s declared twice", a.Name)
		}
		seen[a.Name] = true

		if a.Components < 1 || a.Components > 4 {
			return fmt.Errorf("attribute %s: %d components, want 1-4", a.Name, a.Components)
		}
		if a.Stride != l.Stride() {
			return fmt.Errorf("attribute %s: stride %d differs from %d", a.Name, a.Stride, l.Stride())
		}
		if a.Stride > 0 && int(a.Offset)+a.Size() > int(a.Stride) {
			return fmt.Errorf("attribute %s: %d bytes at offset %d overflow stride %d",
				a.Name, a.Size(), a.Offset, a.Stride)
		}
	}
	return nil
}

// packed builds a layout whose slots share one stride
func packed(stride int32, slots ...AttributeSlot) Layout {
	for i := range slots {
		slots[i].Stride = stride
	}
	return Layout(slots)
}
