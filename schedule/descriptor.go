package schedule

import "github.com/murklake/ecsframe/system"

// Descriptor pairs a System with the scheduling metadata a stage uses to
// order it: the labels it advertises itself under, and the labels of
// systems it must run before/after. Grounded in
// original_source/src/schedule/system_descriptor.rs.
type Descriptor struct {
	system system.System
	labels []Label
	before []Label
	after  []Label
}

// NewDescriptor wraps sys with no ordering constraints yet.
func NewDescriptor(sys system.System) Descriptor {
	return Descriptor{system: sys}
}

// Label records an additional label other systems can order against.
func (d Descriptor) Label(label Label) Descriptor {
	d.labels = append(append([]Label(nil), d.labels...), label)
	return d
}

// Before records that sys must run before whatever carries label.
func (d Descriptor) Before(label Label) Descriptor {
	d.before = append(append([]Label(nil), d.before...), label)
	return d
}

// After records that sys must run after whatever carries label.
func (d Descriptor) After(label Label) Descriptor {
	d.after = append(append([]Label(nil), d.after...), label)
	return d
}

// IntoDescriptor is implemented by anything add_system can accept: a bare
// System, or an already-built Descriptor.
type IntoDescriptor interface {
	intoDescriptor() Descriptor
}

func (d Descriptor) intoDescriptor() Descriptor { return d }

// systemDescriptor adapts a bare system.System into IntoDescriptor so
// AddSystem can take either one directly.
type systemDescriptor struct{ system.System }

func (s systemDescriptor) intoDescriptor() Descriptor { return NewDescriptor(s.System) }

// AsDescriptor lifts a bare System so it satisfies IntoDescriptor.
func AsDescriptor(sys system.System) IntoDescriptor { return systemDescriptor{sys} }
