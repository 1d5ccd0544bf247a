package schedule

import "github.com/murklake/ecsframe/system"

// container is a scheduled system plus its resolved dependency indices,
// computed fresh each time the owning stage rebuilds its graph. Grounded in
// original_source/src/schedule/system_container.rs.
type container struct {
	system       system.System
	labels       []Label
	before       []Label
	after        []Label
	dependencies []int
}

func newContainer(d Descriptor) *container {
	return &container{system: d.system, labels: d.labels, before: d.before, after: d.after}
}

func (c *container) name() string { return c.system.Meta().Name }
