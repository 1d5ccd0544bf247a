package schedule

// ShouldRun is the verdict a RunCriteria returns. SystemStage and Schedule
// neither hold nor evaluate run criteria; a caller that wants conditional
// execution evaluates one itself, e.g. around Schedule.RunOnce. Grounded in
// original_source/src/schedule/run_criteria.rs.
type ShouldRun int

const (
	// Yes means the stage should run this pass.
	Yes ShouldRun = iota
	// No means the stage should be skipped this pass.
	No
)

// Bool reports whether the verdict is Yes.
func (s ShouldRun) Bool() bool { return s == Yes }

// onceCriteria is a run criteria backed by a plain hasRun flag that returns
// Yes exactly once, then No forever after — the Go rendering of
// ShouldRun::once, which took a Local<bool> system param in the original.
type onceCriteria struct {
	hasRun bool
}

// Once returns a RunCriteria function that allows a stage to run only the
// first time it is evaluated.
func Once() func() ShouldRun {
	c := &onceCriteria{}
	return func() ShouldRun {
		if c.hasRun {
			return No
		}
		c.hasRun = true
		return Yes
	}
}

// RunCriteria wraps a function that decides whether to run this pass. The
// zero RunCriteria (no function) always says Yes, matching the original's
// Option<BoxedSystem> default. No stage or schedule consults a RunCriteria.
type RunCriteria struct {
	fn func() ShouldRun
}

// NewRunCriteria wraps fn as a run criteria.
func NewRunCriteria(fn func() ShouldRun) RunCriteria { return RunCriteria{fn: fn} }

// ShouldRun evaluates the criteria, defaulting to Yes when none was set.
func (c RunCriteria) ShouldRun() ShouldRun {
	if c.fn == nil {
		return Yes
	}
	return c.fn()
}
