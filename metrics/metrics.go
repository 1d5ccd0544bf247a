// Package metrics exposes the runtime's health as Prometheus collectors:
// live entity count, per-system execution latency, and how many schedule
// passes have run. Grounded in the teacher's metricsCollectorImpl
// (internal/core/ecs/metrics.go), whose hand-rolled counter/gauge/
// histogram bookkeeping this expansion replaces with
// github.com/prometheus/client_golang, the way a production Go service
// would actually expose this data.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/murklake/ecsframe/system"
	"github.com/murklake/ecsframe/world"
)

// Registry is the set of collectors one ecsframe runtime reports through.
// A zero Registry is not usable; build one with NewRegistry.
type Registry struct {
	EntityCount      prometheus.Gauge
	SystemDuration   *prometheus.HistogramVec
	ScheduleRunTotal prometheus.Counter
}

// NewRegistry builds a fresh set of collectors and registers them with reg.
// Pass prometheus.NewRegistry() for an isolated registry (tests,
// benchmarks) or prometheus.DefaultRegisterer to expose via the default
// /metrics handler.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		EntityCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ecsframe",
			Name:      "entities",
			Help:      "Number of live entities in the world.",
		}),
		SystemDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ecsframe",
			Name:      "system_run_seconds",
			Help:      "Time spent in a single system's Run call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"system"}),
		ScheduleRunTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ecsframe",
			Name:      "schedule_runs_total",
			Help:      "Number of completed Schedule.RunOnce passes.",
		}),
	}

	reg.MustRegister(r.EntityCount, r.SystemDuration, r.ScheduleRunTotal)
	return r
}

// ObserveWorld samples w's live entity count into the EntityCount gauge.
// Call it once per schedule pass, e.g. from a system registered in stage
// Last.
func (r *Registry) ObserveWorld(w *world.World) {
	r.EntityCount.Set(float64(w.Entities().Len()))
}

// ObserveScheduleRun increments ScheduleRunTotal. Call it once per
// Schedule.RunOnce.
func (r *Registry) ObserveScheduleRun() {
	r.ScheduleRunTotal.Inc()
}

// timedSystem wraps a System so every Run is timed into SystemDuration
// under that system's Meta().Name as the label.
type timedSystem struct {
	system.System
	histogram *prometheus.HistogramVec
}

// Timed wraps sys so its Run duration is recorded under r.SystemDuration.
func (r *Registry) Timed(sys system.System) system.System {
	return timedSystem{System: sys, histogram: r.SystemDuration}
}

func (t timedSystem) Run(w *world.World) {
	start := time.Now()
	t.System.Run(w)
	t.histogram.WithLabelValues(t.System.Meta().Name).Observe(time.Since(start).Seconds())
}
