package schedule

import (
	"golang.org/x/sync/errgroup"

	"github.com/murklake/ecsframe/access"
	"github.com/murklake/ecsframe/world"
)

// parallelSystemMeta is the per-system bookkeeping the parallel executor
// keeps between runs: how many dependencies remain, who depends on this
// system, and the access footprint used to decide whether two systems may
// run concurrently. Grounded in
// original_source/src/schedule/parallel_executor.rs's ParallelSystemMeta,
// rendered with a channel instead of an async Event for the start signal.
type parallelSystemMeta struct {
	start                 chan struct{}
	dependants            []int
	dependenciesTotal     int
	dependenciesRemaining int
	access                *access.Set
}

// ParallelExecutor runs a stage's systems across goroutines, respecting
// both their dependency order and the read/write conflicts recorded in
// each system's Meta.Access. Two systems whose access is compatible (neither
// writes a component the other reads or writes) run concurrently; everything else queues until the
// conflicting system finishes.
type ParallelExecutor struct {
	meta          []parallelSystemMeta
	queued        []bool
	running       []bool
	currentAccess *access.Set
}

// NewParallelExecutor returns an executor with no systems registered yet;
// SystemsChanged populates it once a stage's graph is (re)built.
func NewParallelExecutor() *ParallelExecutor {
	return &ParallelExecutor{currentAccess: access.NewSet()}
}

func (p *ParallelExecutor) SystemsChanged(systems []*container) {
	p.meta = make([]parallelSystemMeta, len(systems))
	p.queued = make([]bool, len(systems))
	p.running = make([]bool, len(systems))

	for i, c := range systems {
		p.meta[i] = parallelSystemMeta{
			start:             make(chan struct{}),
			dependenciesTotal: len(c.dependencies),
			access:            &c.system.Meta().Access.Set,
		}
	}

	for dependant, c := range systems {
		for _, dependency := range c.dependencies {
			p.meta[dependency].dependants = append(p.meta[dependency].dependants, dependant)
		}
	}
}

func (p *ParallelExecutor) RunSystems(systems []*container, w *world.World) {
	if len(systems) == 0 {
		return
	}

	p.currentAccess = access.NewSet()
	finished := make(chan int, len(systems))
	var g errgroup.Group

	for i, c := range systems {
		m := &p.meta[i]
		// A fresh start channel per run: the previous run's channel was
		// already closed and must not be reused.
		m.start = make(chan struct{})

		dependenciesRun := m.dependenciesTotal == 0
		accessCompatible := m.access.IsCompatible(p.currentAccess)
		canRun := dependenciesRun && accessCompatible

		if m.dependenciesTotal > 0 {
			m.dependenciesRemaining = m.dependenciesTotal
		}

		p.queued[i] = dependenciesRun && !accessCompatible
		p.running[i] = canRun

		if canRun {
			p.currentAccess.Extend(m.access)
		}

		g.Go(func() error {
			if !canRun {
				<-p.meta[i].start
			}
			c.system.Run(w)
			finished <- i
			return nil
		})
	}

	for p.queuedCount()+p.runningCount() > 0 {
		if p.runningCount() > 0 {
			p.processFinished(<-finished)
		drain:
			for {
				select {
				case idx := <-finished:
					p.processFinished(idx)
				default:
					break drain
				}
			}
			p.rebuildAccess()
		}
		p.runQueuedSystems()
	}

	g.Wait()
}

func (p *ParallelExecutor) queuedCount() int { return countTrue(p.queued) }
func (p *ParallelExecutor) runningCount() int { return countTrue(p.running) }

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func (p *ParallelExecutor) processFinished(index int) {
	p.running[index] = false

	for _, dependant := range p.meta[index].dependants {
		p.meta[dependant].dependenciesRemaining--
		if p.meta[dependant].dependenciesRemaining == 0 {
			p.queued[dependant] = true
		}
	}
}

func (p *ParallelExecutor) runQueuedSystems() {
	for i, queued := range p.queued {
		if !queued {
			continue
		}
		if p.meta[i].access.IsCompatible(p.currentAccess) {
			p.queued[i] = false
			p.running[i] = true
			p.currentAccess.Extend(p.meta[i].access)
			close(p.meta[i].start)
		}
	}
}

func (p *ParallelExecutor) rebuildAccess() {
	p.currentAccess = access.NewSet()
	for i, running := range p.running {
		if running {
			p.currentAccess.Extend(p.meta[i].access)
		}
	}
}
