package system

import (
	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/storage"
	"github.com/murklake/ecsframe/world"
)

// lastChangeTicks caches, per world, the tick a system last finished
// running at. Ported from function.rs's store_last_change_tick/
// get_last_change_tick: a system's meta.LastChangeTick advances in plain
// memory on every Run, and this cache only matters at Init time, to save
// and restore that progress if the same System value is ever re-initialized
// against a *different* world. A world never seen before starts out
// change.MaxAge ticks in the past, so every existing component/resource
// looks "changed" to it on its first run.
type lastChangeTicks struct {
	byWorld  storage.SparseArray[uint32]
	worldID  world.ID
	hasWorld bool
}

// init saves the previous world's progress (if any) and returns the
// starting LastChangeTick for w, recording w as the now-current world.
func (l *lastChangeTicks) init(w *world.World, currentTick uint32) uint32 {
	if l.hasWorld {
		l.byWorld.Insert(int(l.worldID), currentTick)
	}
	l.worldID = w.ID()
	l.hasWorld = true

	if tick, ok := l.byWorld.Get(int(w.ID())); ok {
		return tick
	}
	return w.ChangeTick() - change.MaxAge
}

// Fn1 builds a System from a single-parameter function. This is the
// idiomatic-Go substitute for the original's impl_system_param_function!
// macro (generated for tuples up to arity 26 in function.rs): Go cannot
// express "for every N, a function of N generic parameters" without
// variadic generics, so each arity gets a hand-written constructor instead,
// trimmed to the arities spec.md §8's scenarios actually exercise.
func Fn1[A any](name string, paramA Param, fn func(a A)) System {
	return &funcSystem1[A]{name: name, paramA: paramA, fn: fn}
}

type funcSystem1[A any] struct {
	name   string
	paramA Param
	fn     func(A)

	meta   *Meta
	ticks  lastChangeTicks
	stateA any
}

func (s *funcSystem1[A]) Meta() *Meta { return s.meta }

func (s *funcSystem1[A]) Init(w *world.World) {
	s.meta = NewMeta(s.name)
	s.meta.LastChangeTick = s.ticks.init(w, s.meta.LastChangeTick)
	s.stateA = s.paramA.Init(w, s.meta)
}

func (s *funcSystem1[A]) Run(w *world.World) {
	changeTick := w.IncrementChangeTick()
	a := s.paramA.Fetch(w, s.stateA, s.meta, changeTick).(A)
	s.fn(a)
	s.meta.LastChangeTick = changeTick
}

func (s *funcSystem1[A]) Apply(w *world.World) {
	if ap, ok := s.paramA.(Applier); ok {
		ap.Apply(s.stateA, w)
	}
}

// Fn2 builds a System from a two-parameter function.
func Fn2[A, B any](name string, paramA, paramB Param, fn func(A, B)) System {
	return &funcSystem2[A, B]{name: name, paramA: paramA, paramB: paramB, fn: fn}
}

type funcSystem2[A, B any] struct {
	name           string
	paramA, paramB Param
	fn             func(A, B)

	meta                   *Meta
	ticks                  lastChangeTicks
	stateA, stateB         any
}

func (s *funcSystem2[A, B]) Meta() *Meta { return s.meta }

func (s *funcSystem2[A, B]) Init(w *world.World) {
	s.meta = NewMeta(s.name)
	s.meta.LastChangeTick = s.ticks.init(w, s.meta.LastChangeTick)
	s.stateA = s.paramA.Init(w, s.meta)
	s.stateB = s.paramB.Init(w, s.meta)
}

func (s *funcSystem2[A, B]) Run(w *world.World) {
	changeTick := w.IncrementChangeTick()
	a := s.paramA.Fetch(w, s.stateA, s.meta, changeTick).(A)
	b := s.paramB.Fetch(w, s.stateB, s.meta, changeTick).(B)
	s.fn(a, b)
	s.meta.LastChangeTick = changeTick
}

func (s *funcSystem2[A, B]) Apply(w *world.World) {
	if ap, ok := s.paramA.(Applier); ok {
		ap.Apply(s.stateA, w)
	}
	if ap, ok := s.paramB.(Applier); ok {
		ap.Apply(s.stateB, w)
	}
}

// Fn3 builds a System from a three-parameter function.
func Fn3[A, B, C any](name string, paramA, paramB, paramC Param, fn func(A, B, C)) System {
	return &funcSystem3[A, B, C]{name: name, paramA: paramA, paramB: paramB, paramC: paramC, fn: fn}
}

type funcSystem3[A, B, C any] struct {
	name                   string
	paramA, paramB, paramC Param
	fn                     func(A, B, C)

	meta                   *Meta
	ticks                  lastChangeTicks
	stateA, stateB, stateC any
}

func (s *funcSystem3[A, B, C]) Meta() *Meta { return s.meta }

func (s *funcSystem3[A, B, C]) Init(w *world.World) {
	s.meta = NewMeta(s.name)
	s.meta.LastChangeTick = s.ticks.init(w, s.meta.LastChangeTick)
	s.stateA = s.paramA.Init(w, s.meta)
	s.stateB = s.paramB.Init(w, s.meta)
	s.stateC = s.paramC.Init(w, s.meta)
}

func (s *funcSystem3[A, B, C]) Run(w *world.World) {
	changeTick := w.IncrementChangeTick()
	a := s.paramA.Fetch(w, s.stateA, s.meta, changeTick).(A)
	b := s.paramB.Fetch(w, s.stateB, s.meta, changeTick).(B)
	c := s.paramC.Fetch(w, s.stateC, s.meta, changeTick).(C)
	s.fn(a, b, c)
	s.meta.LastChangeTick = changeTick
}

func (s *funcSystem3[A, B, C]) Apply(w *world.World) {
	for _, p := range []struct {
		param Param
		state any
	}{{s.paramA, s.stateA}, {s.paramB, s.stateB}, {s.paramC, s.stateC}} {
		if ap, ok := p.param.(Applier); ok {
			ap.Apply(p.state, w)
		}
	}
}

// Fn4 builds a System from a four-parameter function.
func Fn4[A, B, C, D any](name string, paramA, paramB, paramC, paramD Param, fn func(A, B, C, D)) System {
	return &funcSystem4[A, B, C, D]{name: name, paramA: paramA, paramB: paramB, paramC: paramC, paramD: paramD, fn: fn}
}

type funcSystem4[A, B, C, D any] struct {
	name                           string
	paramA, paramB, paramC, paramD Param
	fn                             func(A, B, C, D)

	meta                           *Meta
	ticks                          lastChangeTicks
	stateA, stateB, stateC, stateD any
}

func (s *funcSystem4[A, B, C, D]) Meta() *Meta { return s.meta }

func (s *funcSystem4[A, B, C, D]) Init(w *world.World) {
	s.meta = NewMeta(s.name)
	s.meta.LastChangeTick = s.ticks.init(w, s.meta.LastChangeTick)
	s.stateA = s.paramA.Init(w, s.meta)
	s.stateB = s.paramB.Init(w, s.meta)
	s.stateC = s.paramC.Init(w, s.meta)
	s.stateD = s.paramD.Init(w, s.meta)
}

func (s *funcSystem4[A, B, C, D]) Run(w *world.World) {
	changeTick := w.IncrementChangeTick()
	a := s.paramA.Fetch(w, s.stateA, s.meta, changeTick).(A)
	b := s.paramB.Fetch(w, s.stateB, s.meta, changeTick).(B)
	c := s.paramC.Fetch(w, s.stateC, s.meta, changeTick).(C)
	d := s.paramD.Fetch(w, s.stateD, s.meta, changeTick).(D)
	s.fn(a, b, c, d)
	s.meta.LastChangeTick = changeTick
}

func (s *funcSystem4[A, B, C, D]) Apply(w *world.World) {
	for _, p := range []struct {
		param Param
		state any
	}{{s.paramA, s.stateA}, {s.paramB, s.stateB}, {s.paramC, s.stateC}, {s.paramD, s.stateD}} {
		if ap, ok := p.param.(Applier); ok {
			ap.Apply(p.state, w)
		}
	}
}

// Fn5 builds a System from a five-parameter function.
func Fn5[A, B, C, D, E any](name string, paramA, paramB, paramC, paramD, paramE Param, fn func(A, B, C, D, E)) System {
	return &funcSystem5[A, B, C, D, E]{name: name, paramA: paramA, paramB: paramB, paramC: paramC, paramD: paramD, paramE: paramE, fn: fn}
}

type funcSystem5[A, B, C, D, E any] struct {
	name                                   string
	paramA, paramB, paramC, paramD, paramE Param
	fn                                     func(A, B, C, D, E)

	meta                                   *Meta
	ticks                                  lastChangeTicks
	stateA, stateB, stateC, stateD, stateE any
}

func (s *funcSystem5[A, B, C, D, E]) Meta() *Meta { return s.meta }

func (s *funcSystem5[A, B, C, D, E]) Init(w *world.World) {
	s.meta = NewMeta(s.name)
	s.meta.LastChangeTick = s.ticks.init(w, s.meta.LastChangeTick)
	s.stateA = s.paramA.Init(w, s.meta)
	s.stateB = s.paramB.Init(w, s.meta)
	s.stateC = s.paramC.Init(w, s.meta)
	s.stateD = s.paramD.Init(w, s.meta)
	s.stateE = s.paramE.Init(w, s.meta)
}

func (s *funcSystem5[A, B, C, D, E]) Run(w *world.World) {
	changeTick := w.IncrementChangeTick()
	a := s.paramA.Fetch(w, s.stateA, s.meta, changeTick).(A)
	b := s.paramB.Fetch(w, s.stateB, s.meta, changeTick).(B)
	c := s.paramC.Fetch(w, s.stateC, s.meta, changeTick).(C)
	d := s.paramD.Fetch(w, s.stateD, s.meta, changeTick).(D)
	e := s.paramE.Fetch(w, s.stateE, s.meta, changeTick).(E)
	s.fn(a, b, c, d, e)
	s.meta.LastChangeTick = changeTick
}

func (s *funcSystem5[A, B, C, D, E]) Apply(w *world.World) {
	for _, p := range []struct {
		param Param
		state any
	}{{s.paramA, s.stateA}, {s.paramB, s.stateB}, {s.paramC, s.stateC}, {s.paramD, s.stateD}, {s.paramE, s.stateE}} {
		if ap, ok := p.param.(Applier); ok {
			ap.Apply(p.state, w)
		}
	}
}

// Fn6 builds a System from a six-parameter function.
func Fn6[A, B, C, D, E, F any](name string, paramA, paramB, paramC, paramD, paramE, paramF Param, fn func(A, B, C, D, E, F)) System {
	return &funcSystem6[A, B, C, D, E, F]{name: name, paramA: paramA, paramB: paramB, paramC: paramC, paramD: paramD, paramE: paramE, paramF: paramF, fn: fn}
}

type funcSystem6[A, B, C, D, E, F any] struct {
	name                                           string
	paramA, paramB, paramC, paramD, paramE, paramF Param
	fn                                             func(A, B, C, D, E, F)

	meta                                           *Meta
	ticks                                          lastChangeTicks
	stateA, stateB, stateC, stateD, stateE, stateF any
}

func (s *funcSystem6[A, B, C, D, E, F]) Meta() *Meta { return s.meta }

func (s *funcSystem6[A, B, C, D, E, F]) Init(w *world.World) {
	s.meta = NewMeta(s.name)
	s.meta.LastChangeTick = s.ticks.init(w, s.meta.LastChangeTick)
	s.stateA = s.paramA.Init(w, s.meta)
	s.stateB = s.paramB.Init(w, s.meta)
	s.stateC = s.paramC.Init(w, s.meta)
	s.stateD = s.paramD.Init(w, s.meta)
	s.stateE = s.paramE.Init(w, s.meta)
	s.stateF = s.paramF.Init(w, s.meta)
}

func (s *funcSystem6[A, B, C, D, E, F]) Run(w *world.World) {
	changeTick := w.IncrementChangeTick()
	a := s.paramA.Fetch(w, s.stateA, s.meta, changeTick).(A)
	b := s.paramB.Fetch(w, s.stateB, s.meta, changeTick).(B)
	c := s.paramC.Fetch(w, s.stateC, s.meta, changeTick).(C)
	d := s.paramD.Fetch(w, s.stateD, s.meta, changeTick).(D)
	e := s.paramE.Fetch(w, s.stateE, s.meta, changeTick).(E)
	f := s.paramF.Fetch(w, s.stateF, s.meta, changeTick).(F)
	s.fn(a, b, c, d, e, f)
	s.meta.LastChangeTick = changeTick
}

func (s *funcSystem6[A, B, C, D, E, F]) Apply(w *world.World) {
	for _, p := range []struct {
		param Param
		state any
	}{{s.paramA, s.stateA}, {s.paramB, s.stateB}, {s.paramC, s.stateC}, {s.paramD, s.stateD}, {s.paramE, s.stateE}, {s.paramF, s.stateF}} {
		if ap, ok := p.param.(Applier); ok {
			ap.Apply(p.state, w)
		}
	}
}
