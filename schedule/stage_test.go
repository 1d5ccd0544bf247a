package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/system"
	"github.com/murklake/ecsframe/world"
)

type orderLabel int

const (
	labelA orderLabel = iota
	labelB
	labelC
)

var (
	lblA = NewLabel[orderLabel]("A", uint32(labelA))
	lblB = NewLabel[orderLabel]("B", uint32(labelB))
	lblC = NewLabel[orderLabel]("C", uint32(labelC))
)

func TestSequentialStage_RunsInBeforeAfterOrder(t *testing.T) {
	w := world.New()
	world.InsertResource(w, 0)

	var order []string
	sysA := system.Fn1("a", system.ResParam[int]{}, func(n system.Res[int]) {
		order = append(order, "a")
	})
	sysB := system.Fn1("b", system.ResParam[int]{}, func(n system.Res[int]) {
		order = append(order, "b")
	})

	stage := Sequential()
	stage.AddSystem(NewDescriptor(sysB).Label(lblB))
	stage.AddSystem(NewDescriptor(sysA).Label(lblA).Before(lblB))

	stage.Run(w)

	assert.Equal(t, []string{"a", "b"}, order)
}

func TestSequentialStage_AfterOrdering(t *testing.T) {
	w := world.New()

	var order []string
	sysA := system.Fn1("a", system.LocalParam[int]{}, func(*int) { order = append(order, "a") })
	sysB := system.Fn1("b", system.LocalParam[int]{}, func(*int) { order = append(order, "b") })

	stage := Sequential()
	stage.AddSystem(NewDescriptor(sysB).Label(lblB).After(lblA))
	stage.AddSystem(NewDescriptor(sysA).Label(lblA))

	stage.Run(w)

	assert.Equal(t, []string{"a", "b"}, order)
}

func TestSequentialStage_PanicsOnDependencyCycle(t *testing.T) {
	w := world.New()

	sysA := system.Fn1("a", system.LocalParam[int]{}, func(*int) {})
	sysB := system.Fn1("b", system.LocalParam[int]{}, func(*int) {})

	stage := Sequential()
	stage.AddSystem(NewDescriptor(sysA).Label(lblA).Before(lblB))
	stage.AddSystem(NewDescriptor(sysB).Label(lblB).Before(lblA))

	assert.Panics(t, func() { stage.Run(w) })
}

func TestParallelStage_IndependentReadersBothRun(t *testing.T) {
	w := world.New()
	world.InsertResource(w, 3)

	var aSeen, bSeen int
	readerA := system.Fn1("reader-a", system.ResParam[int]{}, func(n system.Res[int]) { aSeen = n.Get() })
	readerB := system.Fn1("reader-b", system.ResParam[int]{}, func(n system.Res[int]) { bSeen = n.Get() })

	stage := Parallel()
	stage.AddSystem(AsDescriptor(readerA))
	stage.AddSystem(AsDescriptor(readerB))

	stage.Run(w)

	assert.Equal(t, 3, aSeen)
	assert.Equal(t, 3, bSeen)
}

func TestParallelStage_AccessConflictSerializes(t *testing.T) {
	w := world.New()
	world.InsertResource(w, 0)

	var seq []int
	writer1 := system.Fn1("writer1", system.ResMutParam[int]{}, func(n change.Mut[int]) {
		seq = append(seq, 1)
	})
	writer2 := system.Fn1("writer2", system.ResMutParam[int]{}, func(n change.Mut[int]) {
		seq = append(seq, 2)
	})

	stage := Parallel()
	stage.AddSystem(AsDescriptor(writer1))
	stage.AddSystem(AsDescriptor(writer2))

	stage.Run(w)

	assert.ElementsMatch(t, []int{1, 2}, seq)
}
