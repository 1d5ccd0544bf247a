package schedule

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Label identifies a stage or a system. It is the Go rendering of the
// original's StageLabel/SystemLabel derive macro: instead of generating a
// distinct marker type per enum variant at compile time, a Label pairs the
// reflect.Type of whatever Go type names the label family (typically an
// int-based enum) with a variant number, and hashes the pair with xxhash so
// it can be used as a plain map key.
type Label struct {
	name    string
	variant uint32
	hash    uint64
}

// NewLabel builds a Label for variant within the label family T. Call it
// once per named constant, e.g.:
//
//	type stage int
//	const (
//	    physics stage = iota
//	    render
//	)
//	var Physics = schedule.NewLabel[stage]("physics", uint32(physics))
func NewLabel[T any](name string, variant uint32) Label {
	var zero T
	typ := reflect.TypeOf(zero)

	h := xxhash.New()
	if typ != nil {
		h.Write([]byte(typ.PkgPath()))
		h.Write([]byte(typ.Name()))
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], variant)
	h.Write(buf[:])

	return Label{name: name, variant: variant, hash: h.Sum64()}
}

// String returns the label's human-readable name, used in panic messages.
func (l Label) String() string { return l.name }

func (l Label) key() uint64 { return l.hash }

func labelPanic(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
