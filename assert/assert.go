package assert

import (
	"cmp"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/simerror"
)

// IsTrue panics with a formatted error when ok is false. It guards invariants that can only
// break through a programming error, never through user input.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(simerror.New(message, args...))
	}
}

// InRange panics if v is outside [lo, hi].
func InRange[T cmp.Ordered](name string, v, lo, hi T) {
	IsTrue(v >= lo && v <= hi, "%s %v out of [%v, %v]", name, v, lo, hi)
}

// Finite panics if any component of vec is NaN or infinite.
func Finite(name string, vec mgl64.Vec3) {
	for _, f := range vec {
		IsTrue(!math.IsNaN(f) && !math.IsInf(f, 0), "non-finite %s: %v", name, vec)
	}
}
