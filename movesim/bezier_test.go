package movesim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBezierEndpoints(t *testing.T) {
	start, end := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 40, 100}
	if p := Bezier(start, end, 30, 30, 0); !p.ApproxEqual(start) {
		t.Fatalf("expected curve to start at %v, got %v", start, p)
	}
	if p := Bezier(start, end, 30, 30, 1); !p.ApproxEqual(end) {
		t.Fatalf("expected curve to end at %v, got %v", end, p)
	}
}

func TestBezierArc(t *testing.T) {
	start, end := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 100}

	mid := Bezier(start, end, 30, 30, 0.5)
	// Both control points lifted by 30 raise the midpoint by three quarters of that.
	if !mgl64.FloatEqualThreshold(mid.Y(), 22.5, 1e-9) || !mgl64.FloatEqualThreshold(mid.Z(), 50, 1e-9) {
		t.Fatalf("unexpected midpoint %v", mid)
	}

	// A negative end curve dips the second half of the path below the straight line.
	low := Bezier(start, end, 10, -70, 0.75)
	if low.Y() >= 0 {
		t.Fatalf("expected asymmetric curve to dip, got %v", low)
	}
}
