package omath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDirectionVectors(t *testing.T) {
	if f := ForwardVector(0); !f.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Fatalf("expected yaw 0 to face +Z, got %v", f)
	}
	if l := LeftVector(0); !l.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Fatalf("expected left at yaw 0 to be +X, got %v", l)
	}
	for _, yaw := range []float64{-135, -30, 0, 45, 90, 170} {
		f, l := ForwardVector(yaw), LeftVector(yaw)
		if math.Abs(f.Dot(l)) > 1e-9 {
			t.Fatalf("forward and left not perpendicular at yaw %v", yaw)
		}
		if d := WrapYawDelta(YawOf(f) - yaw); math.Abs(d) > 1e-9 {
			t.Fatalf("YawOf(ForwardVector(%v)) off by %v", yaw, d)
		}
	}
	if d := DirectionVector(0, 90); !d.ApproxEqualThreshold(mgl64.Vec3{0, -1, 0}, 1e-9) {
		t.Fatalf("expected pitch 90 to look down, got %v", d)
	}
}

func TestAngleBetween(t *testing.T) {
	if a := AngleBetween(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}); math.Abs(a-90) > 1e-9 {
		t.Fatalf("expected 90, got %v", a)
	}
	if a := AngleBetween(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}); a != 0 {
		t.Fatalf("expected 0 for zero vector, got %v", a)
	}
}

func TestWrapYawDelta(t *testing.T) {
	cases := map[float64]float64{190: -170, -190: 170, 540: 180, 30: 30}
	for in, want := range cases {
		if got := WrapYawDelta(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("WrapYawDelta(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Count != 8 || s.Mean != 5 || s.StdDev != 2 || s.Max != 9 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if z := Summarize(nil); z != (Summary{}) {
		t.Fatalf("expected empty summary, got %+v", z)
	}
}
