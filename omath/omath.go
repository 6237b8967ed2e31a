package omath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the threshold below which lengths and speeds are treated as zero.
const Epsilon = 1e-6

var up = mgl64.Vec3{0, 1, 0}

// Up returns the world up vector.
func Up() mgl64.Vec3 {
	return up
}

// DirectionVector returns the unit view direction for the given yaw and pitch in degrees.
func DirectionVector(yaw, pitch float64) mgl64.Vec3 {
	yawRad, pitchRad := mgl64.DegToRad(yaw), mgl64.DegToRad(pitch)
	m := math.Cos(pitchRad)

	return mgl64.Vec3{
		-m * math.Sin(yawRad),
		-math.Sin(pitchRad),
		m * math.Cos(yawRad),
	}
}

// ForwardVector returns the horizontal forward direction for yaw in degrees.
func ForwardVector(yaw float64) mgl64.Vec3 {
	return DirectionVector(yaw, 0)
}

// LeftVector returns the horizontal left direction for yaw in degrees.
func LeftVector(yaw float64) mgl64.Vec3 {
	yawRad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{math.Cos(yawRad), 0, math.Sin(yawRad)}
}

// YawOf returns the yaw in degrees a horizontal direction faces.
func YawOf(dir mgl64.Vec3) float64 {
	return mgl64.RadToDeg(math.Atan2(-dir.X(), dir.Z()))
}

// WrapYawDelta wraps a yaw difference into [-180, 180].
func WrapYawDelta(delta float64) float64 {
	delta = math.Mod(delta, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return delta
}

// Horizontal returns vec with its vertical component removed.
func Horizontal(vec mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{vec.X(), 0, vec.Z()}
}

// HorizontalLen returns the horizontal length of vec.
func HorizontalLen(vec mgl64.Vec3) float64 {
	return math.Hypot(vec.X(), vec.Z())
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec mgl64.Vec3) float64 {
	return vec.X()*vec.X() + vec.Z()*vec.Z()
}

// SafeNormalize returns the unit vector of vec, or the zero vector if vec is too short.
func SafeNormalize(vec mgl64.Vec3) mgl64.Vec3 {
	l := vec.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return vec.Mul(1 / l)
}

// AngleBetween returns the angle between a and b in degrees. It is zero if either is too short.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return 0
	}
	return mgl64.RadToDeg(math.Acos(ClampFloat(a.Dot(b)/(la*lb), -1, 1)))
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// Lerp interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates from a to b by t.
func LerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
