package movesim

import "github.com/go-gl/mathgl/mgl64"

// Bezier evaluates the cubic Bézier curve from start to end at t. The inner control points sit
// startCurve above start and endCurve above end, so asymmetric heights give asymmetric arcs.
func Bezier(start, end mgl64.Vec3, startCurve, endCurve, t float64) mgl64.Vec3 {
	cp1 := start.Add(mgl64.Vec3{0, startCurve, 0})
	cp2 := end.Add(mgl64.Vec3{0, endCurve, 0})
	return mgl64.CubicBezierCurve3D(t, start, cp1, cp2, end)
}
