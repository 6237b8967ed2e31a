package world

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// clipEpsilon is the distance under which penetrations are treated as touching.
const clipEpsilon = 1e-7

type clipResult struct {
	clippedVelocity       mgl64.Vec3
	depenetratingVelocity mgl64.Vec3
}

// clipCollide clips the movement of the moving box against a stationary one. With oneWay set, a
// box already penetrating the stationary one is allowed to move out freely instead of being
// pushed out along the axis of least penetration.
func clipCollide(stationary, moving cube.BBox, vel mgl64.Vec3, oneWay bool) mgl64.Vec3 {
	result := doClipCollide(stationary, moving, vel)
	if oneWay {
		return result.clippedVelocity
	}
	return result.depenetratingVelocity
}

func doClipCollide(stationary, moving cube.BBox, velocity mgl64.Vec3) (result clipResult) {
	result.clippedVelocity = velocity
	result.depenetratingVelocity = velocity

	if hasZeroVolume(stationary) {
		return
	}

	axisPenetrations := [3]float64{}
	axisPenetrationsSigned := [3]float64{}
	normalDirs := [3]float64{}
	separatingAxes, separatingAxis := 0, 0

	for i := range 3 {
		minPenetration := moving.Max()[i] - stationary.Min()[i]
		maxPenetration := stationary.Max()[i] - moving.Min()[i]
		if math.Abs(minPenetration) <= clipEpsilon {
			minPenetration = 0
		}
		if math.Abs(maxPenetration) <= clipEpsilon {
			maxPenetration = 0
		}

		minPositive := math.Max(0, minPenetration)
		maxPositive := math.Max(0, maxPenetration)

		switch {
		case minPositive == 0:
			axisPenetrationsSigned[i] = minPenetration
			normalDirs[i] = -1
			separatingAxes++
			separatingAxis = i
		case maxPositive == 0:
			axisPenetrationsSigned[i] = maxPenetration
			normalDirs[i] = 1
			separatingAxes++
			separatingAxis = i
		case minPositive < maxPositive:
			axisPenetrations[i] = minPositive
			axisPenetrationsSigned[i] = minPositive
			normalDirs[i] = -1
		default:
			axisPenetrations[i] = maxPositive
			axisPenetrationsSigned[i] = maxPositive
			normalDirs[i] = 1
		}

		// Separated on more than one axis, so no movement along a single axis can collide.
		if separatingAxes > 1 {
			return
		}
	}

	if separatingAxes == 0 {
		bestAxis := 0
		for i := 1; i < 3; i++ {
			if axisPenetrations[i] < axisPenetrations[bestAxis] {
				bestAxis = i
			}
		}
		desired := axisPenetrations[bestAxis] * normalDirs[bestAxis]
		if desired > 0 {
			result.depenetratingVelocity[bestAxis] = math.Max(desired, velocity[bestAxis])
		} else {
			result.depenetratingVelocity[bestAxis] = math.Min(desired, velocity[bestAxis])
		}
		return
	}

	sweptPenetration := axisPenetrationsSigned[separatingAxis] - (normalDirs[separatingAxis] * velocity[separatingAxis])
	if sweptPenetration <= 0 {
		return
	}

	resolved := axisPenetrationsSigned[separatingAxis] * normalDirs[separatingAxis]
	result.clippedVelocity[separatingAxis] = resolved
	result.depenetratingVelocity[separatingAxis] = resolved
	return
}

func hasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}
