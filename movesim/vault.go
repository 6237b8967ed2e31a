package movesim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/omath"
)

// vaultPlan is a classified obstacle ready to be vaulted.
type vaultPlan struct {
	kind   VaultKind
	target mgl64.Vec3
	speed  float64
	// extra is added to the velocity on entry.
	extra mgl64.Vec3
}

// tryVault classifies the obstacle in front of the character and starts a vault over or onto it.
// Nothing changes if no vault is possible.
func (c *tickContext) tryVault() bool {
	s, t := c.state, &c.tuning.Vault
	if s.WallRun() != WallNone || (c.grounded && !c.input.Forward) {
		return false
	}
	speed := s.Velocity.Len()
	if speed < speedEpsilon {
		return false
	}

	rayDistance := math.Max(speed*t.ProbeSpeedScale, t.MinProbeDistance)
	fwd := omath.ForwardVector(s.Facing.Yaw)
	front := s.Position.Add(fwd.Mul(rayDistance)).Add(omath.Up().Mul(t.FrontBoxHeight))
	if c.boxClear(columnBox(t.FrontBoxRadius, -t.FrontBoxRadius, t.FrontBoxRadius), front) {
		return false
	}

	plan, ok := c.classifyVault(fwd, rayDistance)
	if !ok {
		return false
	}
	c.startVault(plan)
	return true
}

// classifyVault picks the vault kind in priority order. Once a kind's selection check
// passes, failing its remaining checks fails the whole vault.
func (c *tickContext) classifyVault(fwd mgl64.Vec3, rayDistance float64) (vaultPlan, bool) {
	s, t := c.state, &c.tuning.Vault
	if s.Climbing() {
		above := s.Position.Add(fwd.Mul(t.HighForward))
		if c.boxClear(columnBox(t.BoxRadius, t.HighClearBottom, t.HighClearTop), above) {
			return c.planOntoHigh(above)
		}
	}

	distBehind := rayDistance*t.BehindScale + t.BehindOffset
	behind := s.Position.Add(fwd.Mul(distBehind))
	if c.shouldVaultOver(fwd, behind, distBehind) {
		return c.planOver(fwd, behind, rayDistance)
	}
	if !s.Climbing() && !c.falling() {
		return c.planOnto(s.Position.Add(fwd.Mul(rayDistance)))
	}
	return vaultPlan{}, false
}

func (c *tickContext) falling() bool {
	return !c.grounded && c.state.Velocity.Y() < 0
}

// shouldVaultOver returns true if the landing space behind the obstacle is free and no geometry
// separates it from the character.
func (c *tickContext) shouldVaultOver(fwd, behind mgl64.Vec3, distBehind float64) bool {
	s, t := c.state, &c.tuning.Vault
	if !c.boxClear(columnBox(t.BoxRadius, 0, t.BehindBoxTop), behind) {
		return false
	}
	from := s.Position.Add(omath.Up().Mul(t.FailsafeHeight))
	return !c.castRay(from, from.Add(fwd.Mul(distBehind))).Hit
}

func (c *tickContext) planOver(fwd, behind mgl64.Vec3, rayDistance float64) (vaultPlan, bool) {
	s, t := c.state, &c.tuning.Vault
	if !c.boxClear(columnBox(t.BoxRadius, t.OverClearBottom, t.OverClearTop), s.Position.Add(fwd.Mul(rayDistance))) {
		return vaultPlan{}, false
	}

	plan := vaultPlan{kind: VaultOver, speed: t.OverSpeed}
	mid := behind.Add(omath.Up().Mul(t.BehindBoxTop * 0.5))
	if hit := c.castRay(mid.Add(omath.Up().Mul(t.OverTraceTop)), mid.Sub(omath.Up().Mul(t.OverTraceBottom))); hit.Hit && !hit.StartSolid {
		plan.target = hit.Position
		return plan, true
	}
	// Nothing to land on, so fall past the obstacle.
	plan.target = mid.Sub(omath.Up().Mul(t.OverFallDrop))
	plan.extra = omath.Up().Mul(-t.OverFallSpeed)
	return plan, true
}

func (c *tickContext) planOnto(at mgl64.Vec3) (vaultPlan, bool) {
	t := &c.tuning.Vault
	if !c.boxClear(columnBox(t.BoxRadius, t.OntoClearBottom, t.OntoClearTop), at) {
		return vaultPlan{}, false
	}
	ground, ok := c.traceGround(at.Add(omath.Up().Mul((t.OntoClearBottom + t.OntoClearTop) * 0.5)))
	if !ok {
		return vaultPlan{}, false
	}
	return vaultPlan{
		kind:   VaultOnto,
		target: ground.Add(omath.Up().Mul(t.TargetLift)),
		speed:  math.Max(c.state.Velocity.Len(), t.OntoMinSpeed),
	}, true
}

func (c *tickContext) planOntoHigh(above mgl64.Vec3) (vaultPlan, bool) {
	t := &c.tuning.Vault
	ground, ok := c.traceGround(above.Add(omath.Up().Mul((t.HighClearBottom + t.HighClearTop) * 0.5)))
	if !ok {
		return vaultPlan{}, false
	}
	return vaultPlan{
		kind:   VaultOntoHigh,
		target: ground.Add(omath.Up().Mul(t.TargetLift)),
		speed:  t.OntoHighSpeed,
	}, true
}

// traceGround finds footing below a clearance box centred at mid.
func (c *tickContext) traceGround(mid mgl64.Vec3) (mgl64.Vec3, bool) {
	t := &c.tuning.Vault
	hit := c.castRay(mid.Add(omath.Up().Mul(t.GroundTraceTop)), mid.Sub(omath.Up().Mul(t.GroundTraceDrop)))
	if !hit.Hit || hit.StartSolid {
		return mgl64.Vec3{}, false
	}
	return hit.Position, true
}

// startVault commits to plan.
func (c *tickContext) startVault(plan vaultPlan) {
	s, t := c.state, &c.tuning.Vault
	s.HasParkouredSinceJump = true

	speed := s.HorizontalSpeed()
	startCurve, endCurve := t.CurveHeight, t.CurveHeight
	if plan.kind == VaultOntoHigh {
		speed = 0
		startCurve, endCurve = t.HighStartCurve, t.HighEndCurve
	}
	dir := omath.SafeNormalize(omath.Horizontal(plan.target.Sub(s.Position)))
	s.Velocity = dir.Mul(speed).Add(plan.extra)

	c.setMode(Vaulting{
		Kind:       plan.kind,
		Start:      s.Position,
		Target:     plan.target,
		Speed:      plan.speed,
		StartCurve: startCurve,
		EndCurve:   endCurve,
	})
	s.Events.Add(EventVaultStarted)
	c.sim.debugf("tick %d: vault %v from %v to %v", s.Tick, plan.kind, s.Position, plan.target)
}

// progressVault moves the character along the vault curve. The position is eased towards the curve
// rather than snapped onto it.
func (c *tickContext) progressVault() {
	s, t := c.state, &c.tuning.Vault
	v := s.Mode.(Vaulting)

	v.Progress = math.Min(1, v.Progress+v.Speed/t.ProgressScale*c.dt)
	point := Bezier(v.Start, v.Target, v.StartCurve, v.EndCurve, v.Progress)
	s.Position = omath.LerpVec(s.Position, point, omath.ClampFloat(c.dt*t.EaseRate, 0, 1))

	if v.Progress >= 1 {
		c.setMode(Airborne{})
		return
	}
	s.Mode = v
}

func (c *tickContext) castRay(from, to mgl64.Vec3) Hit {
	if c.sim.World == nil {
		return Hit{}
	}
	return c.sim.World.CastRay(from, to)
}
