package movesim

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/runnervision/freerun/internal"
	"github.com/runnervision/freerun/simerror"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/zeebo/xxh3"
)

// snapshotVersion is written in front of every encoded state.
const snapshotVersion uint8 = 1

// EncodeState serializes every field of the state that influences later ticks. Floats are written
// bit for bit, so a decoded state replays identically.
func EncodeState(s *MovementState) []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	version := snapshotVersion
	w := protocol.NewWriter(buf, 0)
	w.Uint8(&version)

	state := *s
	marshalState(w, &state)
	return bytes.Clone(buf.Bytes())
}

// DecodeState restores a state encoded by EncodeState.
func DecodeState(b []byte) (state MovementState, err error) {
	buf := bytes.NewBuffer(b)
	defer func() {
		if r := recover(); r != nil {
			state, err = MovementState{}, simerror.New("decode movement state: %v", r)
		}
	}()

	var version uint8
	r := protocol.NewReader(buf, 0, false)
	r.Uint8(&version)
	if version != snapshotVersion {
		return MovementState{}, simerror.New("decode movement state: unsupported version %d", version)
	}
	marshalState(r, &state)
	if buf.Len() != 0 {
		return MovementState{}, simerror.New("decode movement state: %d trailing bytes", buf.Len())
	}
	return state, nil
}

// Checksum returns a hash of the encoded state, used to compare predicted and authoritative
// states cheaply.
func Checksum(s *MovementState) uint64 {
	return xxh3.Hash(EncodeState(s))
}

func marshalState(io protocol.IO, s *MovementState) {
	vec3(io, &s.Position)
	vec3(io, &s.LastPosition)
	vec3(io, &s.Velocity)
	vec3(io, &s.LastVelocity)
	float(io, &s.Facing.Pitch)
	float(io, &s.Facing.Yaw)
	io.UUID(&s.Ground)
	marshalMode(io, &s.Mode)

	float(io, &s.CurrentMaxSpeed)
	enum(io, &s.Dashing)
	io.Bool(&s.Ducking)
	io.Bool(&s.Sliding)
	io.Bool(&s.Noclip)
	io.Bool(&s.UnlimitedSprint)

	float(io, &s.TimeSinceDash)
	float(io, &s.TimeSinceClimbActivity)
	float(io, &s.TimeSinceWallRunStart)
	float(io, &s.TimeSinceSlideStopped)
	float(io, &s.TimeSinceFootstep)
	float(io, &s.TimeSinceFootstepRelease)

	charges := int32(s.ClimbCharges)
	io.Int32(&charges)
	s.ClimbCharges = int(charges)

	enum(io, &s.LastWallRunSide)
	io.Bool(&s.HasParkouredSinceJump)
	io.Bool(&s.HasWallRunSinceJump)
	vec3(io, &s.ForwardDirection)
	float(io, &s.SnapYaw)
	io.Uint64(&s.Tick)

	events := uint32(s.Events)
	io.Uint32(&events)
	s.Events = EventSet(events)
}

func marshalMode(io protocol.IO, m *Mode) {
	kind := uint8(KindOf(*m))
	io.Uint8(&kind)

	switch ModeKind(kind) {
	case ModeAirborne:
		*m = Airborne{}
	case ModeGrounded:
		*m = Grounded{}
	case ModeWallRunning:
		w, _ := (*m).(WallRunning)
		enum(io, &w.Side)
		*m = w
	case ModeVaulting:
		v, _ := (*m).(Vaulting)
		enum(io, &v.Kind)
		vec3(io, &v.Start)
		vec3(io, &v.Target)
		float(io, &v.Progress)
		float(io, &v.Speed)
		float(io, &v.StartCurve)
		float(io, &v.EndCurve)
		*m = v
	case ModeClimbing:
		c, _ := (*m).(Climbing)
		vec3(io, &c.Target)
		vec3(io, &c.WallNormal)
		float(io, &c.EntrySpeed)
		*m = c
	default:
		panic(fmt.Errorf("unknown mode kind %d", kind))
	}
}

// float writes or reads x as its IEEE 754 bits.
func float(io protocol.IO, x *float64) {
	bits := math.Float64bits(*x)
	io.Uint64(&bits)
	*x = math.Float64frombits(bits)
}

func vec3(io protocol.IO, v *mgl64.Vec3) {
	for i := range v {
		float(io, &v[i])
	}
}

func enum[T ~uint8](io protocol.IO, x *T) {
	v := uint8(*x)
	io.Uint8(&v)
	*x = T(v)
}
