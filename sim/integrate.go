package sim

import (
	"github.com/pthm-cable/hypercube/components"
	"github.com/pthm-cable/hypercube/space"
)

const (
	tau = 2 * 3.14159265

	// Tail length ramps up over the object's first seconds.
	tailRampTime = 3.0

	// Approach acceleration boost kicks in inside this distance from
	// the observer and maxes out at +50%.
	approachBoostRange = 50.0
	approachBoostMax   = 0.5

	// Opacity never drops below this floor while the object is Active.
	minActiveOpacity = 0.3

	scaleFloor = 0.01
)

// integrate advances all live objects by dt using forward Euler.
// Pending objects are skipped; Exiting objects keep moving but their
// opacity is owned by the culler's fade-out.
func (in *Instance) integrate(dt float32) {
	if dt <= 0 {
		return
	}
	sp := &in.space

	query := in.filter.Query()
	for query.Next() {
		pos, vel, rot, aspect, tint, tail, life := query.Get()
		if life.Phase == components.PhasePending || life.Phase == components.PhaseFree {
			continue
		}

		life.Age += dt

		in.integrateVelocity(pos, vel, dt)

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		pos.Z += vel.Z * dt

		in.integrateRotation(rot, dt)

		// Size eases toward its target, then projected scale follows
		// distance.
		ease := aspect.GrowthRate * dt
		if ease > 1 {
			ease = 1
		}
		aspect.Size += (aspect.TargetSize - aspect.Size) * ease

		p := space.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
		sf := sp.ScaleFactor(p)
		scale := sf * space.Sqrt(sf) * aspect.Size
		if scale < scaleFloor {
			scale = scaleFloor
		}
		aspect.Scale = scale

		if life.Phase == components.PhaseActive {
			aspect.Opacity = in.activeOpacity(sp, p, life.Age)
		}

		// Seeded oscillators keep pulsation deterministic per object.
		pulse := 0.8 + 0.2*space.Sin(2*(life.Age+life.Seed*tau))
		tint.Glow = tint.BaseGlow * pulse

		ramp := space.Clamp01(life.Age / tailRampTime)
		tail.Length = tail.MaxLength * ramp * (0.9 + 0.1*space.Sin(2*(life.Age+life.Seed*tau)))
	}
}

// integrateVelocity applies forward acceleration with an approach boost
// near the observer, caps speed, clamps lateral drift and enforces the
// minimum scene-crossing time on the depth axis.
func (in *Instance) integrateVelocity(pos *components.Position, vel *components.Velocity, dt float32) {
	sp := &in.space
	cfg := in.cfg

	speed := space.Vec3{X: vel.X, Y: vel.Y, Z: vel.Z}.Len()
	if speed <= 0 {
		return
	}

	boost := float32(1)
	dist := space.Vec3{
		X: pos.X - sp.Observer.X,
		Y: pos.Y - sp.Observer.Y,
		Z: pos.Z - sp.Observer.Z,
	}.Len()
	if dist < approachBoostRange {
		boost = 1 + (1-dist/approachBoostRange)*approachBoostMax
	}

	newSpeed := speed + vel.Accel*boost*dt
	if newSpeed > vel.MaxSpeed {
		newSpeed = vel.MaxSpeed
	}
	ratio := newSpeed / speed
	vel.X *= ratio
	vel.Y *= ratio
	vel.Z *= ratio

	maxLateral := float32(cfg.Integration.MaxLateralSpeed)
	lateral := space.Sqrt(vel.X*vel.X + vel.Y*vel.Y)
	if lateral > maxLateral {
		s := maxLateral / lateral
		vel.X *= s
		vel.Y *= s
	}

	// Keep the depth traversal slower than the minimum visibility
	// window so objects never streak through in a frame or two.
	if minVis := float32(cfg.Integration.MinVisibilityTime); minVis > 0 {
		depth := sp.MaxZ - sp.Observer.Z
		limit := depth / minVis
		if vel.Z < -limit {
			vel.Z = -limit
		}
	}
}

// integrateRotation applies the per-axis tumble. Axis weights are fixed
// so every object tumbles with the same character at its own rate.
func (in *Instance) integrateRotation(rot *components.Rotation, dt float32) {
	delta := space.QuatFromEuler(
		rot.Rate*dt,
		rot.Rate*0.7*dt,
		rot.Rate*0.3*dt,
	)
	q := space.Quat{X: rot.X, Y: rot.Y, Z: rot.Z, W: rot.W}.Mul(delta).Normalize()
	rot.X, rot.Y, rot.Z, rot.W = q.X, q.Y, q.Z, q.W
}

// activeOpacity combines distance transparency with the spawn fade-in.
func (in *Instance) activeOpacity(sp *space.Space, p space.Vec3, age float32) float32 {
	op := sp.TransparencyFactor(p)
	if op < minActiveOpacity {
		op = minActiveOpacity
	}
	if fadeIn := float32(in.cfg.Integration.FadeInTime); fadeIn > 0 && age < fadeIn {
		op *= age / fadeIn
	}
	return op
}
