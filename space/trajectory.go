package space

import "math/rand"

// Spawn placement constants. Positions are generated on the far plane
// with a bias toward the center so most trajectories cross the viewport.
const (
	// spawnExtentFactor widens the far-plane spawn zone past the viewport
	// so some comets enter the frame laterally.
	spawnExtentFactor = 1.5

	// centralBias is the fraction of spawns restricted to the central
	// region of the spawn zone.
	centralBias = 0.7

	// centralExtent scales the spawn zone for center-biased spawns.
	centralExtent = 0.7

	// maxLateralFraction caps the lateral (xy) share of a unit direction
	// so comets travel mostly depth-wise.
	maxLateralFraction = 0.6
)

// FarPlanePosition returns a randomized spawn position on the far plane.
// 70% of spawns land in the central region of the plane, the rest spread
// toward the edges for trajectory variety; z varies by one unit around
// the plane for a natural staggering of arrival depth.
func FarPlanePosition(rng *rand.Rand, s *Space) Vec3 {
	vw, vh := s.ViewportDimensions()
	maxWidth := vw * spawnExtentFactor
	maxHeight := vh * spawnExtentFactor

	var x, y float32
	if rng.Float32() < centralBias {
		x = (rng.Float32()*2 - 1) * maxWidth * centralExtent
		y = (rng.Float32()*2 - 1) * maxHeight * centralExtent
	} else {
		x = (rng.Float32()*2 - 1) * maxWidth
		y = (rng.Float32()*2 - 1) * maxHeight
	}

	z := s.MaxZ + (rng.Float32()*2 - 1)
	return Vec3{x, y, z}
}

// TrajectoryVelocity returns a spawn velocity carrying the object from
// start through the interior of the space. The aim point is random but
// biased inward (never straight at the observer), direction noise is
// added for variety, the lateral share of the direction is capped, and
// speed is drawn from [minSpeed, maxSpeed).
func TrajectoryVelocity(rng *rand.Rand, s *Space, start Vec3, minSpeed, maxSpeed float32) Vec3 {
	target := Vec3{
		X: (rng.Float32()*2 - 1) * 50,
		Y: (rng.Float32()*2 - 1) * 50,
		Z: -rng.Float32() * 80,
	}
	dir := target.Sub(start)

	// Direction noise, halved on z to preserve inward motion.
	noise := float32(0.4) + rng.Float32()*0.2
	l := dir.Len()
	dir.X += (rng.Float32() - 0.5) * l * noise
	dir.Y += (rng.Float32() - 0.5) * l * noise
	dir.Z += (rng.Float32() - 0.5) * l * noise * 0.5

	dir = dir.Normalize()
	dir = ClampLateral(dir, maxLateralFraction)

	speed := minSpeed + rng.Float32()*(maxSpeed-minSpeed)
	return dir.Scale(speed)
}

// ClampLateral limits the xy share of a unit direction to maxFrac,
// reassigning the remainder to z while keeping the vector normalized.
func ClampLateral(dir Vec3, maxFrac float32) Vec3 {
	lateralSq := dir.X*dir.X + dir.Y*dir.Y
	if lateralSq <= maxFrac*maxFrac {
		return dir
	}

	scale := maxFrac / sqrtf(lateralSq)
	dir.X *= scale
	dir.Y *= scale

	zSign := float32(1)
	if dir.Z < 0 {
		zSign = -1
	}
	dir.Z = sqrtf(1-(dir.X*dir.X+dir.Y*dir.Y)) * zSign
	return dir
}
