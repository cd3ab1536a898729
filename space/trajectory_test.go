package space

import (
	"math/rand"
	"testing"
)

func TestFarPlanePosition(t *testing.T) {
	s := New()
	rng := rand.New(rand.NewSource(1))

	vw, vh := s.ViewportDimensions()
	maxX := vw * spawnExtentFactor
	maxY := vh * spawnExtentFactor

	for i := 0; i < 1000; i++ {
		p := FarPlanePosition(rng, &s)

		if absf(p.Z-s.MaxZ) > 1 {
			t.Fatalf("spawn z = %v, want within 1 of %v", p.Z, s.MaxZ)
		}
		if absf(p.X) > maxX || absf(p.Y) > maxY {
			t.Fatalf("spawn lateral (%v, %v) outside widened viewport (%v, %v)",
				p.X, p.Y, maxX, maxY)
		}
	}
}

func TestTrajectoryVelocityPointsInward(t *testing.T) {
	s := New()
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		start := FarPlanePosition(rng, &s)
		v := TrajectoryVelocity(rng, &s, start, 20, 40)

		speed := v.Len()
		if speed < 20-0.001 || speed > 40+0.001 {
			t.Fatalf("speed = %v, want in [20, 40]", speed)
		}

		// Spawned on the far plane, so motion must carry the object
		// toward the observer.
		if v.Z >= 0 {
			t.Fatalf("vz = %v, want negative", v.Z)
		}

		dir := v.Normalize()
		lateral := Sqrt(dir.X*dir.X + dir.Y*dir.Y)
		if lateral > maxLateralFraction+0.001 {
			t.Fatalf("lateral fraction = %v, want <= %v", lateral, maxLateralFraction)
		}
	}
}

func TestClampLateral(t *testing.T) {
	dir := Vec3{1, 0, -0.2}.Normalize()
	clamped := ClampLateral(dir, 0.6)

	lateral := Sqrt(clamped.X*clamped.X + clamped.Y*clamped.Y)
	if lateral > 0.6+0.001 {
		t.Errorf("lateral fraction = %v, want <= 0.6", lateral)
	}
	if l := clamped.Len(); absf(l-1) > 0.001 {
		t.Errorf("clamped direction length = %v, want 1", l)
	}

	// Already-inward directions pass through unchanged.
	inward := Vec3{0.1, 0.1, -0.9}.Normalize()
	if got := ClampLateral(inward, 0.6); got != inward {
		t.Errorf("ClampLateral changed an in-range direction: %v -> %v", got, inward)
	}
}
