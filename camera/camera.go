// Package camera provides orbit control for the scene viewport.
package camera

import "math"

// Orbit is a spherical-coordinate camera around a fixed target. Yaw
// and pitch are radians; Distance is the dolly radius.
type Orbit struct {
	Yaw, Pitch float32
	Distance   float32

	TargetX, TargetY, TargetZ float32

	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	homeYaw, homePitch, homeDistance float32
}

// New creates an orbit camera at the given distance, looking at the
// origin down +Z (yaw pi points the camera from -Z, matching the
// simulation observer).
func New(distance float32) *Orbit {
	o := &Orbit{
		Yaw:         math.Pi,
		Distance:    distance,
		MinDistance: distance * 0.2,
		MaxDistance: distance * 4,
		MinPitch:    -1.4,
		MaxPitch:    1.4,
	}
	o.homeYaw, o.homePitch, o.homeDistance = o.Yaw, o.Pitch, o.Distance
	return o
}

// Rotate applies yaw and pitch deltas, clamping pitch away from the
// poles so the up vector never flips.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw += dYaw
	for o.Yaw > math.Pi {
		o.Yaw -= 2 * math.Pi
	}
	for o.Yaw < -math.Pi {
		o.Yaw += 2 * math.Pi
	}

	o.Pitch += dPitch
	if o.Pitch < o.MinPitch {
		o.Pitch = o.MinPitch
	}
	if o.Pitch > o.MaxPitch {
		o.Pitch = o.MaxPitch
	}
}

// Dolly moves the camera along its view ray; positive delta moves in.
func (o *Orbit) Dolly(delta float32) {
	o.Distance -= delta
	if o.Distance < o.MinDistance {
		o.Distance = o.MinDistance
	}
	if o.Distance > o.MaxDistance {
		o.Distance = o.MaxDistance
	}
}

// Position returns the camera's world position.
func (o *Orbit) Position() (x, y, z float32) {
	cp := float32(math.Cos(float64(o.Pitch)))
	sp := float32(math.Sin(float64(o.Pitch)))
	cy := float32(math.Cos(float64(o.Yaw)))
	sy := float32(math.Sin(float64(o.Yaw)))

	x = o.TargetX + o.Distance*cp*sy
	y = o.TargetY + o.Distance*sp
	z = o.TargetZ + o.Distance*cp*cy
	return x, y, z
}

// Reset restores the home orientation and distance.
func (o *Orbit) Reset() {
	o.Yaw = o.homeYaw
	o.Pitch = o.homePitch
	o.Distance = o.homeDistance
}
