// Package components defines ECS components for space objects.
package components

// Phase is a space object's lifecycle state.
type Phase uint8

const (
	// PhaseFree marks a slot with no live object. The slot's id is invalid
	// until the spawner reassigns it.
	PhaseFree Phase = iota
	// PhasePending marks an allocated slot whose object has not activated yet.
	PhasePending
	// PhaseActive marks an object that is integrated and visible-eligible.
	PhaseActive
	// PhaseExiting marks an object past the visibility bound, fading out.
	PhaseExiting
)

// String returns the phase name for logs and test failures.
func (p Phase) String() string {
	switch p {
	case PhaseFree:
		return "free"
	case PhasePending:
		return "pending"
	case PhaseActive:
		return "active"
	case PhaseExiting:
		return "exiting"
	}
	return "unknown"
}

// Position is an object's position in space units.
type Position struct {
	X, Y, Z float32
}

// Velocity is an object's velocity plus the kinematic limits applied
// during integration.
type Velocity struct {
	X, Y, Z  float32
	Accel    float32 // speed gain per second
	MaxSpeed float32 // speed ceiling
}

// Rotation is an object's orientation as a quaternion (xyzw) and its
// base spin rate.
type Rotation struct {
	X, Y, Z, W float32
	Rate       float32 // radians per second around the tumbling axes
}

// Aspect holds the size/visibility attributes the renderer consumes.
type Aspect struct {
	Size       float32 // current size, percent of the space extent
	TargetSize float32 // size the object grows toward
	GrowthRate float32 // size units per second
	Scale      float32 // distance-adjusted render scale
	Opacity    float32 // 0..1
}

// Tint is the object's base color and glow.
type Tint struct {
	R, G, B  float32
	Glow     float32 // current glow intensity
	BaseGlow float32 // glow before pulsation
}

// Tail describes the comet trail.
type Tail struct {
	Length    float32
	MaxLength float32
}

// Life tracks identity and lifecycle for one object.
// ID is stable across Pending, Active and Exiting; Seed desynchronizes
// the object's pulsation from its neighbors and is fixed at spawn.
type Life struct {
	ID     uint32
	Phase  Phase
	Age    float32 // seconds since activation
	MaxAge float32 // seconds before forced exit
	Seed   float32 // 0..1
}
