// Package space defines the bounded viewing volume space objects move
// through: its extents, the observer, and the visibility geometry derived
// from viewport size and field of view.
package space

import "math"

// Visibility geometry constants. The frustum check is deliberately
// forgiving near its edges so objects never pop at the margin.
const (
	// FarPlaneSlack keeps objects within this distance of the far plane
	// visible regardless of projection, so freshly spawned comets are
	// never culled on their first frame.
	FarPlaneSlack = 1.0

	// NearAlwaysVisible marks everything closer to the observer than this
	// as visible, independent of viewing angle.
	NearAlwaysVisible = 5.0

	// ExitDepth is how far behind the observer an object may travel
	// before it stops counting as visible.
	ExitDepth = 30.0

	// MaxViewDistance normalizes distance for the scale and transparency
	// falloff curves.
	MaxViewDistance = 200.0
)

// Space is one simulation universe's viewing volume.
type Space struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32

	// ViewportSizePercent is the fraction of the space the viewport
	// spans, in percent.
	ViewportSizePercent float32

	// Observer is the camera position the host renders from.
	Observer Vec3

	// FieldOfView in radians.
	FieldOfView float32
}

// New returns the default space: a 200-unit cube centered on the origin,
// a 25% viewport, a 60 degree field of view, and the observer pulled back
// on -Z to match the host scene camera.
func New() Space {
	return Space{
		MinX: -100, MaxX: 100,
		MinY: -100, MaxY: 100,
		MinZ: -100, MaxZ: 100,
		ViewportSizePercent: 25.0,
		Observer:            Vec3{0, 0, -25},
		FieldOfView:         math.Pi / 3,
	}
}

// Dimensions returns the extent of the space along each axis.
func (s *Space) Dimensions() Vec3 {
	return Vec3{s.MaxX - s.MinX, s.MaxY - s.MinY, s.MaxZ - s.MinZ}
}

// ViewportDimensions returns the viewport width and height in space units.
func (s *Space) ViewportDimensions() (w, h float32) {
	dims := s.Dimensions()
	factor := s.ViewportSizePercent / 100.0
	return dims.X * factor, dims.Y * factor
}

// InViewFrustum reports whether a point counts as visible. The volume is
// a depth range plus a projected lateral extent: points on the far plane
// and points near the observer are always in, points more than ExitDepth
// behind the observer are always out, and everything else is projected
// onto the view plane and tested against the (widened) viewport extents.
func (s *Space) InViewFrustum(p Vec3) bool {
	toPoint := p.Sub(s.Observer)

	if absf(p.Z-s.MaxZ) < FarPlaneSlack {
		return true
	}
	if toPoint.Z < -ExitDepth {
		return false
	}
	if toPoint.Len() < NearAlwaysVisible {
		return true
	}

	vw, vh := s.ViewportDimensions()

	// Widen the visible area by 50% so edge objects stay in frame.
	halfWidth := vw * 0.75
	halfHeight := vh * 0.75

	zDist := absf(toPoint.Z)
	if zDist < 0.01 {
		zDist = 0.01
	}

	// Close objects subtend more of the view; widen further for them.
	widen := 1 + (1/zDist)*5
	projX := toPoint.X / zDist * s.MaxZ
	projY := toPoint.Y / zDist * s.MaxZ

	return absf(projX) <= halfWidth*widen && absf(projY) <= halfHeight*widen
}

// ScaleFactor returns the distance-based render scale multiplier for a
// point: near 1 close to the observer, falling off linearly to 0.2 at
// MaxViewDistance, with a mild boost inside 10 units so passing objects
// read as close without ballooning.
func (s *Space) ScaleFactor(p Vec3) float32 {
	distance := p.Sub(s.Observer).Len()

	normalized := distance / MaxViewDistance
	if normalized > 1 {
		normalized = 1
	}
	scale := 1 - normalized*0.8

	if distance < 10 {
		closeBoost := 1.1 + (1-distance/10)*0.3
		return scale * closeBoost
	}
	return scale
}

// TransparencyFactor returns the distance-based opacity for a point:
// reduced inside 10 units (so near misses don't flash a full-opacity
// sprite across the screen), full at mid range, fading to zero past 75%
// of MaxViewDistance.
func (s *Space) TransparencyFactor(p Vec3) float32 {
	distance := p.Sub(s.Observer).Len()

	if distance < 10 {
		return 0.4 + (distance/10)*0.4
	}

	normalized := distance / MaxViewDistance
	if normalized > 1 {
		normalized = 1
	}
	if normalized < 0.75 {
		return 1
	}

	fade := (1 - normalized) * 4
	return Clamp01(fade)
}

// OutOfBounds reports whether a point has left the volume entirely:
// past the lateral extents or deeper than ExitDepth behind the observer.
// This is the Active to Exiting trigger, looser than InViewFrustum so an
// object fades out past the frame edge instead of vanishing at it.
func (s *Space) OutOfBounds(p Vec3) bool {
	dims := s.Dimensions()
	if p.Z-s.Observer.Z < -ExitDepth {
		return true
	}
	return absf(p.X) > dims.X || absf(p.Y) > dims.Y
}
