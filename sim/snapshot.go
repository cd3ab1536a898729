package sim

import (
	"github.com/pthm-cable/hypercube/components"
)

// FrameSnapshot is the flat-array view of one frame, laid out for
// direct upload to instanced renderers: index i in IDs corresponds to
// positions [3i,3i+3), rotations [4i,4i+4), colors [3i,3i+3) and index
// i in every per-object array.
//
// The backing arrays are owned by the Instance and reused; a snapshot
// is valid until the second Visible call after the one that produced
// it.
type FrameSnapshot struct {
	IDs             []uint32
	Positions       []float32 // xyz triplets
	Scales          []float32
	Rotations       []float32 // xyzw quadruplets
	Opacities       []float32
	Colors          []float32 // rgb triplets, 0..1
	TailLengths     []float32
	GlowIntensities []float32
}

// Len returns the number of objects in the snapshot.
func (s *FrameSnapshot) Len() int {
	return len(s.IDs)
}

func (s *FrameSnapshot) reset() {
	s.IDs = s.IDs[:0]
	s.Positions = s.Positions[:0]
	s.Scales = s.Scales[:0]
	s.Rotations = s.Rotations[:0]
	s.Opacities = s.Opacities[:0]
	s.Colors = s.Colors[:0]
	s.TailLengths = s.TailLengths[:0]
	s.GlowIntensities = s.GlowIntensities[:0]
}

// Visible exports the current frame as flat parallel arrays covering
// every Active and Exiting object. The returned snapshot is never nil;
// an empty scene yields a snapshot with Len() == 0.
func (in *Instance) Visible() *FrameSnapshot {
	snap := &in.snapshots[in.snapFlip]
	in.snapFlip = 1 - in.snapFlip
	snap.reset()

	query := in.filter.Query()
	for query.Next() {
		pos, _, rot, aspect, tint, tail, life := query.Get()
		if life.Phase != components.PhaseActive && life.Phase != components.PhaseExiting {
			continue
		}

		snap.IDs = append(snap.IDs, life.ID)
		snap.Positions = append(snap.Positions, pos.X, pos.Y, pos.Z)
		snap.Scales = append(snap.Scales, aspect.Scale)
		snap.Rotations = append(snap.Rotations, rot.X, rot.Y, rot.Z, rot.W)
		snap.Opacities = append(snap.Opacities, aspect.Opacity)
		snap.Colors = append(snap.Colors, tint.R, tint.G, tint.B)
		snap.TailLengths = append(snap.TailLengths, tail.Length)
		snap.GlowIntensities = append(snap.GlowIntensities, tint.Glow)
	}

	in.collector.RecordVisible(snap.Len())
	return snap
}
