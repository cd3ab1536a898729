package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hypercube/components"
	"github.com/pthm-cable/hypercube/space"
)

// cull runs the two-stage exit pipeline. Active objects that leave the
// volume or outlive their lifetime become Exiting; Exiting objects fade
// out and are released back to the pool once both opacity and scale
// fall under the release thresholds.
//
// Structural changes are deferred until the query is fully consumed;
// the world stays locked while a query is live.
func (in *Instance) cull(dt float32) {
	exits := 0
	in.toRelease = in.toRelease[:0]

	fadeRate := float32(in.cfg.Cull.FadeRate)
	releaseOpacity := float32(in.cfg.Cull.ReleaseOpacity)
	releaseScale := float32(in.cfg.Cull.ReleaseScale)

	query := in.filter.Query()
	for query.Next() {
		pos, _, _, aspect, _, _, life := query.Get()

		switch life.Phase {
		case components.PhaseActive:
			p := space.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
			if in.space.OutOfBounds(p) || life.Age >= life.MaxAge {
				life.Phase = components.PhaseExiting
				exits++
			}

		case components.PhaseExiting:
			aspect.Opacity -= fadeRate * dt
			if aspect.Opacity < 0 {
				aspect.Opacity = 0
			}
			// Fade is monotonic, so the opacity threshold is always
			// reached even when the object exits close to the observer
			// at a large projected scale.
			if aspect.Opacity <= releaseOpacity || aspect.Scale <= releaseScale {
				in.toRelease = append(in.toRelease, query.Entity())
			}
		}
	}

	for _, entity := range in.toRelease {
		in.release(entity)
	}

	if exits > 0 {
		in.collector.RecordExits(exits)
	}
	if n := len(in.toRelease); n > 0 {
		in.collector.RecordReleases(n)
	}
}

// release frees an object's slot. The entity is removed from the world;
// its ID is never reused.
func (in *Instance) release(entity ecs.Entity) {
	life := in.lifeMap.Get(entity)
	life.Phase = components.PhaseFree
	in.mapper.Remove(entity)
	in.liveCount--
}
