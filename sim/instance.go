// Package sim implements the space-object simulation core: per-instance
// object pools, staggered spawning, frame integration, visibility culling
// and flat-array snapshot export.
package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hypercube/components"
	"github.com/pthm-cable/hypercube/config"
	"github.com/pthm-cable/hypercube/space"
	"github.com/pthm-cable/hypercube/telemetry"
)

// cometMapper bundles the component set every space object carries.
type cometMapper = ecs.Map7[
	components.Position,
	components.Velocity,
	components.Rotation,
	components.Aspect,
	components.Tint,
	components.Tail,
	components.Life,
]

type cometFilter = ecs.Filter7[
	components.Position,
	components.Velocity,
	components.Rotation,
	components.Aspect,
	components.Tint,
	components.Tail,
	components.Life,
]

// Instance is one independent simulation universe. All access is
// single-threaded and frame-driven: the host calls Update once per
// rendered frame and consumes the snapshot before the next call.
type Instance struct {
	world *ecs.World
	rng   *rand.Rand
	space space.Space
	cfg   *config.Config

	mapper  *cometMapper
	filter  *cometFilter
	lifeMap *ecs.Map1[components.Life]

	// Pool accounting: liveCount covers Pending, Active and Exiting
	// objects; capacity - liveCount slots are free.
	capacity  int
	liveCount int

	nextID  uint32
	pending []pendingSpawn

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	// Snapshot double buffer. The buffer handed out by Visible stays
	// intact until the second export after it, which softens the blast
	// radius of hosts that read a stale snapshot.
	snapshots [2]FrameSnapshot
	snapFlip  int

	// Scratch for deferred structural changes; reused across frames.
	toRelease []ecs.Entity
}

// NewInstance creates a simulation universe. Non-positive
// viewportSizePercent or fovDegrees fall back to the configured defaults.
func NewInstance(cfg *config.Config, viewportSizePercent, fovDegrees float32, seed int64) *Instance {
	world := ecs.NewWorld()

	sp := newSpace(cfg, viewportSizePercent, fovDegrees)

	in := &Instance{
		world:     world,
		rng:       rand.New(rand.NewSource(seed)),
		space:     sp,
		cfg:       cfg,
		capacity:  cfg.Pool.Capacity,
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		mapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Aspect,
			components.Tint,
			components.Tail,
			components.Life,
		](world),
		filter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Aspect,
			components.Tint,
			components.Tail,
			components.Life,
		](world),
		lifeMap: ecs.NewMap1[components.Life](world),
	}
	return in
}

// newSpace builds the viewing volume from config, with optional
// per-instance viewport and FOV overrides.
func newSpace(cfg *config.Config, viewportSizePercent, fovDegrees float32) space.Space {
	sp := space.New()
	half := float32(cfg.Space.HalfExtent)
	sp.MinX, sp.MaxX = -half, half
	sp.MinY, sp.MaxY = -half, half
	sp.MinZ, sp.MaxZ = -half, half
	sp.Observer = space.Vec3{Z: float32(cfg.Space.ObserverZ)}
	sp.ViewportSizePercent = float32(cfg.Space.ViewportSizePercent)
	sp.FieldOfView = cfg.Derived.FOVRadians

	if viewportSizePercent > 0 {
		sp.ViewportSizePercent = viewportSizePercent
	}
	if fovDegrees > 0 {
		sp.FieldOfView = fovDegrees * 3.14159265 / 180
	}
	return sp
}

// Space returns the instance's viewing volume.
func (in *Instance) Space() *space.Space {
	return &in.space
}

// SetPerf attaches a performance collector. The host owns the frame
// boundaries (StartFrame/EndFrame); Update reports its phases into it.
func (in *Instance) SetPerf(p *telemetry.PerfCollector) {
	in.perf = p
}

// Collector returns the instance's telemetry collector.
func (in *Instance) Collector() *telemetry.Collector {
	return in.collector
}

// Capacity returns the pool's slot capacity.
func (in *Instance) Capacity() int {
	return in.capacity
}

// LiveCount returns the number of non-free slots (Pending, Active or
// Exiting objects).
func (in *Instance) LiveCount() int {
	return in.liveCount
}

// FreeSlots returns the number of free pool slots. LiveCount and
// FreeSlots always sum to Capacity.
func (in *Instance) FreeSlots() int {
	return in.capacity - in.liveCount
}

// PendingCount returns the number of queued spawn requests not yet
// admitted into the pool.
func (in *Instance) PendingCount() int {
	return len(in.pending)
}

// Update advances the instance by dt seconds: pending-spawn admission,
// then integration, then culling. A just-admitted object is integrated
// and visible in the same frame. dt is clamped to [0, max_dt]; NaN and
// Inf are treated as zero so they can never reach stored state.
func (in *Instance) Update(dt float32) {
	dt = in.clampDT(dt)

	if in.perf != nil {
		in.perf.StartPhase(telemetry.PhaseAdmission)
	}
	in.ProcessPending(dt)

	if in.perf != nil {
		in.perf.StartPhase(telemetry.PhaseIntegrate)
	}
	in.integrate(dt)

	if in.perf != nil {
		in.perf.StartPhase(telemetry.PhaseCull)
	}
	in.cull(dt)

	active, exiting := in.counts()
	in.collector.RecordFrame(dt, active, exiting)
}

func (in *Instance) clampDT(dt float32) float32 {
	if !space.IsFinite(dt) || dt < 0 {
		return 0
	}
	if maxDT := in.cfg.Derived.MaxDT32; dt > maxDT {
		return maxDT
	}
	return dt
}

// counts tallies live objects by phase for telemetry.
func (in *Instance) counts() (active, exiting int) {
	query := in.filter.Query()
	for query.Next() {
		_, _, _, _, _, _, life := query.Get()
		switch life.Phase {
		case components.PhaseActive:
			active++
		case components.PhaseExiting:
			exiting++
		}
	}
	return active, exiting
}
