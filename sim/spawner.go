package sim

import (
	"github.com/pthm-cable/hypercube/components"
	"github.com/pthm-cable/hypercube/space"
)

// pendingSpawn is a queued intent to admit one object once its stagger
// delay has elapsed. Requests hold no pool slot; the slot is claimed at
// admission time.
type pendingSpawn struct {
	delay float32
}

// Spawn queues count spawn requests with staggered delays. Requests are
// grouped (1 to max_group per group) with a random gap between groups,
// so objects enter the scene in small bursts rather than all at once.
// Admission happens during Update / ProcessPending; requests that find
// the pool exhausted at that point are dropped.
func (in *Instance) Spawn(count int) {
	in.spawnStaggered(count, 0)
}

// MaintainPopulation tops the scene back up when the live population
// (plus already-queued requests) drops below the configured minimum.
// For hosts that want a continuously populated scene; the core Update
// never spawns on its own. Returns the number of requests queued.
func (in *Instance) MaintainPopulation() int {
	minPop := in.cfg.Spawn.MinPopulation
	if minPop <= 0 {
		return 0
	}
	deficit := minPop - (in.liveCount + len(in.pending))
	if deficit <= 0 {
		return 0
	}
	if maxBatch := in.cfg.Spawn.ReplenishMax; maxBatch > 0 && deficit > maxBatch {
		deficit = maxBatch
	}
	base := in.randRange(float32(in.cfg.Spawn.ReplenishMinDelay), float32(in.cfg.Spawn.ReplenishMaxDelay))
	in.spawnStaggered(deficit, base)
	return deficit
}

func (in *Instance) spawnStaggered(count int, baseDelay float32) {
	if count <= 0 {
		return
	}
	in.collector.RecordSpawnRequests(count)

	delay := baseDelay
	remaining := count
	for remaining > 0 {
		group := 1 + in.rng.Intn(in.cfg.Spawn.MaxGroup)
		if group > remaining {
			group = remaining
		}
		for i := 0; i < group; i++ {
			in.pending = append(in.pending, pendingSpawn{delay: delay})
		}
		remaining -= group
		delay += in.randRange(float32(in.cfg.Spawn.MinGroupGap), float32(in.cfg.Spawn.MaxGroupGap))
	}
}

// ProcessPending advances queued spawn delays by dt and admits every
// request whose delay has elapsed. Returns the number of objects
// admitted. Requests that elapse while the pool is exhausted are
// dropped, not retried.
func (in *Instance) ProcessPending(dt float32) int {
	if len(in.pending) == 0 {
		return 0
	}

	admitted := 0
	kept := in.pending[:0]
	for i := range in.pending {
		in.pending[i].delay -= dt
		if in.pending[i].delay > 0 {
			kept = append(kept, in.pending[i])
			continue
		}
		if in.liveCount >= in.capacity {
			in.collector.RecordDrops(1)
			continue
		}
		in.admit()
		admitted++
	}
	in.pending = kept

	if admitted > 0 {
		in.collector.RecordAdmissions(admitted)
	}
	return admitted
}

// admit claims a pool slot and materializes one object on the far
// plane. The object passes through Pending transiently and is Active by
// the time admit returns, so the same frame's integration moves it.
func (in *Instance) admit() {
	id := in.nextID
	in.nextID++

	sp := &in.space
	start := space.FarPlanePosition(in.rng, sp)
	velDir := space.TrajectoryVelocity(in.rng, sp,
		start,
		float32(in.cfg.Spawn.MinSpeed), float32(in.cfg.Spawn.MaxSpeed))
	speed := velDir.Len()

	pos := components.Position{X: start.X, Y: start.Y, Z: start.Z}
	vel := components.Velocity{
		X:        velDir.X,
		Y:        velDir.Y,
		Z:        velDir.Z,
		Accel:    in.randRange(float32(in.cfg.Comet.AccelMin), float32(in.cfg.Comet.AccelMax)),
		MaxSpeed: speed * float32(in.cfg.Comet.MaxSpeedFactor),
	}

	q := space.QuatFromEuler(
		in.rng.Float32()*2*3.14159265,
		in.rng.Float32()*2*3.14159265,
		in.rng.Float32()*2*3.14159265,
	)
	rot := components.Rotation{
		X: q.X, Y: q.Y, Z: q.Z, W: q.W,
		Rate: float32(in.cfg.Integration.RotSpeed),
	}

	aspect := components.Aspect{
		Size:       0.01,
		TargetSize: in.randRange(float32(in.cfg.Comet.MinSizePercent), float32(in.cfg.Comet.MaxSizePercent)) / 100,
		GrowthRate: in.randRange(float32(in.cfg.Comet.GrowthRateMin), float32(in.cfg.Comet.GrowthRateMax)),
		Scale:      0,
		Opacity:    0,
	}

	color := in.cfg.Derived.Palette[int(id)%len(in.cfg.Derived.Palette)]
	baseGlow := in.randRange(float32(in.cfg.Comet.GlowMin), float32(in.cfg.Comet.GlowMax))
	tint := components.Tint{
		R: color[0], G: color[1], B: color[2],
		Glow:     baseGlow,
		BaseGlow: baseGlow,
	}

	tail := components.Tail{
		Length:    0,
		MaxLength: in.randRange(float32(in.cfg.Comet.TailMin), float32(in.cfg.Comet.TailMax)),
	}

	life := components.Life{
		ID:     id,
		Phase:  components.PhasePending,
		Age:    0,
		MaxAge: float32(in.cfg.Comet.MaxLifetime),
		Seed:   in.rng.Float32(),
	}

	entity := in.mapper.NewEntity(&pos, &vel, &rot, &aspect, &tint, &tail, &life)
	in.liveCount++

	in.lifeMap.Get(entity).Phase = components.PhaseActive
}

func (in *Instance) randRange(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + in.rng.Float32()*(hi-lo)
}
