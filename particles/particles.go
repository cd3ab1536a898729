// Package particles implements the ambient dust field: a fixed-size set
// of slow drifting motes recycled in place, exported as flat arrays the
// same way the comet snapshot is.
package particles

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/hypercube/config"
)

type particle struct {
	x, y, z    float32
	vx, vy, vz float32
	age        float32
	lifetime   float32
}

// Field is a fixed-count ambient particle field. Positions are relative
// to the field center; the host places it in the scene.
type Field struct {
	cfg  *config.Config
	rng  *rand.Rand
	pool []particle

	positions []float32
	alphas    []float32
}

// NewField creates a field with the configured particle count, fully
// populated with randomized ages so the field does not pulse in lockstep.
func NewField(cfg *config.Config, seed int64) *Field {
	f := &Field{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(seed)),
		pool: make([]particle, cfg.Particles.Count),
	}
	for i := range f.pool {
		f.respawn(&f.pool[i])
		f.pool[i].age = f.rng.Float32() * f.pool[i].lifetime
	}
	return f
}

// respawn reinitializes a particle in place: a uniform position inside
// the spawn sphere, a gentle random drift and a fresh lifetime.
func (f *Field) respawn(p *particle) {
	radius := float32(f.cfg.Particles.SpawnRadius)

	// Rejection-sample the unit ball for a uniform density.
	var x, y, z float32
	for {
		x = f.rng.Float32()*2 - 1
		y = f.rng.Float32()*2 - 1
		z = f.rng.Float32()*2 - 1
		if x*x+y*y+z*z <= 1 {
			break
		}
	}
	p.x, p.y, p.z = x*radius, y*radius, z*radius

	drift := radius * 0.05
	p.vx = (f.rng.Float32()*2 - 1) * drift
	p.vy = (f.rng.Float32()*2 - 1) * drift
	p.vz = (f.rng.Float32()*2 - 1) * drift

	minLife := float32(f.cfg.Particles.MinLifetime)
	maxLife := float32(f.cfg.Particles.MaxLifetime)
	p.lifetime = minLife + f.rng.Float32()*(maxLife-minLife)
	p.age = 0
}

// Count returns the number of particles; constant for a field's life.
func (f *Field) Count() int {
	return len(f.pool)
}

// Update advances every particle by dt, recycling expired ones in
// place. Negative or non-finite dt is ignored.
func (f *Field) Update(dt float32) {
	if !(dt > 0) || math.IsInf(float64(dt), 0) {
		return
	}
	for i := range f.pool {
		p := &f.pool[i]
		p.age += dt
		if p.age >= p.lifetime {
			f.respawn(p)
			continue
		}
		p.x += p.vx * dt
		p.y += p.vy * dt
		p.z += p.vz * dt
	}
}

// Positions returns the particle positions as xyz triplets. The backing
// buffer is reused across calls.
func (f *Field) Positions() []float32 {
	f.positions = f.positions[:0]
	for i := range f.pool {
		p := &f.pool[i]
		f.positions = append(f.positions, p.x, p.y, p.z)
	}
	return f.positions
}

// Alphas returns per-particle opacity faded in over the first quarter
// of life and out over the last quarter. The backing buffer is reused.
func (f *Field) Alphas() []float32 {
	f.alphas = f.alphas[:0]
	for i := range f.pool {
		p := &f.pool[i]
		frac := p.age / p.lifetime

		alpha := float32(1)
		switch {
		case frac < 0.25:
			alpha = frac / 0.25
		case frac > 0.75:
			alpha = (1 - frac) / 0.25
		}
		if alpha < 0 {
			alpha = 0
		}
		f.alphas = append(f.alphas, alpha)
	}
	return f.alphas
}
