package sim

import (
	"log/slog"

	"github.com/pthm-cable/hypercube/config"
)

// Manager owns a set of independent simulation instances addressed by
// opaque integer handles. Handles are monotonic and never reused, so a
// stale handle can never alias a newer instance. Operations on unknown
// handles are fail-soft no-ops.
//
// The manager is single-threaded by contract: the host drives it from
// one frame loop.
type Manager struct {
	cfg        *config.Config
	seed       int64
	instances  map[int]*Instance
	order      []int // handles in creation order, for deterministic iteration
	nextHandle int
}

// NewManager creates an empty manager. Per-instance RNGs derive from
// seed plus the instance handle, so runs with the same seed and call
// sequence reproduce exactly.
func NewManager(cfg *config.Config, seed int64) *Manager {
	return &Manager{
		cfg:       cfg,
		seed:      seed,
		instances: make(map[int]*Instance),
	}
}

// Create builds a new instance and returns its handle. Non-positive
// viewportSizePercent or fovDegrees fall back to configured defaults.
func (m *Manager) Create(viewportSizePercent, fovDegrees float32) int {
	handle := m.nextHandle
	m.nextHandle++

	m.instances[handle] = NewInstance(m.cfg, viewportSizePercent, fovDegrees, m.seed+int64(handle))
	m.order = append(m.order, handle)

	slog.Info("instance created",
		"handle", handle,
		"viewport_pct", viewportSizePercent,
		"fov_deg", fovDegrees,
		"capacity", m.cfg.Pool.Capacity)
	return handle
}

// Instance returns the instance for a handle, if it exists.
func (m *Manager) Instance(handle int) (*Instance, bool) {
	in, ok := m.instances[handle]
	return in, ok
}

// Count returns the number of live instances.
func (m *Manager) Count() int {
	return len(m.instances)
}

// Spawn queues count staggered spawn requests on an instance. Returns
// false (and does nothing) for an unknown handle.
func (m *Manager) Spawn(handle, count int) bool {
	in, ok := m.instances[handle]
	if !ok {
		slog.Warn("spawn on unknown handle", "handle", handle)
		return false
	}
	in.Spawn(count)
	return true
}

// ProcessPending advances spawn stagger timers on every instance by dt
// and returns the total number of objects admitted. Hosts that drive
// instances with Update do not need this; Update performs the same
// admission for its own instance.
func (m *Manager) ProcessPending(dt float32) int {
	admitted := 0
	for _, handle := range m.order {
		admitted += m.instances[handle].ProcessPending(dt)
	}
	return admitted
}

// Update advances one instance by dt seconds: admission, integration,
// then culling. Returns false for an unknown handle.
func (m *Manager) Update(handle int, dt float32) bool {
	in, ok := m.instances[handle]
	if !ok {
		slog.Warn("update on unknown handle", "handle", handle)
		return false
	}
	in.Update(dt)
	return true
}

// Visible exports an instance's current frame. Returns nil for an
// unknown handle; a known instance always yields a non-nil snapshot,
// empty when nothing is visible.
func (m *Manager) Visible(handle int) *FrameSnapshot {
	in, ok := m.instances[handle]
	if !ok {
		return nil
	}
	return in.Visible()
}
