// Package telemetry accumulates simulation events into time windows and
// exports them as structured logs and CSV.
package telemetry

// Collector accumulates lifecycle events within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec float64

	simTime     float64
	windowStart float64
	frames      int

	// Event counters for the current window
	spawnRequests int
	admissions    int
	drops         int
	exits         int
	releases      int

	// Per-frame samples for distribution stats
	visibleSamples []float64
	dtSamples      []float64

	// Population at the most recent frame
	lastActive  int
	lastExiting int
}

// NewCollector creates a collector with the given window duration in
// simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 5
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame records one completed frame: its clamped dt and the
// live population at frame end.
func (c *Collector) RecordFrame(dt float32, active, exiting int) {
	c.simTime += float64(dt)
	c.frames++
	c.dtSamples = append(c.dtSamples, float64(dt))
	c.lastActive = active
	c.lastExiting = exiting
}

// RecordSpawnRequests records queued spawn requests.
func (c *Collector) RecordSpawnRequests(n int) {
	c.spawnRequests += n
}

// RecordAdmissions records requests admitted into the pool.
func (c *Collector) RecordAdmissions(n int) {
	c.admissions += n
}

// RecordDrops records requests dropped because the pool was exhausted.
func (c *Collector) RecordDrops(n int) {
	c.drops += n
}

// RecordExits records Active objects that started exiting.
func (c *Collector) RecordExits(n int) {
	c.exits += n
}

// RecordReleases records Exiting objects released back to the pool.
func (c *Collector) RecordReleases(n int) {
	c.releases += n
}

// RecordVisible records the size of one exported snapshot.
func (c *Collector) RecordVisible(n int) {
	c.visibleSamples = append(c.visibleSamples, float64(n))
}

// SimTime returns accumulated simulation time in seconds.
func (c *Collector) SimTime() float64 {
	return c.simTime
}

// ShouldFlush reports whether the current window has run its duration.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStart >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush() WindowStats {
	var dropRate float64
	if c.spawnRequests > 0 {
		dropRate = float64(c.drops) / float64(c.spawnRequests)
	}

	visMean, visP10, visP50, visP90 := ComputeSampleStats(c.visibleSamples)
	dtMean, _, _, _ := ComputeSampleStats(c.dtSamples)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   c.simTime,
		Frames:      c.frames,

		Active:  c.lastActive,
		Exiting: c.lastExiting,

		SpawnRequests: c.spawnRequests,
		Admissions:    c.admissions,
		Drops:         c.drops,
		Exits:         c.exits,
		Releases:      c.releases,
		DropRate:      dropRate,

		VisibleMean: visMean,
		VisibleP10:  visP10,
		VisibleP50:  visP50,
		VisibleP90:  visP90,

		DTMean: dtMean,
	}

	c.windowStart = c.simTime
	c.frames = 0
	c.spawnRequests = 0
	c.admissions = 0
	c.drops = 0
	c.exits = 0
	c.releases = 0
	c.visibleSamples = c.visibleSamples[:0]
	c.dtSamples = c.dtSamples[:0]

	return stats
}
