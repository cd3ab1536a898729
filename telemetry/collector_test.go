package telemetry

import (
	"math"
	"testing"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0)

	c.RecordSpawnRequests(10)
	c.RecordAdmissions(8)
	c.RecordDrops(2)
	c.RecordExits(3)
	c.RecordReleases(3)
	for i := 0; i < 60; i++ {
		c.RecordFrame(1.0/60, 8, 1)
		c.RecordVisible(8)
	}

	if !c.ShouldFlush() {
		t.Fatalf("expected flush after %v sim seconds", c.SimTime())
	}

	stats := c.Flush()

	if stats.Frames != 60 {
		t.Errorf("frames = %d, want 60", stats.Frames)
	}
	if stats.SpawnRequests != 10 || stats.Admissions != 8 || stats.Drops != 2 {
		t.Errorf("lifecycle counters = %d/%d/%d, want 10/8/2",
			stats.SpawnRequests, stats.Admissions, stats.Drops)
	}
	if math.Abs(stats.DropRate-0.2) > 0.001 {
		t.Errorf("drop rate = %v, want 0.2", stats.DropRate)
	}
	if stats.Active != 8 || stats.Exiting != 1 {
		t.Errorf("population = %d/%d, want 8/1", stats.Active, stats.Exiting)
	}
	if math.Abs(stats.VisibleMean-8) > 0.001 {
		t.Errorf("visible mean = %v, want 8", stats.VisibleMean)
	}
}

func TestCollectorResetsBetweenWindows(t *testing.T) {
	c := NewCollector(1.0)

	c.RecordSpawnRequests(5)
	c.RecordFrame(2.0, 5, 0)
	first := c.Flush()
	if first.SpawnRequests != 5 {
		t.Fatalf("first window spawn_requests = %d, want 5", first.SpawnRequests)
	}

	c.RecordFrame(2.0, 3, 0)
	second := c.Flush()

	if second.SpawnRequests != 0 {
		t.Errorf("counters leaked across windows: spawn_requests = %d", second.SpawnRequests)
	}
	if second.WindowStart != first.WindowEnd {
		t.Errorf("window start = %v, want %v", second.WindowStart, first.WindowEnd)
	}
	if second.Active != 3 {
		t.Errorf("active = %d, want 3", second.Active)
	}
}

func TestCollectorNotReadyBeforeWindow(t *testing.T) {
	c := NewCollector(5.0)
	c.RecordFrame(1.0, 0, 0)

	if c.ShouldFlush() {
		t.Error("should not flush before window duration elapses")
	}
}
