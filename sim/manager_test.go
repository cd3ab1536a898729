package sim

import "testing"

func TestManagerUnknownHandleIsNoOp(t *testing.T) {
	cfg := testConfig(t)
	m := NewManager(cfg, 1)

	if m.Spawn(9999, 5) {
		t.Error("spawn on unknown handle returned true")
	}
	if m.Update(9999, frameDT) {
		t.Error("update on unknown handle returned true")
	}
	if snap := m.Visible(9999); snap != nil {
		t.Error("visible on unknown handle returned a snapshot")
	}
	if m.Count() != 0 {
		t.Errorf("instance count = %d, want 0", m.Count())
	}
}

func TestManagerHandlesNeverReused(t *testing.T) {
	cfg := testConfig(t)
	m := NewManager(cfg, 1)

	h1 := m.Create(0, 0)
	h2 := m.Create(30, 75)
	h3 := m.Create(0, 0)

	if h1 == h2 || h2 == h3 || h1 == h3 {
		t.Fatalf("duplicate handles: %d %d %d", h1, h2, h3)
	}
	if h2 <= h1 || h3 <= h2 {
		t.Errorf("handles not monotonic: %d %d %d", h1, h2, h3)
	}
}

func TestManagerInstancesAreIndependent(t *testing.T) {
	cfg := testConfig(t)
	m := NewManager(cfg, 1)

	h1 := m.Create(0, 0)
	h2 := m.Create(0, 0)

	if !m.Spawn(h1, 5) {
		t.Fatal("spawn on live handle failed")
	}
	sawSpawned := false
	for frame := 0; frame < 600; frame++ {
		m.Update(h1, frameDT)
		m.Update(h2, frameDT)
		if m.Visible(h1).Len() > 0 {
			sawSpawned = true
		}
		if n := m.Visible(h2).Len(); n != 0 {
			t.Fatalf("untouched instance has %d visible objects, want 0", n)
		}
	}

	if !sawSpawned {
		t.Error("spawned instance never showed a visible object")
	}
}

func TestManagerEmptySnapshotNotNil(t *testing.T) {
	cfg := testConfig(t)
	m := NewManager(cfg, 1)

	h := m.Create(0, 0)
	snap := m.Visible(h)
	if snap == nil {
		t.Fatal("known handle returned nil snapshot")
	}
	if snap.Len() != 0 {
		t.Errorf("empty instance snapshot len = %d, want 0", snap.Len())
	}
}

func TestManagerProcessPendingSpansInstances(t *testing.T) {
	cfg := testConfig(t)
	m := NewManager(cfg, 1)

	h1 := m.Create(0, 0)
	h2 := m.Create(0, 0)
	m.Spawn(h1, 3)
	m.Spawn(h2, 3)

	total := 0
	for i := 0; i < 100 && total < 6; i++ {
		total += m.ProcessPending(0.5)
	}

	if total != 6 {
		t.Errorf("total admitted across instances = %d, want 6", total)
	}
}
