package hypercube

import (
	"math"
	"testing"
)

func TestTesseractTopology(t *testing.T) {
	tess := New(10, 2)

	if tess.VertexCount() != 16 {
		t.Errorf("vertex count = %d, want 16", tess.VertexCount())
	}

	edges := tess.Edges()
	if len(edges) != 64 {
		t.Fatalf("edge array len = %d, want 64 (32 edges)", len(edges))
	}

	// Every edge connects vertices differing in exactly one bit.
	for e := 0; e < 32; e++ {
		a, b := edges[2*e], edges[2*e+1]
		diff := a ^ b
		if diff == 0 || diff&(diff-1) != 0 {
			t.Errorf("edge %d connects %d and %d, not hamming-adjacent", e, a, b)
		}
	}
}

func TestRotationPreservesEdgeLengths(t *testing.T) {
	tess := New(10, 2)
	want := tess.EdgeLength(0)

	tess.SetRates(map[Plane]float64{
		PlaneXY: 0.7,
		PlaneXW: 1.3,
		PlaneZW: -0.5,
	})

	for step := 0; step < 100; step++ {
		tess.Rotate(0.05)
		for e := 0; e < 32; e++ {
			if got := tess.EdgeLength(e); math.Abs(got-want) > 1e-6 {
				t.Fatalf("step %d edge %d length = %v, want %v", step, e, got, want)
			}
		}
	}
}

func TestProjectedVertices(t *testing.T) {
	tess := New(10, 2)

	buf := tess.ProjectedVertices(nil)
	if len(buf) != 48 {
		t.Fatalf("projection len = %d, want 48", len(buf))
	}
	for i, v := range buf {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("non-finite projected coordinate at %d", i)
		}
	}

	// Vertices on the +w side project larger than their -w mirrors.
	// Vertex 8 is vertex 0 with the w bit set.
	r0 := math.Sqrt(float64(buf[0]*buf[0] + buf[1]*buf[1] + buf[2]*buf[2]))
	r8 := math.Sqrt(float64(buf[24]*buf[24] + buf[25]*buf[25] + buf[26]*buf[26]))
	if r8 <= r0 {
		t.Errorf("+w vertex radius %v should exceed -w radius %v", r8, r0)
	}

	// Buffer reuse keeps the backing array.
	buf2 := tess.ProjectedVertices(buf)
	if len(buf2) != 48 {
		t.Errorf("reused projection len = %d, want 48", len(buf2))
	}
	if &buf[0] != &buf2[0] {
		t.Error("projection reallocated despite sufficient capacity")
	}
}

func TestRotateMovesVertices(t *testing.T) {
	tess := New(10, 2)
	x0, y0, z0, w0 := tess.Vertex4(3)

	tess.Rotate(0.25)
	x1, y1, z1, w1 := tess.Vertex4(3)

	if x0 == x1 && y0 == y1 && z0 == z1 && w0 == w1 {
		t.Error("rotation left vertex unchanged")
	}
}
