// Package hypercube models the rotating 4D tesseract centerpiece: 16
// vertices rotated through the six 4D planes and stereographically
// projected into the 3D scene.
package hypercube

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Plane identifies one of the six independent rotation planes in 4D.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneXW
	PlaneYZ
	PlaneYW
	PlaneZW
	numPlanes
)

// Tesseract is a 4-cube with per-plane rotation state. Vertex i has
// coordinate signs given by the bits of i, so two vertices share an
// edge exactly when their indices differ in one bit.
type Tesseract struct {
	size    float64
	wCamera float64

	angles [numPlanes]float64
	rates  [numPlanes]float64

	// base holds the unrotated vertices, one column per vertex.
	base *mat.Dense
	// rotated is base transformed by the current rotation.
	rotated *mat.Dense
	rot     *mat.Dense
	tmp     *mat.Dense

	edges []uint32
}

// New creates a tesseract with half-extent size and stereographic
// camera distance wCamera on the w axis.
func New(size, wCamera float64) *Tesseract {
	t := &Tesseract{
		size:    size,
		wCamera: wCamera,
		base:    mat.NewDense(4, 16, nil),
		rotated: mat.NewDense(4, 16, nil),
		rot:     mat.NewDense(4, 4, nil),
		tmp:     mat.NewDense(4, 4, nil),
	}

	for v := 0; v < 16; v++ {
		for axis := 0; axis < 4; axis++ {
			sign := -1.0
			if v&(1<<axis) != 0 {
				sign = 1.0
			}
			t.base.Set(axis, v, sign*size)
		}
	}

	for v := uint32(0); v < 16; v++ {
		for axis := uint32(0); axis < 4; axis++ {
			other := v ^ (1 << axis)
			if other > v {
				t.edges = append(t.edges, v, other)
			}
		}
	}

	// Default rates echo the classic double rotation: one fast plane
	// through w, one slow spatial plane.
	t.rates[PlaneXW] = 1
	t.rates[PlaneYZ] = 0.4

	t.recompute()
	return t
}

// SetRates sets the angular rate for each rotation plane.
func (t *Tesseract) SetRates(rates map[Plane]float64) {
	for p, r := range rates {
		if p >= 0 && p < numPlanes {
			t.rates[p] = r
		}
	}
}

// Rotate advances every plane angle by its rate times dt and recomputes
// the rotated vertices.
func (t *Tesseract) Rotate(dt float64) {
	for p := Plane(0); p < numPlanes; p++ {
		t.angles[p] += t.rates[p] * dt
	}
	t.recompute()
}

// planeAxes returns the two axes a plane rotates through.
func planeAxes(p Plane) (int, int) {
	switch p {
	case PlaneXY:
		return 0, 1
	case PlaneXZ:
		return 0, 2
	case PlaneXW:
		return 0, 3
	case PlaneYZ:
		return 1, 2
	case PlaneYW:
		return 1, 3
	default:
		return 2, 3
	}
}

func (t *Tesseract) recompute() {
	// Compose the per-plane rotations into one 4x4 matrix.
	rot := t.rot
	rot.Copy(identity4())
	for p := Plane(0); p < numPlanes; p++ {
		if t.angles[p] == 0 {
			continue
		}
		t.tmp.Mul(planeRotation(p, t.angles[p]), rot)
		rot.Copy(t.tmp)
	}

	t.rotated.Mul(rot, t.base)
}

func identity4() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// planeRotation builds the 4x4 rotation by angle in plane p.
func planeRotation(p Plane, angle float64) *mat.Dense {
	a, b := planeAxes(p)
	m := identity4()

	c := math.Cos(angle)
	s := math.Sin(angle)
	m.Set(a, a, c)
	m.Set(a, b, -s)
	m.Set(b, a, s)
	m.Set(b, b, c)
	return m
}

// VertexCount returns the number of tesseract vertices.
func (t *Tesseract) VertexCount() int {
	return 16
}

// Edges returns vertex index pairs, flattened; 32 edges.
func (t *Tesseract) Edges() []uint32 {
	return t.edges
}

// Vertex4 returns the rotated 4D coordinates of vertex i.
func (t *Tesseract) Vertex4(i int) (x, y, z, w float64) {
	return t.rotated.At(0, i), t.rotated.At(1, i), t.rotated.At(2, i), t.rotated.At(3, i)
}

// ProjectedVertices appends the stereographic 3D projection of every
// rotated vertex to dst and returns it, xyz triplets. Vertices nearer
// the w camera project larger, which is what gives the inner-cube /
// outer-cube depth illusion.
func (t *Tesseract) ProjectedVertices(dst []float32) []float32 {
	dst = dst[:0]
	for i := 0; i < 16; i++ {
		x, y, z, w := t.Vertex4(i)

		denom := t.wCamera*t.size - w
		if denom < 0.1*t.size {
			denom = 0.1 * t.size
		}
		k := t.wCamera * t.size / denom

		dst = append(dst, float32(x*k), float32(y*k), float32(z*k))
	}
	return dst
}

// EdgeLength returns the 4D length of edge e under the current
// rotation. All edges of a rigid tesseract share one length.
func (t *Tesseract) EdgeLength(e int) float64 {
	a := t.edges[2*e]
	b := t.edges[2*e+1]

	var sum float64
	for axis := 0; axis < 4; axis++ {
		d := t.rotated.At(axis, int(a)) - t.rotated.At(axis, int(b))
		sum += d * d
	}
	return math.Sqrt(sum)
}
