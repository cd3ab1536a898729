package space

import "math"

// Vec3 is a float32 3-vector. Kept minimal: the simulation only needs
// the handful of operations below in its hot path.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the vector magnitude.
func (v Vec3) Len() float32 {
	return sqrtf(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length, or the zero vector if v is
// too short to normalize safely.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-6 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Quat is a float32 quaternion (xyzw).
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromEuler builds a quaternion from XYZ euler angles in radians.
func QuatFromEuler(x, y, z float32) Quat {
	cx, sx := cosf(x/2), sinf(x/2)
	cy, sy := cosf(y/2), sinf(y/2)
	cz, sz := cosf(z/2), sinf(z/2)

	return Quat{
		X: sx*cy*cz - cx*sy*sz,
		Y: cx*sy*cz + sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
		W: cx*cy*cz + sx*sy*sz,
	}
}

// Mul returns the composed rotation q then o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Normalize returns q scaled to unit length. Repeated incremental
// rotations drift without this.
func (q Quat) Normalize() Quat {
	l := sqrtf(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < 1e-6 {
		return QuatIdentity()
	}
	inv := 1 / l
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Clamp clamps v to [minVal, maxVal].
func Clamp(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// Sqrt is float32 math.Sqrt.
func Sqrt(v float32) float32 { return float32(math.Sqrt(float64(v))) }

// Sin is float32 math.Sin.
func Sin(v float32) float32 { return float32(math.Sin(float64(v))) }

func sqrtf(v float32) float32 { return Sqrt(v) }
func sinf(v float32) float32  { return Sin(v) }
func cosf(v float32) float32  { return float32(math.Cos(float64(v))) }

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
