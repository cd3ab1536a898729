package space

import (
	"math"
	"testing"
)

func TestInViewFrustum(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		p    Vec3
		want bool
	}{
		{"far plane center", Vec3{0, 0, s.MaxZ}, true},
		{"far plane corner slack", Vec3{90, 90, s.MaxZ - 0.5}, true},
		{"at observer", s.Observer, true},
		{"near observer", Vec3{1, 1, s.Observer.Z + 2}, true},
		{"well behind observer", Vec3{0, 0, s.Observer.Z - ExitDepth - 1}, false},
		{"mid depth on axis", Vec3{0, 0, 40}, true},
		{"mid depth far lateral", Vec3{500, 0, 40}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.InViewFrustum(tt.p); got != tt.want {
				t.Errorf("InViewFrustum(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestScaleFactorFallsOffWithDistance(t *testing.T) {
	s := New()

	near := s.ScaleFactor(Vec3{0, 0, s.Observer.Z + 20})
	far := s.ScaleFactor(Vec3{0, 0, s.MaxZ})

	if near <= far {
		t.Errorf("near scale %v should exceed far scale %v", near, far)
	}
	if far <= 0 {
		t.Errorf("far scale = %v, want > 0", far)
	}
}

func TestScaleFactorCloseBoost(t *testing.T) {
	s := New()

	at5 := s.ScaleFactor(Vec3{0, 0, s.Observer.Z + 5})
	at15 := s.ScaleFactor(Vec3{0, 0, s.Observer.Z + 15})

	// Inside 10 units a boost applies on top of the distance falloff.
	if at5 <= at15 {
		t.Errorf("close scale %v should exceed mid scale %v", at5, at15)
	}
}

func TestTransparencyFactor(t *testing.T) {
	s := New()

	// Reduced very close, full at mid range, fading far out.
	close := s.TransparencyFactor(Vec3{0, 0, s.Observer.Z + 1})
	if close < 0.4 || close > 0.8 {
		t.Errorf("close transparency = %v, want in [0.4, 0.8]", close)
	}

	mid := s.TransparencyFactor(Vec3{0, 0, s.Observer.Z + 100})
	if mid != 1 {
		t.Errorf("mid transparency = %v, want 1", mid)
	}

	far := s.TransparencyFactor(Vec3{0, 0, s.Observer.Z + 190})
	if far >= mid {
		t.Errorf("far transparency %v should be below mid %v", far, mid)
	}

	gone := s.TransparencyFactor(Vec3{0, 0, s.Observer.Z + MaxViewDistance})
	if gone != 0 {
		t.Errorf("transparency at max distance = %v, want 0", gone)
	}
}

func TestOutOfBounds(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		p    Vec3
		want bool
	}{
		{"center", Vec3{}, false},
		{"far plane spawn overshoot", Vec3{0, 0, s.MaxZ + 1}, false},
		{"just behind observer", Vec3{0, 0, s.Observer.Z - 5}, false},
		{"deep behind observer", Vec3{0, 0, s.Observer.Z - ExitDepth - 1}, true},
		{"far lateral x", Vec3{201, 0, 0}, true},
		{"far lateral y", Vec3{0, -201, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.OutOfBounds(tt.p); got != tt.want {
				t.Errorf("OutOfBounds(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestQuatFromEulerUnit(t *testing.T) {
	q := QuatFromEuler(0.3, -1.2, 2.5)
	l := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
	if math.Abs(l-1) > 1e-4 {
		t.Errorf("quaternion length = %v, want 1", l)
	}
}

func TestQuatMulNormalizeStable(t *testing.T) {
	q := QuatIdentity()
	delta := QuatFromEuler(0.01, 0.007, 0.003)

	for i := 0; i < 10000; i++ {
		q = q.Mul(delta).Normalize()
	}

	l := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
	if math.Abs(l-1) > 1e-3 {
		t.Errorf("quaternion drifted to length %v after repeated rotation", l)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}.Normalize()
	if math.Abs(float64(v.Len()-1)) > 1e-5 {
		t.Errorf("normalized length = %v, want 1", v.Len())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("normalizing zero vector = %v, want zero", zero)
	}
}
