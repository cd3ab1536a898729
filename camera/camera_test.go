package camera

import (
	"math"
	"testing"
)

func TestNewLooksDownPositiveZ(t *testing.T) {
	o := New(25)

	x, y, z := o.Position()
	if math.Abs(float64(x)) > 1e-4 || math.Abs(float64(y)) > 1e-4 {
		t.Errorf("expected camera on z axis, got (%v, %v, %v)", x, y, z)
	}
	if z > -24.9 {
		t.Errorf("expected camera at z approx -25, got %v", z)
	}
}

func TestRotateClampsPitch(t *testing.T) {
	o := New(25)

	o.Rotate(0, 10)
	if o.Pitch != o.MaxPitch {
		t.Errorf("pitch = %v, want clamp at %v", o.Pitch, o.MaxPitch)
	}

	o.Rotate(0, -20)
	if o.Pitch != o.MinPitch {
		t.Errorf("pitch = %v, want clamp at %v", o.Pitch, o.MinPitch)
	}
}

func TestRotateWrapsYaw(t *testing.T) {
	o := New(25)

	o.Rotate(3*math.Pi, 0)
	if o.Yaw < -math.Pi || o.Yaw > math.Pi {
		t.Errorf("yaw %v outside [-pi, pi]", o.Yaw)
	}
}

func TestDollyClampsDistance(t *testing.T) {
	o := New(25)

	o.Dolly(1000)
	if o.Distance != o.MinDistance {
		t.Errorf("distance = %v, want %v", o.Distance, o.MinDistance)
	}

	o.Dolly(-10000)
	if o.Distance != o.MaxDistance {
		t.Errorf("distance = %v, want %v", o.Distance, o.MaxDistance)
	}
}

func TestPositionStaysOnSphere(t *testing.T) {
	o := New(25)

	angles := []struct{ yaw, pitch float32 }{
		{0.3, 0.1},
		{-1.2, 0.8},
		{2.9, -1.1},
	}
	for _, a := range angles {
		o.Rotate(a.yaw, a.pitch)
		x, y, z := o.Position()
		r := math.Sqrt(float64(x*x + y*y + z*z))
		if math.Abs(r-float64(o.Distance)) > 1e-3 {
			t.Errorf("radius %v, want %v at yaw=%v pitch=%v", r, o.Distance, o.Yaw, o.Pitch)
		}
	}
}

func TestResetRestoresHome(t *testing.T) {
	o := New(25)
	o.Rotate(1.0, 0.5)
	o.Dolly(5)

	o.Reset()
	if o.Yaw != float32(math.Pi) || o.Pitch != 0 || o.Distance != 25 {
		t.Errorf("reset gave yaw=%v pitch=%v dist=%v", o.Yaw, o.Pitch, o.Distance)
	}
}
