package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWrapDeg(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{181, -179},
		{-181, 179},
		{541, -179},
		{-358, 2},
		{720, 0},
	}
	for _, c := range cases {
		got := WrapDeg(c.in)
		if math.Abs(float64(got-c.want)) > 1e-4 {
			t.Errorf("WrapDeg(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWrapRad(t *testing.T) {
	got := WrapRad(2*math.Pi + 0.5)
	if math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("WrapRad(2pi+0.5) = %v, want 0.5", got)
	}
	got = WrapRad(-3 * math.Pi / 2)
	if math.Abs(float64(got)-math.Pi/2) > 1e-6 {
		t.Errorf("WrapRad(-3pi/2) = %v, want pi/2", got)
	}
	got = WrapRad(-0.5)
	if math.Abs(float64(got)+0.5) > 1e-6 {
		t.Errorf("WrapRad(-0.5) = %v, want -0.5", got)
	}
}

func TestAngleBetween(t *testing.T) {
	x := mgl32.Vec3{1, 0, 0}
	y := mgl32.Vec3{0, 1, 0}
	got := AngleBetween(x, y)
	if math.Abs(float64(got)-math.Pi/2) > 1e-6 {
		t.Errorf("AngleBetween(x, y) = %v, want pi/2", got)
	}
	if AngleBetween(x, x) > 1e-6 {
		t.Errorf("AngleBetween(x, x) = %v, want 0", AngleBetween(x, x))
	}
}

func TestPitchYaw(t *testing.T) {
	fwd := mgl32.Vec3{0, 0, 1}
	if p := Pitch(fwd); math.Abs(float64(p)) > 1e-6 {
		t.Errorf("Pitch(+z) = %v, want 0", p)
	}
	if y := Yaw(fwd); math.Abs(float64(y)) > 1e-6 {
		t.Errorf("Yaw(+z) = %v, want 0", y)
	}
	up := mgl32.Vec3{0, 1, 0}
	if p := Pitch(up); math.Abs(float64(p)-math.Pi/2) > 1e-6 {
		t.Errorf("Pitch(+y) = %v, want pi/2", p)
	}
	right := mgl32.Vec3{1, 0, 0}
	if y := Yaw(right); math.Abs(float64(y)-math.Pi/2) > 1e-6 {
		t.Errorf("Yaw(+x) = %v, want pi/2", y)
	}
}
