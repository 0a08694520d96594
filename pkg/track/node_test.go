package track

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewTrackNode(t *testing.T) {
	n := NewTrackNode(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 2}, 0.5, 12, 1, 0.5)

	if n.Pos != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Pos = %v, want (1 2 3)", n.Pos)
	}
	if n.Dir != (mgl32.Vec3{0, 0, 2}) {
		t.Errorf("Dir = %v, want (0 0 2)", n.Dir)
	}
	if n.Roll != 0.5 || n.Speed != 12 || n.ShapeA != 1 || n.ShapeB != 0.5 {
		t.Errorf("scalars = (%v %v %v %v), want (0.5 12 1 0.5)", n.Roll, n.Speed, n.ShapeA, n.ShapeB)
	}
	if n.Norm != (mgl32.Vec3{}) {
		t.Errorf("Norm = %v before UpdateNorm, want zero", n.Norm)
	}
}

func TestUpdateNorm(t *testing.T) {
	dirs := []mgl32.Vec3{
		{0, 0, 1},
		{1, 0, 0},
		{1, 2, 3},
		{0.3, -0.8, 0.5},
		{0, 1, 0},  // vertical, exercises the fallback axis
		{0, -1, 0}, // vertical down
		{0, 0, -4}, // non-unit
	}

	for _, dir := range dirs {
		n := NewTrackNode(mgl32.Vec3{}, dir, 0, 10, 0, 0)
		n.UpdateNorm()

		unit := dir.Normalize()
		if dot := math.Abs(float64(n.Norm.Dot(unit))); dot > 1e-5 {
			t.Errorf("dir %v: norm %v not orthogonal, dot %v", dir, n.Norm, dot)
		}
		if l := float64(n.Norm.Len()); math.Abs(l-1) > 1e-5 {
			t.Errorf("dir %v: norm length %v, want 1", dir, l)
		}
		if dot := math.Abs(float64(n.Lat.Dot(unit))); dot > 1e-5 {
			t.Errorf("dir %v: lat %v not orthogonal, dot %v", dir, n.Lat, dot)
		}

		first := n.Norm
		n.UpdateNorm()
		if n.Norm != first {
			t.Errorf("dir %v: UpdateNorm not idempotent: %v then %v", dir, first, n.Norm)
		}
	}
}

func TestUpdateNorm_PointsUp(t *testing.T) {
	n := NewTrackNode(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 0, 10, 0, 0)
	n.UpdateNorm()
	if !n.Norm.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("Norm = %v for level +z travel, want (0 1 0)", n.Norm)
	}
}

func TestPosOnHeart(t *testing.T) {
	n := NewTrackNode(mgl32.Vec3{1, 0, 5}, mgl32.Vec3{0, 0, 1}, 0, 10, 0, 0)
	n.UpdateNorm()

	got := n.PosOnHeart(1.5)
	want := mgl32.Vec3{1, 1.5, 5}
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("PosOnHeart(1.5) = %v, want %v", got, want)
	}

	if n.PosOnHeart(0) != n.Pos {
		t.Errorf("PosOnHeart(0) = %v, want %v", n.PosOnHeart(0), n.Pos)
	}
}
