package track

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// forceFixtureNode builds the reference node the filter gains were
// calibrated against.
func forceFixtureNode() *TrackNode {
	n := NewTrackNode(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 0, 20, 1, 0.5)
	n.UpdateNorm()
	n.AngleFromLast = 0.05
	n.PitchFromLast = 0.02
	n.YawFromLast = 0.03
	n.HeartDistFromLast = 1
	n.RollSpeed = 0
	n.SmoothSpeed = 0
	return n
}

func TestCalcSmoothForces(t *testing.T) {
	n := forceFixtureNode()
	n.CalcSmoothForces()

	if got := math.Round(float64(n.SmoothNormal) * 1000); got != 35595 {
		t.Errorf("SmoothNormal = %v (x1000 rounds to %v), want 35.595", n.SmoothNormal, got)
	}
	if got := math.Round(float64(n.SmoothLateral) * 1000); got != 568 {
		t.Errorf("SmoothLateral = %v (x1000 rounds to %v), want 0.568", n.SmoothLateral, got)
	}
}

func TestCalcSmoothForces_ZeroSeedAdoptsSpeed(t *testing.T) {
	seeded := forceFixtureNode()
	seeded.SmoothSpeed = seeded.Speed
	seeded.CalcSmoothForces()

	unseeded := forceFixtureNode()
	unseeded.CalcSmoothForces()

	if seeded.SmoothNormal != unseeded.SmoothNormal {
		t.Errorf("zero seed: normal %v, explicit seed: %v", unseeded.SmoothNormal, seeded.SmoothNormal)
	}
	if seeded.SmoothLateral != unseeded.SmoothLateral {
		t.Errorf("zero seed: lateral %v, explicit seed: %v", unseeded.SmoothLateral, seeded.SmoothLateral)
	}
}

func TestCalcSmoothForces_LateralFollowsYawSign(t *testing.T) {
	n := forceFixtureNode()
	n.CalcSmoothForces()
	pos := n.SmoothLateral

	n.YawFromLast = -n.YawFromLast
	n.CalcSmoothForces()
	neg := n.SmoothLateral

	if pos <= 0 || neg >= 0 {
		t.Errorf("lateral force signs = (%v, %v), want (+, -)", pos, neg)
	}
	if math.Abs(float64(pos+neg)) > 1e-5 {
		t.Errorf("lateral force not antisymmetric in yaw: %v vs %v", pos, neg)
	}
}

func TestCalcSmoothForces_RollSpeedFeedsLateral(t *testing.T) {
	n := forceFixtureNode()
	n.Roll = 0.4
	n.CalcSmoothForces()
	still := n.SmoothLateral

	n.RollSpeed = 2
	n.CalcSmoothForces()
	rolling := n.SmoothLateral

	if rolling <= still {
		t.Errorf("positive roll speed did not raise lateral force: %v -> %v", still, rolling)
	}
}

// straightSequence builds a refreshed straight line along +z with the
// given per-node speeds.
func straightSequence(t *testing.T, spacing float32, speeds ...float32) *Sequence {
	t.Helper()
	nodes := make([]*TrackNode, len(speeds))
	for i, v := range speeds {
		pos := mgl32.Vec3{0, 0, spacing * float32(i)}
		nodes[i] = NewTrackNode(pos, mgl32.Vec3{0, 0, 1}, 0, v, 1, 1)
	}
	seq := NewSequence(nodes...)
	seq.Refresh()
	if err := seq.Validate(); err != nil {
		t.Fatalf("fixture sequence invalid: %v", err)
	}
	return seq
}

func TestSmoothForces_StraightLine(t *testing.T) {
	seq := straightSequence(t, 2, 10, 10, 10)
	SmoothForces(seq)

	for i, n := range seq.Nodes[1:] {
		if n.RollSpeed != 0 {
			t.Errorf("node %d: RollSpeed = %v, want 0 on a flat line", i+1, n.RollSpeed)
		}
		if math.Abs(float64(n.SmoothSpeed-10)) > 1e-5 {
			t.Errorf("node %d: SmoothSpeed = %v, want 10 at constant speed", i+1, n.SmoothSpeed)
		}
		// A flat straight line rides at exactly one gravity of seat force.
		if math.Abs(float64(n.SmoothNormal)-gravity) > 1e-3 {
			t.Errorf("node %d: SmoothNormal = %v, want ~%v", i+1, n.SmoothNormal, gravity)
		}
		if math.Abs(float64(n.SmoothLateral)) > 1e-4 {
			t.Errorf("node %d: SmoothLateral = %v, want ~0", i+1, n.SmoothLateral)
		}
	}
}

func TestSmoothForces_SpeedLag(t *testing.T) {
	seq := straightSequence(t, 2, 10, 20, 30)
	SmoothForces(seq)

	s1 := seq.Nodes[1].SmoothSpeed
	if s1 <= 10 || s1 >= 20 {
		t.Errorf("node 1 SmoothSpeed = %v, want strictly between 10 and 20", s1)
	}
	s2 := seq.Nodes[2].SmoothSpeed
	if s2 <= s1 || s2 >= 30 {
		t.Errorf("node 2 SmoothSpeed = %v, want strictly between %v and 30", s2, s1)
	}
}

func TestSmoothForces_RollSpeedFromBanking(t *testing.T) {
	seq := straightSequence(t, 2, 10, 10, 10)
	seq.Nodes[1].Roll = 0.2
	seq.Nodes[2].Roll = 0.6
	SmoothForces(seq)

	// dt per span is 0.2s, so the roll rates are 1.0 and 2.0 rad/s.
	if got := seq.Nodes[1].RollSpeed; math.Abs(float64(got)-1) > 1e-4 {
		t.Errorf("node 1 RollSpeed = %v, want 1", got)
	}
	if got := seq.Nodes[2].RollSpeed; math.Abs(float64(got)-2) > 1e-4 {
		t.Errorf("node 2 RollSpeed = %v, want 2", got)
	}
}
