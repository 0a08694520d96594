package track

import (
	"math"

	"github.com/Faultbox/coasterforge/pkg/geom"
)

// Standard gravity in m/s^2.
const gravity = 9.80665

// Gains of the first-order comfort filter, calibrated against the
// reference exporter's measured outputs.
const (
	normalGain  = 0.921083
	lateralGain = 0.92855
)

// Time constant in seconds for the forward-speed lag threaded through a
// sequence by SmoothForces.
const speedLagTau = 0.5

// CalcSmoothForces computes the smoothed comfort-force proxies at this
// node from its angular deltas and the carried roll/speed state, writing
// SmoothNormal and SmoothLateral. It reads only this node; propagating
// RollSpeed and SmoothSpeed along the sequence first is the driver's job.
// A zero SmoothSpeed seed adopts the node's raw speed.
func (n *TrackNode) CalcSmoothForces() {
	d := float64(n.HeartDistFromLast)
	v := float64(n.SmoothSpeed)
	if v == 0 {
		v = float64(n.Speed)
	}

	sinRoll, cosRoll := math.Sincos(float64(n.Roll))
	cosPitch := math.Cos(float64(n.PitchFromLast))

	vert := float64(n.PitchFromLast) + float64(n.AngleFromLast)*cosRoll
	lat := float64(n.YawFromLast)*cosPitch + float64(n.RollSpeed)*sinRoll*d

	n.SmoothNormal = n.ShapeA * float32(normalGain*v*v*vert/d+gravity*cosPitch*cosRoll)
	n.SmoothLateral = n.ShapeB * float32(lateralGain*v*v*lat/(d*gravity)+sinRoll*cosPitch)
}

// SmoothForces threads the carried roll and speed state through the
// sequence and computes the smoothed forces at every node after the
// first. The first node seeds the filter and keeps zero outputs.
func SmoothForces(seq *Sequence) {
	if seq.Len() < 2 {
		return
	}

	nodes := seq.Nodes
	smooth := nodes[0].Speed
	prevRoll := nodes[0].Roll

	for _, n := range nodes[1:] {
		dt := n.HeartDistFromLast / n.Speed
		n.RollSpeed = geom.WrapRad(n.Roll-prevRoll) / dt
		smooth += (n.Speed - smooth) * speedLagFactor(dt)
		n.SmoothSpeed = smooth

		n.CalcSmoothForces()
		prevRoll = n.Roll
	}
}

// speedLagFactor is the per-span blend weight of a first-order lag with
// time constant speedLagTau.
func speedLagFactor(dt float32) float32 {
	return float32(1 - math.Exp(-float64(dt)/speedLagTau))
}
