package track

import (
	"math"

	"github.com/Faultbox/coasterforge/pkg/geom"
	"github.com/Faultbox/coasterforge/pkg/nlelem"
	"github.com/go-gl/mathgl/mgl32"
)

// curveTension deepens the control arms on sharp transitions so the cubic
// hugs the physical path instead of interpolating the tangents linearly.
// Calibrated against the reference exporter's single-segment output.
const curveTension = 0.0541

// relRollHoldDeg keeps the roll encoding relative while successive deltas
// stay under this threshold once a relative run has started.
const relRollHoldDeg = 0.5

// RollState carries roll continuity context between consecutive exported
// segments. The export driver seeds it from the anchor node and threads
// it through ExportWindow calls.
type RollState struct {
	PrevRoll float32 // previous segment's roll in degrees, unwrapped
	Relative bool    // previous segment used relative encoding
}

// toElementFrame maps a world-space vector into the element file frame,
// which looks down the negative Z axis.
func toElementFrame(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), v.Y(), -v.Z()}
}

// ExportWindow emits the Bezier segment covering the span from last to n
// over the time window [t0, t1], appending to out and returning the
// advanced roll state. next is nil on the final span; anchor carries the
// section's heart-line offset. An empty window produces no segments.
//
// The control arms follow the one-third rule over the distance covered by
// the window, deepened by curveTension against the angular delta and
// weighted by the node's shaping parameters. Each arm is clamped to its
// adjacent span so a handle never reaches past a neighboring station.
func (n *TrackNode) ExportWindow(out *[]*nlelem.Segment, last, next, anchor *TrackNode, t0, t1 float32, st RollState) RollState {
	if t1 <= t0 {
		return st
	}

	span := n.Speed * (t1 - t0)
	sharp := 1 + curveTension*n.AngleFromLast*n.AngleFromLast
	arm := span / 3 * sharp

	armFwd := arm * (1 + n.ShapeA)
	armBack := arm * (1 + n.ShapeB)
	if spanBack := n.TotalLength - last.TotalLength; armBack > spanBack {
		armBack = spanBack
	}
	if next != nil {
		if spanFwd := next.TotalLength - n.TotalLength; armFwd > spanFwd {
			armFwd = spanFwd
		}
	}

	point := toElementFrame(n.PosOnHeart(anchor.Heart))
	tangent := toElementFrame(n.Dir.Normalize())

	roll, relative := encodeRoll(mgl32.RadToDeg(n.Roll), st)

	*out = append(*out, &nlelem.Segment{
		CP1:            point.Add(tangent.Mul(armFwd)),
		CP2:            point.Sub(tangent.Mul(armBack)),
		Anchor:         point,
		Roll:           roll,
		ContinuousRoll: next != nil,
		RelativeRoll:   relative,
		EqualDistance:  armFwd == armBack,
	})

	return RollState{PrevRoll: mgl32.RadToDeg(n.Roll), Relative: relative}
}

// encodeRoll picks between absolute and relative roll encoding. Relative
// encoding is used when the wrapped absolute values of the previous and
// current roll straddle the +-180 boundary, where an absolute value would
// leave the interpolation direction ambiguous, or when an ongoing
// relative run keeps producing near-zero deltas.
func encodeRoll(rollDeg float32, st RollState) (roll float32, relative bool) {
	delta := geom.WrapDeg(rollDeg - st.PrevRoll)
	absCur := geom.WrapDeg(rollDeg)
	absPrev := geom.WrapDeg(st.PrevRoll)

	switch {
	case math.Abs(float64(absCur-absPrev)) > 180:
		return delta, true
	case st.Relative && math.Abs(float64(delta)) <= relRollHoldDeg:
		return delta, true
	default:
		return absCur, false
	}
}

// Export converts a prepared sequence into element segments, one per node
// transition, threading roll continuity along the spans. The sequence
// must satisfy Validate; violations yield undefined geometry.
func Export(seq *Sequence) []*nlelem.Segment {
	if seq.Len() < 2 {
		return nil
	}

	anchor := seq.Anchor()
	segments := make([]*nlelem.Segment, 0, seq.Len()-1)
	st := RollState{PrevRoll: mgl32.RadToDeg(anchor.Roll)}

	var t float32
	for i := 1; i < seq.Len(); i++ {
		w := seq.Window(i)
		cur := w.Current()
		dt := cur.HeartDistFromLast / cur.Speed
		st = cur.ExportWindow(&segments, w.Last(), w.Next(), anchor, t, t+dt, st)
		t += dt
	}
	return segments
}
