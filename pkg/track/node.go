// Package track models force-designed coaster track geometry: discrete
// stations along the heart-line, smoothed per-station comfort forces, and
// the export of a station sequence as cubic Bezier curve segments.
package track

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Reference axes for deriving node frames. The fallback axis takes over
// when a direction is parallel to the world up axis.
var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	worldForward = mgl32.Vec3{0, 0, 1}
)

// TrackNode is one station along the track centerline: a pose with banking
// plus the metrics accumulated since the previous station.
type TrackNode struct {
	Pos  mgl32.Vec3 // world-space anchor on the centerline
	Dir  mgl32.Vec3 // forward tangent, not necessarily unit length
	Norm mgl32.Vec3 // lateral up reference, valid after UpdateNorm
	Lat  mgl32.Vec3 // lateral axis, valid after UpdateNorm

	Roll  float32 // banking in radians
	Speed float32 // forward speed in m/s
	Heart float32 // heart-line offset of the section; read from the anchor node

	// ShapeA and ShapeB weight the leading and trailing control arms on
	// export and act as per-axis gains on the smoothed forces.
	ShapeA float32
	ShapeB float32

	// Deltas relative to the previous node, populated by the sequence
	// refresh or directly by the caller. Export and force computations
	// only ever read these.
	TotalLength        float32
	AngleFromLast      float32
	TrackAngleFromLast float32
	PitchFromLast      float32
	YawFromLast        float32
	HeartDistFromLast  float32

	// Carried smoothing state, threaded node-to-node by the driver.
	RollSpeed   float32
	SmoothSpeed float32

	// Outputs of CalcSmoothForces.
	SmoothNormal  float32
	SmoothLateral float32
}

// NewTrackNode builds a station at pos heading along dir. The lateral
// frame is not derived until UpdateNorm is called. dir must be non-zero;
// that is the caller's contract, not checked here.
func NewTrackNode(pos, dir mgl32.Vec3, roll, speed, shapeA, shapeB float32) *TrackNode {
	return &TrackNode{
		Pos:    pos,
		Dir:    dir,
		Roll:   roll,
		Speed:  speed,
		ShapeA: shapeA,
		ShapeB: shapeB,
	}
}

// UpdateNorm derives the node's lateral frame from its direction against
// the world up axis, falling back to the forward axis when the direction
// is vertical. Idempotent; afterwards Norm and Lat are unit length and
// orthogonal to Dir.
func (n *TrackNode) UpdateNorm() {
	dir := n.Dir.Normalize()

	lat := worldUp.Cross(dir)
	if lat.Len() < 1e-6 {
		lat = worldForward.Cross(dir)
	}
	n.Lat = lat.Normalize()
	n.Norm = dir.Cross(n.Lat)
}

// PosOnHeart returns the node position displaced along its normal by the
// given heart-line offset.
func (n *TrackNode) PosOnHeart(offset float32) mgl32.Vec3 {
	if offset == 0 {
		return n.Pos
	}
	return n.Pos.Add(n.Norm.Mul(offset))
}
