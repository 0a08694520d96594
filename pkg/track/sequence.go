package track

import (
	"errors"
	"fmt"

	"github.com/Faultbox/coasterforge/pkg/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// Sequence validation errors.
var (
	ErrTooShort         = errors.New("sequence needs at least two nodes")
	ErrZeroDirection    = errors.New("node direction is zero")
	ErrNonPositiveSpeed = errors.New("node speed is not positive")
	ErrZeroSpacing      = errors.New("zero spacing between nodes")
	ErrUnorderedLength  = errors.New("total length decreases along the sequence")
)

// Sequence is an ordered arena of track nodes. Its first node is the
// anchor: it carries the section context (heart-line offset, seed roll)
// the export driver reads.
type Sequence struct {
	Nodes []*TrackNode
}

// NewSequence builds a sequence over the given nodes.
func NewSequence(nodes ...*TrackNode) *Sequence {
	return &Sequence{Nodes: nodes}
}

// Len returns the number of nodes.
func (s *Sequence) Len() int {
	return len(s.Nodes)
}

// Anchor returns the first node, or nil for an empty sequence.
func (s *Sequence) Anchor() *TrackNode {
	if len(s.Nodes) == 0 {
		return nil
	}
	return s.Nodes[0]
}

// node returns the node at i, or nil when i is out of bounds.
func (s *Sequence) node(i int) *TrackNode {
	if i < 0 || i >= len(s.Nodes) {
		return nil
	}
	return s.Nodes[i]
}

// Window is a bounded view of the nodes around one index, the unit the
// export driver walks over the sequence.
type Window struct {
	seq *Sequence
	idx int
}

// Window returns the view centered on index i.
func (s *Sequence) Window(i int) Window {
	return Window{seq: s, idx: i}
}

// Last returns the node before the window center, or nil.
func (w Window) Last() *TrackNode {
	return w.seq.node(w.idx - 1)
}

// Current returns the node at the window center, or nil.
func (w Window) Current() *TrackNode {
	return w.seq.node(w.idx)
}

// Next returns the node after the window center, or nil.
func (w Window) Next() *TrackNode {
	return w.seq.node(w.idx + 1)
}

// Refresh derives the per-node frames and deltas consumed by the export
// and force computations: lateral frames, cumulative length, heart-line
// spacing, and the angular deltas between consecutive stations. The
// first node's deltas stay zero.
func (s *Sequence) Refresh() {
	if len(s.Nodes) == 0 {
		return
	}

	for _, n := range s.Nodes {
		n.UpdateNorm()
	}

	heart := s.Nodes[0].Heart
	s.Nodes[0].TotalLength = 0

	var prevChord mgl32.Vec3
	for i := 1; i < len(s.Nodes); i++ {
		n, p := s.Nodes[i], s.Nodes[i-1]

		n.TotalLength = p.TotalLength + n.Pos.Sub(p.Pos).Len()

		chord := n.PosOnHeart(heart).Sub(p.PosOnHeart(heart))
		n.HeartDistFromLast = chord.Len()

		n.TrackAngleFromLast = geom.AngleBetween(p.Dir, n.Dir)
		if i == 1 {
			n.AngleFromLast = n.TrackAngleFromLast
		} else {
			n.AngleFromLast = geom.AngleBetween(prevChord, chord)
		}

		n.PitchFromLast = geom.Pitch(n.Dir) - geom.Pitch(p.Dir)
		n.YawFromLast = geom.WrapRad(geom.Yaw(n.Dir) - geom.Yaw(p.Dir))

		prevChord = chord
	}
}

// Validate checks the preconditions export and force computations assume.
// Those computations do not re-check and yield undefined numbers when the
// contract is violated, so callers run Validate first.
func (s *Sequence) Validate() error {
	if len(s.Nodes) < 2 {
		return ErrTooShort
	}

	for i, n := range s.Nodes {
		if n.Dir.Len() == 0 {
			return fmt.Errorf("%w: node %d", ErrZeroDirection, i)
		}
		if n.Speed <= 0 {
			return fmt.Errorf("%w: node %d", ErrNonPositiveSpeed, i)
		}
		if i == 0 {
			continue
		}
		if n.HeartDistFromLast <= 0 {
			return fmt.Errorf("%w: node %d", ErrZeroSpacing, i)
		}
		if n.TotalLength < s.Nodes[i-1].TotalLength {
			return fmt.Errorf("%w: node %d", ErrUnorderedLength, i)
		}
	}
	return nil
}
