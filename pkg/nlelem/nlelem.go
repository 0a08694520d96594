// Package nlelem reads and writes NoLimits element curve streams.
//
// An element stream is a flat concatenation of fixed-size records, one per
// curve segment, with no header, count prefix, or checksum. The consumer
// derives the record count from the stream length.
package nlelem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// RecordSize is the serialized size of one segment in bytes: ten big-endian
// float32 values followed by three flag bytes and seven bytes of padding.
const RecordSize = 50

// Flag bytes on the wire are full bytes, never bit-packed.
const (
	flagSet   = 0xFF
	flagClear = 0x00
)

// Element stream errors.
var (
	ErrTruncatedElement = errors.New("truncated element data")
	ErrBadFlagByte      = errors.New("invalid flag byte")
	ErrBadPadding       = errors.New("nonzero record padding")
)

// Segment is one cubic Bezier piece of an exported curve.
type Segment struct {
	CP1    mgl32.Vec3 // leading control point
	CP2    mgl32.Vec3 // trailing control point
	Anchor mgl32.Vec3 // curve point on the heart-line
	Roll   float32    // banking in degrees

	ContinuousRoll bool // roll interpolates into the following segment
	RelativeRoll   bool // Roll is a delta from the previous segment, not absolute
	EqualDistance  bool // control points are equidistant from the anchor
}

// Encode serializes the segment as one 50-byte record.
func (s *Segment) Encode() []byte {
	buf := make([]byte, RecordSize)
	off := 0
	for _, f := range []float32{
		s.CP1.X(), s.CP1.Y(), s.CP1.Z(),
		s.CP2.X(), s.CP2.Y(), s.CP2.Z(),
		s.Anchor.X(), s.Anchor.Y(), s.Anchor.Z(),
		s.Roll,
	} {
		binary.BigEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	buf[40] = flagByte(s.ContinuousRoll)
	buf[41] = flagByte(s.RelativeRoll)
	buf[42] = flagByte(s.EqualDistance)
	// Bytes 43..49 stay zero.
	return buf
}

func flagByte(b bool) byte {
	if b {
		return flagSet
	}
	return flagClear
}

// Write serializes segments to w in order, one record per segment. A failed
// write is reported with the index of the offending segment; nothing is
// skipped and the stream is not closed.
func Write(w io.Writer, segments []*Segment) error {
	for i, s := range segments {
		if _, err := w.Write(s.Encode()); err != nil {
			return fmt.Errorf("writing segment %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile writes segments to a file, replacing any existing content.
func WriteFile(path string, segments []*Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating element file: %w", err)
	}
	if err := Write(f, segments); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Parse decodes a flat element stream into segments.
func Parse(data []byte) ([]*Segment, error) {
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrTruncatedElement, len(data), RecordSize)
	}

	segments := make([]*Segment, 0, len(data)/RecordSize)
	for off := 0; off < len(data); off += RecordSize {
		s, err := parseRecord(data[off : off+RecordSize])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", off/RecordSize, err)
		}
		segments = append(segments, s)
	}
	return segments, nil
}

// parseRecord decodes a single 50-byte record.
func parseRecord(rec []byte) (*Segment, error) {
	var f [10]float32
	for i := range f {
		f[i] = math.Float32frombits(binary.BigEndian.Uint32(rec[i*4:]))
	}

	s := &Segment{
		CP1:    mgl32.Vec3{f[0], f[1], f[2]},
		CP2:    mgl32.Vec3{f[3], f[4], f[5]},
		Anchor: mgl32.Vec3{f[6], f[7], f[8]},
		Roll:   f[9],
	}

	var err error
	if s.ContinuousRoll, err = parseFlag(rec[40]); err != nil {
		return nil, fmt.Errorf("continuous roll: %w", err)
	}
	if s.RelativeRoll, err = parseFlag(rec[41]); err != nil {
		return nil, fmt.Errorf("relative roll: %w", err)
	}
	if s.EqualDistance, err = parseFlag(rec[42]); err != nil {
		return nil, fmt.Errorf("equal distance: %w", err)
	}

	for _, b := range rec[43:] {
		if b != 0 {
			return nil, ErrBadPadding
		}
	}
	return s, nil
}

func parseFlag(b byte) (bool, error) {
	switch b {
	case flagSet:
		return true, nil
	case flagClear:
		return false, nil
	default:
		return false, fmt.Errorf("%w: 0x%02X", ErrBadFlagByte, b)
	}
}

// ParseFile reads an element file from disk.
func ParseFile(path string) ([]*Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading element file: %w", err)
	}
	return Parse(data)
}

// ChordLength returns the summed anchor-to-anchor chord length, a lower
// bound on the exported path length.
func ChordLength(segments []*Segment) float32 {
	var total float32
	for i := 1; i < len(segments); i++ {
		total += segments[i].Anchor.Sub(segments[i-1].Anchor).Len()
	}
	return total
}

// RollRange returns the minimum and maximum accumulated roll across the
// stream, resolving relative records against the preceding absolute value.
func RollRange(segments []*Segment) (min, max float32) {
	if len(segments) == 0 {
		return 0, 0
	}

	cur := segments[0].Roll
	min, max = cur, cur
	for _, s := range segments[1:] {
		if s.RelativeRoll {
			cur += s.Roll
		} else {
			cur = s.Roll
		}
		if cur < min {
			min = cur
		}
		if cur > max {
			max = cur
		}
	}
	return min, max
}
