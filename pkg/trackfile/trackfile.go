// Package trackfile loads and saves YAML track descriptions, the
// editor-facing input of the export pipeline.
package trackfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/coasterforge/pkg/track"
)

// Track file errors.
var (
	ErrNoNodes = errors.New("track file has no nodes")
)

// Node is one authored station. Angles are stored in degrees in the file
// and converted to radians when the sequence is built.
type Node struct {
	Pos    [3]float32 `yaml:"pos,flow"`
	Dir    [3]float32 `yaml:"dir,flow"`
	Roll   float32    `yaml:"roll,omitempty"`
	Speed  float32    `yaml:"speed"`
	ShapeA float32    `yaml:"shape_a,omitempty"`
	ShapeB float32    `yaml:"shape_b,omitempty"`
}

// File is one YAML track description.
type File struct {
	Name  string  `yaml:"name,omitempty"`
	Heart float32 `yaml:"heart,omitempty"`
	Nodes []Node  `yaml:"nodes"`
}

// Parse decodes a track description from raw bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing track file: %w", err)
	}
	if len(f.Nodes) == 0 {
		return nil, ErrNoNodes
	}
	return &f, nil
}

// ParseFile reads a track description from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading track file: %w", err)
	}
	return Parse(data)
}

// Save writes the track description to disk.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding track file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing track file: %w", err)
	}
	return nil
}

// ToSequence builds the refreshed node sequence the file describes. The
// file's heart offset lands on the anchor node. Callers still run
// Validate before exporting.
func (f *File) ToSequence() *track.Sequence {
	nodes := make([]*track.TrackNode, len(f.Nodes))
	for i, fn := range f.Nodes {
		nodes[i] = track.NewTrackNode(
			mgl32.Vec3{fn.Pos[0], fn.Pos[1], fn.Pos[2]},
			mgl32.Vec3{fn.Dir[0], fn.Dir[1], fn.Dir[2]},
			mgl32.DegToRad(fn.Roll),
			fn.Speed,
			fn.ShapeA,
			fn.ShapeB,
		)
	}
	nodes[0].Heart = f.Heart

	seq := track.NewSequence(nodes...)
	seq.Refresh()
	return seq
}
