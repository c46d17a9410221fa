package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wshed/gridgraph"
)

// ErrInvalidScene indicates a scene file that cannot be turned into inputs.
var ErrInvalidScene = errors.New("config: invalid scene")

// Scene is one segmentation input: a grayscale grid and its seeds, given
// either as points or as a binary mask of the same size.
//
//	gray:
//	  - [0, 1, 2, 3, 2, 1, 0]
//	seeds:
//	  - [0, 0]
//	  - [6, 0]
//	minDepth: 3
type Scene struct {
	Gray  [][]int  `yaml:"gray"`
	Seeds [][2]int `yaml:"seeds,omitempty"`
	Mask  [][]int  `yaml:"mask,omitempty"`

	// MinDepth overrides watershed.minDepth when positive.
	MinDepth int `yaml:"minDepth,omitempty"`
}

// LoadScene reads and parses a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scene file: %w", err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing scene file: %w", err)
	}
	return &s, nil
}

// Inputs builds the grayscale grid and the seed mask of the scene.
func (s *Scene) Inputs() (gray, mask *gridgraph.GridGraph, err error) {
	gray, err = gridgraph.NewGridGraph(s.Gray, gridgraph.DefaultGridOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: gray: %w", ErrInvalidScene, err)
	}

	switch {
	case len(s.Mask) > 0 && len(s.Seeds) > 0:
		return nil, nil, fmt.Errorf("%w: both seeds and mask given", ErrInvalidScene)
	case len(s.Mask) > 0:
		mask, err = gridgraph.NewGridGraph(s.Mask, gridgraph.MaskOptions())
		if err != nil {
			return nil, nil, fmt.Errorf("%w: mask: %w", ErrInvalidScene, err)
		}
	default:
		pts := make([]gridgraph.Point, 0, len(s.Seeds))
		for _, p := range s.Seeds {
			if !gray.InBounds(p[0], p[1]) {
				return nil, nil, fmt.Errorf("%w: seed (%d,%d) outside %dx%d", ErrInvalidScene, p[0], p[1], gray.Width, gray.Height)
			}
			pts = append(pts, gridgraph.Point{X: p[0], Y: p[1]})
		}
		mask, err = gridgraph.MaskFromPoints(gray.Width, gray.Height, pts)
		if err != nil {
			return nil, nil, err
		}
	}

	return gray, mask, nil
}
