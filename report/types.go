package report

import (
	"errors"

	"github.com/katalvlaran/wshed/gridgraph"
)

// Sentinel errors returned by report.
var (
	// ErrNilImage indicates Summarize received no grayscale image.
	ErrNilImage = errors.New("report: nil image")

	// ErrBasinOutOfRange indicates a basin box that does not fit the image.
	ErrBasinOutOfRange = errors.New("report: basin outside image")

	// ErrUnknownFormat indicates an output format other than text or yaml.
	ErrUnknownFormat = errors.New("report: unknown output format")
)

// Format selects the rendering used by Write.
type Format string

const (
	// FormatText renders an aligned table.
	FormatText Format = "text"
	// FormatYAML renders the report as a YAML document.
	FormatYAML Format = "yaml"
)

// Box is a basin bounding box. The origin keys are x0/y0 so that YAML
// encoders never quote them.
type Box struct {
	X0 int `yaml:"x0"`
	Y0 int `yaml:"y0"`
	W  int `yaml:"w"`
	H  int `yaml:"h"`
}

func boxOf(b gridgraph.Box) Box {
	return Box{X0: b.X, Y0: b.Y, W: b.W, H: b.H}
}

// BasinStats describes one emitted basin against the source image.
type BasinStats struct {
	Index  int     `yaml:"index"`
	Seed   int     `yaml:"seed"`
	Box    Box     `yaml:"box,flow"`
	Level  int     `yaml:"level"`
	Area   int     `yaml:"area"`
	Min    int     `yaml:"min"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stdDev"`

	// Depth is Level minus Min.
	Depth int `yaml:"depth"`
}

// Report summarizes one completed run.
type Report struct {
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Seeds    int          `yaml:"seeds"`
	Minima   int          `yaml:"minima"`
	Pops     int          `yaml:"pops"`
	Merges   int          `yaml:"merges"`
	Fillers  int          `yaml:"fillers"`
	Coverage float64      `yaml:"coverage"` // share of pixels inside some basin
	MeanArea float64      `yaml:"meanArea"`
	Basins   []BasinStats `yaml:"basins"`
}
