// Package report measures emitted watershed basins against their source
// image and renders a run as an aligned text table or a YAML document.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wshed/gridgraph"
	"github.com/katalvlaran/wshed/watershed"
)

// Summarize measures every basin against the intensities of gray.
// StdDev is the population standard deviation of the basin pixels.
func Summarize(gray *gridgraph.GridGraph, basins []watershed.Basin) ([]BasinStats, error) {
	if gray == nil {
		return nil, ErrNilImage
	}
	out := make([]BasinStats, 0, len(basins))
	var vals []float64
	for i, b := range basins {
		if b.Mask == nil || b.Box.Empty() ||
			!gray.InBounds(b.Box.X, b.Box.Y) || !gray.InBounds(b.Box.X+b.Box.W-1, b.Box.Y+b.Box.H-1) {
			return nil, fmt.Errorf("%w: basin %d box %+v in %dx%d", ErrBasinOutOfRange, i, b.Box, gray.Width, gray.Height)
		}
		vals = vals[:0]
		for y := 0; y < b.Box.H; y++ {
			for x := 0; x < b.Box.W; x++ {
				if b.Mask.Value(x, y) != 0 {
					vals = append(vals, float64(gray.Value(b.Box.X+x, b.Box.Y+y)))
				}
			}
		}
		bs := BasinStats{Index: i, Seed: b.Seed, Box: boxOf(b.Box), Level: b.Level, Area: len(vals)}
		if len(vals) > 0 {
			bs.Min = int(floats.Min(vals))
			bs.Mean, bs.StdDev = stat.PopMeanStdDev(vals, nil)
			bs.Depth = b.Level - bs.Min
		}
		out = append(out, bs)
	}

	return out, nil
}

// New builds the report of a completed engine run over gray.
func New(gray *gridgraph.GridGraph, e *watershed.Engine) (*Report, error) {
	basins, err := e.Basins()
	if err != nil {
		return nil, err
	}
	bs, err := Summarize(gray, basins)
	if err != nil {
		return nil, err
	}
	st := e.Stats()
	r := &Report{
		Width:   gray.Width,
		Height:  gray.Height,
		Seeds:   len(e.Seeds()),
		Minima:  len(e.Minima()),
		Pops:    st.Pops,
		Merges:  st.Merges,
		Fillers: st.Fillers,
		Basins:  bs,
	}
	if len(bs) > 0 {
		areas := make([]float64, len(bs))
		for i, b := range bs {
			areas[i] = float64(b.Area)
		}
		r.Coverage = floats.Sum(areas) / float64(gray.Width*gray.Height)
		r.MeanArea = stat.Mean(areas, nil)
	}

	return r, nil
}

// Write renders r to w in the requested format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "image %dx%d  seeds %d  minima %d  basins %d  coverage %.1f%%\n",
		r.Width, r.Height, r.Seeds, r.Minima, len(r.Basins), 100*r.Coverage)
	if len(r.Basins) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSEED\tLEVEL\tBOX\tAREA\tMIN\tMEAN\tSTDDEV\tDEPTH")
	for _, b := range r.Basins {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d,%d %dx%d\t%d\t%d\t%.2f\t%.2f\t%d\n",
			b.Index, b.Seed, b.Level, b.Box.X0, b.Box.Y0, b.Box.W, b.Box.H,
			b.Area, b.Min, b.Mean, b.StdDev, b.Depth)
	}

	return tw.Flush()
}
