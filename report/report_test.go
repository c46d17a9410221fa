package report_test

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wshed/gridgraph"
	"github.com/katalvlaran/wshed/report"
	"github.com/katalvlaran/wshed/watershed"
)

func ridgeRun(t *testing.T) (*gridgraph.GridGraph, *watershed.Engine) {
	t.Helper()
	g, err := gridgraph.NewGridGraph([][]int{{0, 1, 2, 3, 2, 1, 0}}, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	m, err := gridgraph.MaskFromPoints(7, 1, []gridgraph.Point{{X: 0, Y: 0}, {X: 6, Y: 0}})
	require.NoError(t, err)
	e, err := watershed.New(g, m, 3)
	require.NoError(t, err)
	require.NoError(t, e.Run(context.Background()))
	return g, e
}

func TestSummarize(t *testing.T) {
	g, e := ridgeRun(t)
	basins, err := e.Basins()
	require.NoError(t, err)

	stats, err := report.Summarize(g, basins)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	s := stats[1]
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 0, s.Seed)
	assert.Equal(t, report.Box{X0: 0, Y0: 0, W: 3, H: 1}, s.Box)
	assert.Equal(t, 3, s.Area)
	assert.Equal(t, 0, s.Min)
	assert.Equal(t, 2, s.Depth)
	assert.InDelta(t, 1.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), s.StdDev, 1e-12)
}

func TestSummarize_Errors(t *testing.T) {
	_, err := report.Summarize(nil, nil)
	assert.ErrorIs(t, err, report.ErrNilImage)

	g, e := ridgeRun(t)
	basins, err := e.Basins()
	require.NoError(t, err)
	basins[0].Box.X = 6
	_, err = report.Summarize(g, basins)
	assert.ErrorIs(t, err, report.ErrBasinOutOfRange)
}

func TestNew(t *testing.T) {
	g, e := ridgeRun(t)
	r, err := report.New(g, e)
	require.NoError(t, err)

	assert.Equal(t, 7, r.Width)
	assert.Equal(t, 2, r.Seeds)
	assert.Equal(t, 0, r.Minima)
	assert.Equal(t, 1, r.Fillers)
	assert.InDelta(t, 6.0/7.0, r.Coverage, 1e-12)
	assert.InDelta(t, 3.0, r.MeanArea, 1e-12)

	g2, err := gridgraph.NewGridGraph([][]int{{0, 1}}, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	m2, err := gridgraph.NewBlank(2, 1, gridgraph.MaskOptions())
	require.NoError(t, err)
	notRun, err := watershed.New(g2, m2, 1)
	require.NoError(t, err)
	_, err = report.New(g2, notRun)
	assert.ErrorIs(t, err, watershed.ErrNotRun)
}

func TestWrite_Text(t *testing.T) {
	g, e := ridgeRun(t)
	r, err := report.New(g, e)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, r, report.FormatText))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "image 7x1  seeds 2  minima 0  basins 2  coverage 85.7%", lines[0])
	assert.Equal(t, []string{"#", "SEED", "LEVEL", "BOX", "AREA", "MIN", "MEAN", "STDDEV", "DEPTH"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "0", "2", "0,0", "3x1", "3", "0", "1.00", "0.82", "2"}, strings.Fields(lines[3]))
}

func TestWrite_YAML(t *testing.T) {
	g, e := ridgeRun(t)
	r, err := report.New(g, e)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, r, report.FormatYAML))
	assert.Contains(t, buf.String(), "box: {x0: 4, y0: 0, w: 3, h: 1}")
	assert.NotContains(t, buf.String(), `"y`)

	var back report.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, r.Basins, back.Basins)
	assert.Equal(t, r.Seeds, back.Seeds)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := report.Write(&bytes.Buffer{}, &report.Report{}, report.Format("csv"))
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}
