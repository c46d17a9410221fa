package gridgraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wshed/gridgraph"
)

func gray(t *testing.T, rows [][]int) *gridgraph.GridGraph {
	t.Helper()
	g, err := gridgraph.NewGridGraph(rows, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	return g
}

func mask(t *testing.T, rows [][]int) *gridgraph.GridGraph {
	t.Helper()
	m, err := gridgraph.NewGridGraph(rows, gridgraph.MaskOptions())
	require.NoError(t, err)
	return m
}

func TestSelectMinInComponents(t *testing.T) {
	src := gray(t, [][]int{
		{9, 3, 9, 9, 9},
		{9, 2, 9, 7, 7},
		{9, 9, 9, 9, 9},
		{1, 9, 9, 4, 9},
	})
	m := mask(t, [][]int{
		{0, 1, 0, 0, 0},
		{1, 1, 0, 1, 1},
		{0, 0, 0, 0, 0},
		{1, 0, 0, 1, 0},
	})

	pts, mins, err := gridgraph.SelectMinInComponents(src, m)
	require.NoError(t, err)
	assert.Equal(t, []gridgraph.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 0, Y: 3}, {X: 3, Y: 3}}, pts)
	assert.Equal(t, []int{2, 7, 1, 4}, mins)
}

func TestSelectMinInComponents_TieTakesRasterFirst(t *testing.T) {
	src := gray(t, [][]int{{5, 5, 5}})
	m := mask(t, [][]int{{1, 1, 1}})
	pts, mins, err := gridgraph.SelectMinInComponents(src, m)
	require.NoError(t, err)
	assert.Equal(t, []gridgraph.Point{{X: 0, Y: 0}}, pts)
	assert.Equal(t, []int{5}, mins)
}

func TestSelectMinInComponents_Errors(t *testing.T) {
	src := gray(t, [][]int{{1, 2}})
	m := mask(t, [][]int{{1, 0}})

	_, _, err := gridgraph.SelectMinInComponents(m, m)
	assert.ErrorIs(t, err, gridgraph.ErrDepthMismatch)
	_, _, err = gridgraph.SelectMinInComponents(src, src)
	assert.ErrorIs(t, err, gridgraph.ErrDepthMismatch)
	_, _, err = gridgraph.SelectMinInComponents(src, mask(t, [][]int{{1}}))
	assert.ErrorIs(t, err, gridgraph.ErrSizeMismatch)
}

func TestLocalMinima_TwoPits(t *testing.T) {
	src := gray(t, [][]int{
		{5, 5, 5, 5, 5, 5},
		{5, 1, 5, 5, 5, 5},
		{5, 5, 5, 5, 2, 5},
		{5, 5, 5, 5, 5, 5},
	})
	lm, err := gridgraph.LocalMinima(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, lm.Count())
	assert.Equal(t, 1, lm.Value(1, 1))
	assert.Equal(t, 1, lm.Value(4, 2))
}

func TestLocalMinima_PlateauQualifies(t *testing.T) {
	src := gray(t, [][]int{
		{9, 9, 9, 9},
		{9, 3, 3, 9},
		{9, 9, 9, 9},
	})
	lm, err := gridgraph.LocalMinima(src, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	}, lm.Rows())
}

func TestLocalMinima_ShelfIsRejected(t *testing.T) {
	// The 3-valued cells each equal their 3×3 minimum on one side, but the
	// group touches a lower cell, so it is not a regional minimum.
	src := gray(t, [][]int{
		{9, 9, 9, 9, 9},
		{9, 3, 3, 2, 9},
		{9, 9, 9, 9, 9},
	})
	lm, err := gridgraph.LocalMinima(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, lm.Count())
	assert.Equal(t, 1, lm.Value(3, 1))
}

func TestLocalMinima_MaxValueAndFlat(t *testing.T) {
	src := gray(t, [][]int{
		{250, 250, 250},
		{250, 220, 250},
		{250, 250, 250},
	})
	lm, err := gridgraph.LocalMinima(src, 200)
	require.NoError(t, err)
	assert.Equal(t, 0, lm.Count(), "minimum above maxValue must be dropped")

	flat := gray(t, [][]int{{4, 4}, {4, 4}})
	lm, err = gridgraph.LocalMinima(flat, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, lm.Count(), "a flat image is one regional minimum")

	_, err = gridgraph.LocalMinima(mask(t, [][]int{{1}}), 0)
	assert.True(t, errors.Is(err, gridgraph.ErrDepthMismatch))
}

func TestRemoveSeededComponents(t *testing.T) {
	m := mask(t, [][]int{
		{1, 1, 0, 0},
		{0, 0, 0, 1},
		{1, 0, 0, 1},
	})
	out, err := gridgraph.RemoveSeededComponents(m, []gridgraph.Point{{X: 3, Y: 2}, {X: 9, Y: 9}, {X: 2, Y: 0}})
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{1, 1, 0, 0},
		{0, 0, 0, 0},
		{1, 0, 0, 0},
	}, out.Rows())
	assert.Equal(t, 5, m.Count(), "input mask must not be modified")

	_, err = gridgraph.RemoveSeededComponents(gray(t, [][]int{{1}}), nil)
	assert.ErrorIs(t, err, gridgraph.ErrDepthMismatch)
}

func TestClearBorderAndMaskFromPoints(t *testing.T) {
	m, err := gridgraph.MaskFromPoints(5, 5, []gridgraph.Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 1}, {X: -1, Y: 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Count())

	m.ClearBorder(0)
	assert.Equal(t, 3, m.Count())
	m.ClearBorder(1)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 1, m.Value(2, 2))
}
