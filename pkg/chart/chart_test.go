package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gridsim/core/grid"
)

func TestRenderPNG(t *testing.T) {
	res, err := grid.Simulate([]float64{100, 90, 80}, []float64{150, 60}, grid.Params{StorageCapacity: 50})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, res))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestNewLabels(t *testing.T) {
	res, err := grid.Simulate([]float64{1}, []float64{2}, grid.Params{StorageCapacity: 1})
	require.NoError(t, err)
	p, err := New(res)
	require.NoError(t, err)
	assert.Equal(t, "Time Steps", p.X.Label.Text)
	assert.Equal(t, "Power(KW)", p.Y.Label.Text)
}

func TestRenderNonFiniteLeavesGaps(t *testing.T) {
	res, err := grid.Simulate([]float64{10, math.NaN(), 30}, []float64{20, math.Inf(1), 5}, grid.Params{StorageCapacity: 50})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, res))
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestRenderAllNaN(t *testing.T) {
	res, err := grid.Simulate([]float64{math.NaN()}, []float64{math.NaN()}, grid.Params{StorageCapacity: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, res))
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestSegments(t *testing.T) {
	segs := segments([]int{1, 2, 3, 4, 5}, []float64{1, math.NaN(), 3, 4, math.Inf(-1)})
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 1)
	assert.Len(t, segs[1], 2)
	assert.Equal(t, 3.0, segs[1][0].X)

	assert.Empty(t, segments([]int{1}, []float64{math.NaN()}))
}
