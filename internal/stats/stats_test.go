package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_KnownSamples(t *testing.T) {
	s := Summarize("op", []float64{4, 1, 3, 2})
	assert.Equal(t, "op", s.Name)
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 2.5, s.Median)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Stdev, 1e-12)

	odd := Summarize("odd", []float64{9, 1, 5})
	assert.Equal(t, 5.0, odd.Median)
}

func TestSummarize_Degenerate(t *testing.T) {
	assert.Equal(t, Summary{Name: "empty"}, Summarize("empty", nil))
	one := Summarize("one", []float64{7})
	assert.Equal(t, 7.0, one.Mean)
	assert.Zero(t, one.Stdev)
}

func TestMeasure(t *testing.T) {
	calls := 0
	s, err := Measure("count", 10, func() error { calls++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 10, calls)
	assert.GreaterOrEqual(t, s.Min, 0.0)
	assert.LessOrEqual(t, s.Min, s.Max)

	boom := errors.New("boom")
	_, err = Measure("fail", 10, func() error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestSpeedup(t *testing.T) {
	assert.Equal(t, 4.0, Speedup(Summary{Mean: 8}, Summary{Mean: 2}))
	assert.True(t, math.IsInf(Speedup(Summary{Mean: 1}, Summary{}), 1))
}
