package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
	"conversations": [{
		"id": "c1",
		"title": "T",
		"mapping": {
			"n1": {"message": {
				"author": {"role": "user"},
				"create_time": 1719878400,
				"content": {"parts": ["hello"]}
			}}
		}
	}]
}`

func TestRun_SampleExport(t *testing.T) {
	res, err := Run([]byte(sampleExport), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Threads)
	assert.Equal(t, 2024, res.Metrics.Year)
	assert.Equal(t, 1, res.Metrics.TotalPrompts)
	assert.Equal(t, 1, res.Metrics.UniqueDays)
	assert.Equal(t, 1, res.Metrics.LongestStreak)
	require.Len(t, res.Metrics.Topics, 1)
	assert.Equal(t, "General", res.Metrics.Topics[0].Name)
	assert.NotEmpty(t, res.Slides)
	assert.Equal(t, "cover", res.Slides[0].ID)
}

func TestRun_InvalidJSON(t *testing.T) {
	_, err := Run([]byte("{not json"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.Contains(t, err.Error(), "normalize")
}

func TestRun_UnrecognizedShapeIsSoft(t *testing.T) {
	res, err := Run([]byte(`{"something": "else"}`),
		Options{Now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.Zero(t, res.Threads)
	assert.Zero(t, res.Metrics.TotalPrompts)
	assert.Equal(t, "No summer data found.", res.Metrics.Persona.Blurb)
	assert.NotEmpty(t, res.Slides, "empty state still renders a deck")
}

func TestRun_StripsBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleExport)...)
	res, err := Run(withBOM, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Metrics.TotalPrompts)
}

func TestRun_PinnedYearAndAliases(t *testing.T) {
	res, err := Run([]byte(sampleExport), Options{Year: 2023})
	require.NoError(t, err)
	assert.Equal(t, 2023, res.Metrics.Year)
	assert.Zero(t, res.Metrics.TotalPrompts)
}
