package cutlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/plycut/internal/model"
)

func TestParseTextBasic(t *testing.T) {
	result := ParseString("24x48\n")
	require.Empty(t, result.Errors)
	require.Empty(t, result.Warnings)
	require.Len(t, result.Pieces, 1)

	p := result.Pieces[0]
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, 24.0, p.Length)
	assert.Equal(t, 48.0, p.Width)
	assert.Equal(t, model.GrainNone, p.Grain)
}

func TestParseTextQuantityAndGrain(t *testing.T) {
	result := ParseString("3@24x12 L\n2@8x16 W\n")
	require.Empty(t, result.Warnings)
	require.Len(t, result.Pieces, 5)

	for i, p := range result.Pieces[:3] {
		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, 24.0, p.Length)
		assert.Equal(t, 12.0, p.Width)
		assert.Equal(t, model.GrainAlongLength, p.Grain)
	}
	for i, p := range result.Pieces[3:] {
		assert.Equal(t, i+4, p.ID)
		assert.Equal(t, 8.0, p.Length)
		assert.Equal(t, 16.0, p.Width)
		assert.Equal(t, model.GrainAlongWidth, p.Grain)
	}
}

func TestParseTextFractions(t *testing.T) {
	tests := []struct {
		line       string
		wantLength float64
		wantWidth  float64
		wantGrain  model.Grain
	}{
		{"24.5x18", 24.5, 18, model.GrainNone},
		{"3/4x1/2", 0.75, 0.5, model.GrainNone},
		{"1 3/8x2 1/2 W", 1.375, 2.5, model.GrainAlongWidth},
		{"23 15/16x47 7/8 l", 23.9375, 47.875, model.GrainAlongLength},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			result := ParseString(tc.line)
			require.Empty(t, result.Warnings, "line should parse cleanly")
			require.Len(t, result.Pieces, 1)
			p := result.Pieces[0]
			assert.InDelta(t, tc.wantLength, p.Length, 1e-9)
			assert.InDelta(t, tc.wantWidth, p.Width, 1e-9)
			assert.Equal(t, tc.wantGrain, p.Grain)
		})
	}
}

func TestParseTextSkipsMalformedLines(t *testing.T) {
	input := "24x48\nnot a piece\n0@10x10\n24x\n12x12\n"
	result := ParseString(input)

	require.Len(t, result.Pieces, 2)
	assert.Equal(t, 24.0, result.Pieces[0].Length)
	assert.Equal(t, 12.0, result.Pieces[1].Length)
	assert.Len(t, result.Warnings, 3)
	for _, w := range result.Warnings {
		assert.Contains(t, w, "skipping")
	}
}

func TestParseTextIgnoresBlankAndComments(t *testing.T) {
	result := ParseString("\n# shelf parts\n24x48\n\n  \n")
	assert.Empty(t, result.Warnings)
	assert.Len(t, result.Pieces, 1)
}
