package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrain(t *testing.T) {
	tests := []struct {
		in     string
		want   Grain
		wantOK bool
	}{
		{"L", GrainAlongLength, true},
		{"l", GrainAlongLength, true},
		{"along-length", GrainAlongLength, true},
		{"W", GrainAlongWidth, true},
		{"along-width", GrainAlongWidth, true},
		{"", GrainNone, true},
		{"none", GrainNone, true},
		{"-", GrainNone, true},
		{"sideways", GrainNone, false},
	}
	for _, tc := range tests {
		t.Run("in="+tc.in, func(t *testing.T) {
			got, ok := ParseGrain(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestGrainString(t *testing.T) {
	assert.Equal(t, "none", GrainNone.String())
	assert.Equal(t, "along-length", GrainAlongLength.String())
	assert.Equal(t, "along-width", GrainAlongWidth.String())
}

func TestPieceValidate(t *testing.T) {
	assert.NoError(t, Piece{ID: 1, Length: 24, Width: 36}.Validate())

	err := Piece{ID: 2, Length: 0, Width: 36}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	assert.ErrorIs(t, Piece{ID: 3, Length: 10, Width: -1}.Validate(), ErrInvalidDimension)
}

func TestRunConfigValidate(t *testing.T) {
	cfg := DefaultRunConfig()
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.Sheet.Width = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDimension)

	bad = cfg
	bad.Kerf = -0.1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDimension)

	bad = cfg
	bad.MaxSheets = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidDimension)
}

func TestSheetLayoutEfficiency(t *testing.T) {
	layout := SheetLayout{
		Sheet: SheetSpec{Length: 96, Width: 48},
		Placements: []Placement{
			{PieceID: 0, Width: 48, Height: 48},
		},
	}
	assert.InDelta(t, 50.0, layout.Efficiency(), 0.01)
}

func TestPackingRunTotals(t *testing.T) {
	run := NewPackingRun(DefaultRunConfig())
	require.NotEmpty(t, run.ID)
	assert.Len(t, run.ID, 8)
	assert.Equal(t, 0, run.PlacedCount())
	assert.Equal(t, 0.0, run.TotalEfficiency())

	run.Sheets = []SheetLayout{
		{
			Sheet:      SheetSpec{Length: 10, Width: 10},
			Placements: []Placement{{Width: 5, Height: 10}},
		},
	}
	assert.Equal(t, 1, run.PlacedCount())
	assert.InDelta(t, 50.0, run.TotalEfficiency(), 0.01)
}
