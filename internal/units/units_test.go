package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInches_RoundsToNearestUnit(t *testing.T) {
	assert.Equal(t, Dim(2400), FromInches(24.0))
	assert.Equal(t, Dim(13), FromInches(0.125))
	assert.Equal(t, Dim(33), FromInches(1.0/3.0))
}

func TestInches_RoundTrip(t *testing.T) {
	d := FromInches(48.25)
	assert.InDelta(t, 48.25, d.Inches(), 0.0001)
}

func TestParseInches(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"24", 24},
		{"24.5", 24.5},
		{" 96 ", 96},
		{"1/2", 0.5},
		{"3/4", 0.75},
		{"1 3/8", 1.375},
		{"23 15/16", 23.9375},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseInches(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 0.0001)
		})
	}
}

func TestParseInches_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1/0", "/2", "1 2 3/4", "3//4"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseInches(in)
			assert.Error(t, err)
		})
	}
}

func TestParseDim(t *testing.T) {
	d, err := ParseDim("1/8")
	require.NoError(t, err)
	assert.Equal(t, Dim(13), d)
}
