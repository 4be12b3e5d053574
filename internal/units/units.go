// Package units provides the fixed-point dimension type used throughout the
// placement engine. All engine geometry is expressed in integer hundredths of
// an inch so containment and equality checks are exact rather than
// epsilon-dependent.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scale is the number of internal units per inch.
const Scale = 100

// Dim is a length in hundredths of an inch.
type Dim int64

// FromInches converts a decimal inch value to internal units, rounding to
// the nearest unit.
func FromInches(v float64) Dim {
	return Dim(math.Round(v * Scale))
}

// Inches converts back to decimal inches.
func (d Dim) Inches() float64 {
	return float64(d) / Scale
}

func (d Dim) String() string {
	return strconv.FormatFloat(d.Inches(), 'f', -1, 64)
}

// ParseInches parses a dimension written as a plain decimal ("24.5"), a
// fraction ("3/4"), or a mixed number ("1 3/8"), all in inches.
func ParseInches(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty dimension")
	}

	// Mixed number: whole part followed by a fraction.
	if fields := strings.Fields(s); len(fields) == 2 && strings.Contains(fields[1], "/") {
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid mixed number %q", s)
		}
		frac, err := parseFraction(fields[1])
		if err != nil {
			return 0, err
		}
		return whole + frac, nil
	}

	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid dimension %q", s)
	}
	return v, nil
}

// ParseDim is ParseInches followed by conversion to internal units.
func ParseDim(s string) (Dim, error) {
	v, err := ParseInches(s)
	if err != nil {
		return 0, err
	}
	return FromInches(v), nil
}

func parseFraction(s string) (float64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || den == 0 {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	return num / den, nil
}
