// Package cutlist turns cut-list input into engine pieces. It parses the
// plain-text notation (one piece spec per line) and imports CSV and Excel
// part lists with automatic delimiter detection and flexible column mapping.
package cutlist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/units"
)

// ParseResult holds the pieces recovered from an input batch. Malformed
// entries are reported in Warnings and skipped; Errors holds conditions
// that prevented reading the batch at all.
type ParseResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// ParseText reads the plain-text cut-list notation: one entry per line,
//
//	[<quantity>@]<length>x<width>[ <grain>]
//
// Dimensions accept decimals ("24.5"), fractions ("3/4") and mixed numbers
// ("23 15/16"). The optional trailing grain letter is L (along length) or
// W (along width). Blank lines and lines starting with '#' are ignored;
// malformed lines are skipped with a warning.
func ParseText(r io.Reader) ParseResult {
	var result ParseResult

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pieces, err := parseLine(line, len(result.Pieces))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: %v, skipping", lineNum, err))
			continue
		}
		result.Pieces = append(result.Pieces, pieces...)
	}
	if err := scanner.Err(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read input: %v", err))
	}
	return result
}

// ParseString is ParseText over an in-memory cut list.
func ParseString(s string) ParseResult {
	return ParseText(strings.NewReader(s))
}

// parseLine expands one entry into its pieces, numbering them from nextID+1.
func parseLine(line string, nextID int) ([]model.Piece, error) {
	spec := line
	qty := 1

	if at := strings.Index(spec, "@"); at >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(spec[:at]))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid quantity %q", strings.TrimSpace(spec[:at]))
		}
		qty = n
		spec = strings.TrimSpace(spec[at+1:])
	}

	grain := model.GrainNone
	if g, rest, ok := trailingGrain(spec); ok {
		grain = g
		spec = rest
	}

	xi := splitDimensions(spec)
	if xi < 0 {
		return nil, fmt.Errorf("expected <length>x<width> in %q", line)
	}
	length, err := units.ParseInches(spec[:xi])
	if err != nil {
		return nil, fmt.Errorf("invalid length %q", strings.TrimSpace(spec[:xi]))
	}
	width, err := units.ParseInches(spec[xi+1:])
	if err != nil {
		return nil, fmt.Errorf("invalid width %q", strings.TrimSpace(spec[xi+1:]))
	}
	if length <= 0 || width <= 0 {
		return nil, fmt.Errorf("non-positive dimensions in %q", line)
	}

	pieces := make([]model.Piece, 0, qty)
	for i := 0; i < qty; i++ {
		pieces = append(pieces, model.Piece{
			ID:     nextID + i + 1,
			Length: length,
			Width:  width,
			Grain:  grain,
		})
	}
	return pieces, nil
}

// trailingGrain strips an optional grain letter from the end of a spec.
// The letter must stand alone after whitespace so fraction parts such as
// "15/16" are never mistaken for it.
func trailingGrain(spec string) (model.Grain, string, bool) {
	fields := strings.Fields(spec)
	if len(fields) < 2 {
		return model.GrainNone, spec, false
	}
	last := fields[len(fields)-1]
	if len(last) != 1 {
		return model.GrainNone, spec, false
	}
	switch last {
	case "L", "l":
		return model.GrainAlongLength, strings.Join(fields[:len(fields)-1], " "), true
	case "W", "w":
		return model.GrainAlongWidth, strings.Join(fields[:len(fields)-1], " "), true
	}
	return model.GrainNone, spec, false
}

// splitDimensions finds the index of the 'x' separating length from width.
// The separator must sit between digit-bearing text on both sides, which
// keeps it distinct from any 'x' inside labels.
func splitDimensions(spec string) int {
	for i, c := range spec {
		if c != 'x' && c != 'X' {
			continue
		}
		if strings.ContainsAny(spec[:i], "0123456789") && strings.ContainsAny(spec[i+1:], "0123456789") {
			return i
		}
	}
	return -1
}
