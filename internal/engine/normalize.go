package engine

import (
	"fmt"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/units"
)

// Orientation identifies how a piece footprint is laid onto the sheet.
type Orientation int

const (
	// OrientAsGiven places the piece length along the sheet's length axis.
	OrientAsGiven Orientation = iota
	// OrientRotated90 swaps the piece axes.
	OrientRotated90
)

func (o Orientation) String() string {
	if o == OrientRotated90 {
		return "rotated-90"
	}
	return "as-given"
}

// footprint is an axis-aligned extent: w across the sheet's width axis (X),
// h down the length axis (Y).
type footprint struct {
	w, h units.Dim
}

func (f footprint) area() int64 {
	return int64(f.w) * int64(f.h)
}

// effectivePiece is the normalized form of a Piece: exact fixed-point
// dimensions, the kerf-inflated footprint, and the orientation policy
// derived from the grain constraint.
type effectivePiece struct {
	piece        model.Piece
	length       units.Dim
	width        units.Dim
	kerf         units.Dim
	orientations []Orientation
}

// size returns the oriented material extent, without kerf.
func (e effectivePiece) size(o Orientation) footprint {
	if o == OrientRotated90 {
		return footprint{w: e.length, h: e.width}
	}
	return footprint{w: e.width, h: e.length}
}

// footprint returns the oriented placement extent including the kerf
// allowance on the trailing edges.
func (e effectivePiece) footprint(o Orientation) footprint {
	s := e.size(o)
	return footprint{w: s.w + e.kerf, h: s.h + e.kerf}
}

// maxEdge returns the longer footprint dimension, used as a sort tiebreak.
func (e effectivePiece) maxEdge() units.Dim {
	fp := e.footprint(OrientAsGiven)
	if fp.w > fp.h {
		return fp.w
	}
	return fp.h
}

// normalizePiece converts a Piece into its effective placement form.
//
// The grain policy forces a single orientation for grained pieces: grain
// along the length axis keeps the piece's longer physical dimension on that
// axis, grain along the width axis is symmetric, and a square piece stays
// as given. Grain-free pieces may use either orientation.
func normalizePiece(p model.Piece, kerf units.Dim) (effectivePiece, error) {
	if err := p.Validate(); err != nil {
		return effectivePiece{}, err
	}

	ep := effectivePiece{
		piece:  p,
		length: units.FromInches(p.Length),
		width:  units.FromInches(p.Width),
		kerf:   kerf,
	}
	if ep.length <= 0 || ep.width <= 0 {
		return effectivePiece{}, fmt.Errorf("piece %d rounds to zero size: %w", p.ID, model.ErrInvalidDimension)
	}

	switch p.Grain {
	case model.GrainAlongLength:
		if ep.length >= ep.width {
			ep.orientations = []Orientation{OrientAsGiven}
		} else {
			ep.orientations = []Orientation{OrientRotated90}
		}
	case model.GrainAlongWidth:
		if ep.width >= ep.length {
			ep.orientations = []Orientation{OrientAsGiven}
		} else {
			ep.orientations = []Orientation{OrientRotated90}
		}
	default:
		ep.orientations = []Orientation{OrientAsGiven, OrientRotated90}
	}
	return ep, nil
}
