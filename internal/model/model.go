package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Grain represents the grain direction constraint for a piece.
type Grain int

const (
	GrainNone        Grain = iota // No grain constraint, can rotate freely
	GrainAlongLength              // Grain must run along the sheet's length axis
	GrainAlongWidth               // Grain must run along the sheet's width axis
)

func (g Grain) String() string {
	switch g {
	case GrainAlongLength:
		return "along-length"
	case GrainAlongWidth:
		return "along-width"
	default:
		return "none"
	}
}

// ParseGrain converts a grain direction string to a Grain value. It accepts
// the long form used in JSON payloads and the single-letter cut-list suffix.
// The boolean reports whether the string was recognized.
func ParseGrain(s string) (Grain, bool) {
	switch s {
	case "L", "l", "along-length", "length":
		return GrainAlongLength, true
	case "W", "w", "along-width", "width":
		return GrainAlongWidth, true
	case "", "none", "n", "-", "any":
		return GrainNone, true
	default:
		return GrainNone, false
	}
}

// Sentinel errors for the conditions in the error taxonomy.
var (
	ErrInvalidDimension   = errors.New("invalid dimension")
	ErrSheetLimitExceeded = errors.New("sheet limit exceeded")
)

// Piece is a single requested cut, in inches. Pieces are created once per
// optimization run and never mutated.
type Piece struct {
	ID     int     `json:"id"`
	Label  string  `json:"label,omitempty"`
	Length float64 `json:"length"` // inches, along the sheet's length axis when unrotated
	Width  float64 `json:"width"`  // inches
	Grain  Grain   `json:"grain"`
}

// Area returns the piece area in square inches.
func (p Piece) Area() float64 {
	return p.Length * p.Width
}

// Validate reports ErrInvalidDimension for non-positive dimensions.
func (p Piece) Validate() error {
	if p.Length <= 0 || p.Width <= 0 {
		return fmt.Errorf("piece %d: %.4g x %.4g: %w", p.ID, p.Length, p.Width, ErrInvalidDimension)
	}
	return nil
}

// SheetSpec is the material size all sheets in a run share, in inches.
// Length runs down the Y axis, width across the X axis (origin top-left).
type SheetSpec struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

func (s SheetSpec) Validate() error {
	if s.Length <= 0 || s.Width <= 0 {
		return fmt.Errorf("sheet %.4g x %.4g: %w", s.Length, s.Width, ErrInvalidDimension)
	}
	return nil
}

// RunConfig holds everything the engine needs besides the pieces.
type RunConfig struct {
	Sheet     SheetSpec `json:"sheet"`
	Kerf      float64   `json:"kerf"`       // blade width allowance, inches
	MaxSheets int       `json:"max_sheets"` // bounded resource guard
}

// DefaultRunConfig mirrors the defaults of the original interactive form:
// a 96x48 inch sheet, a 1/8 inch kerf and a 100 sheet cap.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Sheet:     SheetSpec{Length: 96, Width: 48},
		Kerf:      0.125,
		MaxSheets: 100,
	}
}

func (c RunConfig) Validate() error {
	if err := c.Sheet.Validate(); err != nil {
		return err
	}
	if c.Kerf < 0 {
		return fmt.Errorf("kerf %.4g: %w", c.Kerf, ErrInvalidDimension)
	}
	if c.MaxSheets < 1 {
		return fmt.Errorf("max sheets %d: %w", c.MaxSheets, ErrInvalidDimension)
	}
	return nil
}

// Placement is a single piece placed on a sheet, reported in inches with
// the kerf allowance already removed.
type Placement struct {
	PieceID int     `json:"piece_id"`
	X       float64 `json:"x"`       // from the sheet's left edge
	Y       float64 `json:"y"`       // from the sheet's top edge
	Width   float64 `json:"width"`   // cut size across the width axis
	Height  float64 `json:"height"`  // cut size along the length axis
	Rotated bool    `json:"rotated"` // whether the piece was rotated 90 degrees
}

// SheetLayout is one opened sheet with its placements, in placement order.
type SheetLayout struct {
	Index      int         `json:"index"`
	Sheet      SheetSpec   `json:"sheet"`
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total area covered by placed pieces, in square inches.
func (s SheetLayout) UsedArea() float64 {
	var total float64
	for _, p := range s.Placements {
		total += p.Width * p.Height
	}
	return total
}

// TotalArea returns the sheet area in square inches.
func (s SheetLayout) TotalArea() float64 {
	return s.Sheet.Length * s.Sheet.Width
}

// Efficiency returns the usage percentage.
func (s SheetLayout) Efficiency() float64 {
	ta := s.TotalArea()
	if ta == 0 {
		return 0
	}
	return (s.UsedArea() / ta) * 100.0
}

// UnplacedReason explains why a piece could not be placed.
type UnplacedReason string

const (
	ReasonPieceExceedsSheet  UnplacedReason = "PieceExceedsSheet"
	ReasonSheetLimitExceeded UnplacedReason = "SheetLimitExceeded"
)

// UnplacedPiece pairs a piece id with the reason it was skipped.
type UnplacedPiece struct {
	PieceID int            `json:"piece_id"`
	Reason  UnplacedReason `json:"reason"`
}

// PackingRun is the result of one optimization invocation.
type PackingRun struct {
	ID       string          `json:"id"`
	Config   RunConfig       `json:"config"`
	Sheets   []SheetLayout   `json:"sheets"`
	Unplaced []UnplacedPiece `json:"unplaced_pieces"`
}

// NewPackingRun creates an empty run tagged with a short unique id.
func NewPackingRun(cfg RunConfig) *PackingRun {
	return &PackingRun{
		ID:     uuid.New().String()[:8],
		Config: cfg,
	}
}

// PlacedCount returns the number of placements across all sheets.
func (r *PackingRun) PlacedCount() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Placements)
	}
	return n
}

// TotalEfficiency returns overall material usage percentage.
func (r *PackingRun) TotalEfficiency() float64 {
	var used, total float64
	for _, s := range r.Sheets {
		used += s.UsedArea()
		total += s.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}
