package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/plycut/internal/cutlist"
	"github.com/piwi3910/plycut/internal/engine"
	"github.com/piwi3910/plycut/internal/logger"
	"github.com/piwi3910/plycut/internal/model"
)

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

// pieceRequest is one requested cut in an optimize payload.
type pieceRequest struct {
	Label    string  `json:"label,omitempty"`
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Quantity int     `json:"quantity,omitempty"`
	Grain    string  `json:"grain,omitempty"`
}

// optimizeRequest carries the pieces and optional config overrides.
type optimizeRequest struct {
	Sheet     *model.SheetSpec `json:"sheet,omitempty"`
	Kerf      *float64         `json:"kerf,omitempty"`
	MaxSheets *int             `json:"max_sheets,omitempty"`
	Pieces    []pieceRequest   `json:"pieces"`
}

// optimizeResponse wraps the packing run with any input warnings.
type optimizeResponse struct {
	Run      *model.PackingRun `json:"run"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Handler serves the optimization endpoints over a base run configuration.
type Handler struct {
	defaults model.RunConfig
}

// NewHandler creates a Handler with the given default run configuration.
func NewHandler(defaults model.RunConfig) *Handler {
	return &Handler{defaults: defaults}
}

// resolveConfig applies the request's overrides to the default config.
func (h *Handler) resolveConfig(sheet *model.SheetSpec, kerf *float64, maxSheets *int) model.RunConfig {
	cfg := h.defaults
	if sheet != nil {
		cfg.Sheet = *sheet
	}
	if kerf != nil {
		cfg.Kerf = *kerf
	}
	if maxSheets != nil {
		cfg.MaxSheets = *maxSheets
	}
	return cfg
}

// Optimize handles POST /api/v1/optimize with a JSON piece list.
func (h *Handler) Optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if len(req.Pieces) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "no pieces provided"})
		return
	}

	var warnings []string
	pieces := make([]model.Piece, 0, len(req.Pieces))
	for _, pr := range req.Pieces {
		grain, ok := model.ParseGrain(pr.Grain)
		if !ok {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown grain direction: " + pr.Grain})
			return
		}
		qty := pr.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "quantity must be positive"})
			return
		}
		for i := 0; i < qty; i++ {
			pieces = append(pieces, model.Piece{
				ID:     len(pieces) + 1,
				Label:  pr.Label,
				Length: pr.Length,
				Width:  pr.Width,
				Grain:  grain,
			})
		}
	}

	h.runOptimize(c, h.resolveConfig(req.Sheet, req.Kerf, req.MaxSheets), pieces, warnings)
}

// cutlistRequest carries the plain-text notation with optional overrides.
type cutlistRequest struct {
	Sheet     *model.SheetSpec `json:"sheet,omitempty"`
	Kerf      *float64         `json:"kerf,omitempty"`
	MaxSheets *int             `json:"max_sheets,omitempty"`
	CutList   string           `json:"cut_list"`
}

// OptimizeCutList handles POST /api/v1/optimize/cutlist, accepting the
// text notation ("2@24x48 L" style) in the cut_list field.
func (h *Handler) OptimizeCutList(c *gin.Context) {
	var req cutlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	parsed := cutlist.ParseString(req.CutList)
	if len(parsed.Errors) > 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: parsed.Errors[0]})
		return
	}
	if len(parsed.Pieces) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "no valid pieces in cut list"})
		return
	}

	h.runOptimize(c, h.resolveConfig(req.Sheet, req.Kerf, req.MaxSheets), parsed.Pieces, parsed.Warnings)
}

// runOptimize executes a run and writes the JSON response, recording
// metrics along the way.
func (h *Handler) runOptimize(c *gin.Context, cfg model.RunConfig, pieces []model.Piece, warnings []string) {
	start := time.Now()
	run, err := engine.New(cfg).Optimize(pieces)
	if err != nil {
		optimizeRunsTotal.WithLabelValues("error").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrInvalidDimension) {
			status = http.StatusBadRequest
		}
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}

	optimizeRunsTotal.WithLabelValues("ok").Inc()
	optimizeRunDuration.Observe(time.Since(start).Seconds())
	optimizeSheetsUsed.Observe(float64(len(run.Sheets)))

	l := logger.Logger()
	l.Info().
		Str("request_id", getRequestID(c)).
		Str("run_id", run.ID).
		Int("pieces", len(pieces)).
		Int("placed", run.PlacedCount()).
		Int("sheets", len(run.Sheets)).
		Float64("efficiency", run.TotalEfficiency()).
		Msg("optimization run completed")

	c.JSON(http.StatusOK, optimizeResponse{Run: run, Warnings: warnings})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
