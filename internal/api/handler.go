// Package api serves the indicator engine over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/indicators"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/engine"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/metrics"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/report"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

// ComputeRequest is the body of POST /v1/indicators.
type ComputeRequest struct {
	Symbol     string            `json:"symbol"`
	Bars       []pricing.Record  `json:"bars"`
	Indicators []indicators.Spec `json:"indicators"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Index *int   `json:"index,omitempty"`
}

type Handler struct {
	engine  *engine.Engine
	reports *report.Builder
	metrics *metrics.Metrics
	logger  *zap.Logger
	maxBars int
}

func NewHandler(e *engine.Engine, reports *report.Builder, m *metrics.Metrics, logger *zap.Logger, maxBars int) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: e, reports: reports, metrics: m, logger: logger, maxBars: maxBars}
}

// Compute normalizes the submitted bars and returns a report with one
// result per requested indicator.
//
// Short series are not errors: their results simply have empty lines.
func (h *Handler) Compute(c *gin.Context) {
	var req ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if h.maxBars > 0 && len(req.Bars) > h.maxBars {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "too many bars"})
		return
	}
	if h.metrics != nil {
		h.metrics.BarsPerRequest.Observe(float64(len(req.Bars)))
	}

	bars, err := pricing.Normalize(req.Bars)
	if err != nil {
		resp := ErrorResponse{Error: err.Error()}
		var me *pricing.MalformedError
		if errors.As(err, &me) {
			resp.Field = me.Field
			resp.Index = &me.Index
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	results, err := h.engine.ComputeAll(c.Request.Context(), bars, req.Indicators)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, indicators.ErrInvalidSpec) || errors.Is(err, indicators.ErrUnknownIndicator) {
			status = http.StatusBadRequest
		}
		if status == http.StatusInternalServerError {
			h.logger.Error("compute indicators", zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.reports.Build(req.Symbol, bars, results))
}

// List returns the supported indicator names.
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"indicators": indicators.Names()})
}

// Health is a liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
