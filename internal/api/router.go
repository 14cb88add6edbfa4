package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/metrics"
)

// NewRouter wires the indicator routes onto a gin engine.
func NewRouter(h *Handler, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger, m))

	r.GET("/healthz", Health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	v1 := r.Group("/v1")
	{
		v1.GET("/indicators", h.List)
		v1.POST("/indicators", h.Compute)
	}

	return r
}

func requestLogger(logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if m != nil && c.FullPath() != "/metrics" {
			m.RequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
		}
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
