package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voltguard/backend/internal/service"
)

// Analytics endpoints are advisory, not transactional: a store failure must
// not surface as an error to the dashboard. Predictions fall back to the
// fixed placeholder set; the other endpoints return zeroed structures.

// @Summary Risk predictions
// @Tags analytics
// @Produce json
// @Success 200 {array} models.Prediction
// @Router /api/predictions [get]
func (h *Handler) Predictions(c *gin.Context) {
	now := time.Now().UTC()
	incidents, err := h.Store.ListIncidents(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("store unavailable, serving fallback predictions")
		c.JSON(http.StatusOK, service.FallbackPredictions())
		return
	}
	aggregates := service.Aggregate(incidents, now, h.RecencyWindow)
	c.JSON(http.StatusOK, service.Predict(aggregates, now))
}

// @Summary Campus heatmap
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]models.HeatmapCell
// @Router /api/heatmap [get]
func (h *Handler) Heatmap(c *gin.Context) {
	now := time.Now().UTC()
	incidents, err := h.Store.ListIncidents(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("store unavailable, serving empty heatmap")
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, service.Heatmap(incidents, now, h.HeatmapWindow))
}

// @Summary Weekly and severity trends
// @Tags analytics
// @Produce json
// @Success 200 {object} service.Trends
// @Router /api/analytics/trends [get]
func (h *Handler) Trends(c *gin.Context) {
	incidents, err := h.Store.ListIncidents(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("store unavailable, serving empty trends")
		c.JSON(http.StatusOK, service.ComputeTrends(nil))
		return
	}
	c.JSON(http.StatusOK, service.ComputeTrends(incidents))
}

// @Summary Incident age distribution
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/analytics/aging [get]
func (h *Handler) Aging(c *gin.Context) {
	now := time.Now().UTC()
	incidents, err := h.Store.ListIncidents(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("store unavailable, serving zeroed aging buckets")
		c.JSON(http.StatusOK, service.Aging(nil, now))
		return
	}
	c.JSON(http.StatusOK, service.Aging(incidents, now))
}
