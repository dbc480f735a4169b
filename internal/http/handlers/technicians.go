package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voltguard/backend/internal/models"
	"github.com/voltguard/backend/internal/service"
)

// @Summary Technician roster
// @Tags technicians
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/technicians [get]
func (h *Handler) TechniciansList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Roster.List()})
}

type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// @Summary Toggle technician availability
// @Tags technicians
// @Accept json
// @Produce json
// @Param id path string true "Technician ID"
// @Param request body AvailabilityRequest true "availability flag"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/technicians/{id}/availability [put]
func (h *Handler) SetTechnicianAvailability(c *gin.Context) {
	id := c.Param("id")
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	orphaned, err := h.Roster.SetAvailability(id, *req.Available)
	if err != nil {
		if errors.Is(err, service.ErrTechnicianNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Technician not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update technician", err.Error())
		return
	}

	// Orphaned tasks go back to the intake queue for re-dispatch; they are
	// reported to the caller rather than reassigned automatically.
	empty := ""
	requeued := []string{}
	for _, incidentID := range orphaned {
		if _, err := h.Store.UpdateIncidentStatus(c.Request.Context(), incidentID, models.StatusNew, &empty); err != nil {
			h.Logger.Error().Err(err).Str("incident_id", incidentID).Msg("failed to re-queue orphaned incident")
			continue
		}
		requeued = append(requeued, incidentID)
	}
	if len(orphaned) > 0 {
		h.Logger.Warn().Str("technician_id", id).Strs("incidents", orphaned).
			Msg("technician unavailable, tasks re-queued for dispatch")
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"orphaned_incidents": requeued,
	})
}
