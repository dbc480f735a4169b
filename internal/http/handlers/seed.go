package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voltguard/backend/internal/models"
)

// @Summary Reset and seed sample incidents
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin/seed [post]
func (h *Handler) Seed(c *gin.Context) {
	inserted, err := h.Store.SeedIncidents(c.Request.Context(), SampleIncidents(time.Now().UTC()))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to seed incidents", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "inserted": inserted})
}

// SampleIncidents is the demo campus dataset: a transformer cluster in Hostel
// A, an evening pattern in the Academic Block, a UPS failure in the Lab
// Complex and minor wiring issues in the Library.
func SampleIncidents(now time.Time) []models.Incident {
	mk := func(title, description, severity, status, building, room, equipment string, age time.Duration) models.Incident {
		createdAt := now.Add(-age)
		inc := models.Incident{
			ID:          uuid.NewString(),
			Title:       title,
			Category:    "electricity",
			Description: description,
			Severity:    severity,
			Status:      status,
			Location:    models.Location{Building: building, Room: room},
			Equipment:   equipment,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}
		if status == models.StatusResolved {
			resolved := createdAt.Add(2 * time.Hour)
			inc.ResolvedAt = &resolved
			inc.UpdatedAt = resolved
		}
		return inc
	}

	day := 24 * time.Hour
	return []models.Incident{
		mk("Critical Voltage Fluctuation - Hostel A", "Severe voltage drops causing equipment damage",
			models.SeverityCritical, models.StatusResolved, "Hostel A", "Common Room", "transformer", 1*day),
		mk("Complete Blackout - Hostel A", "Total power failure during peak hours",
			models.SeverityCritical, models.StatusResolved, "Hostel A", "Floor 2", "transformer", 2*day),
		mk("Voltage Instability - Hostel A", "Unstable voltage affecting all devices",
			models.SeverityHigh, models.StatusResolved, "Hostel A", "Floor 1", "transformer", 3*day),
		mk("Evening Power Issues - Academic Block", "Consistent voltage drops between 6-10 PM",
			models.SeverityHigh, models.StatusResolved, "Academic Block", "Room 101", "transformer", 1*day),
		mk("Flickering Lights - Academic Block", "Lights flickering throughout building",
			models.SeverityMedium, models.StatusResolved, "Academic Block", "Corridor", "wiring", 2*day),
		mk("UPS Failure - Lab Complex", "UPS not switching to battery during outages",
			models.SeverityHigh, models.StatusInProgress, "Lab Complex", "Computer Lab", "ups", 4*time.Hour),
		mk("Minor Voltage Drop - Library", "Slight voltage fluctuations noticed",
			models.SeverityLow, models.StatusNew, "Library", "Reading Hall", "wiring", 2*time.Hour),
	}
}
