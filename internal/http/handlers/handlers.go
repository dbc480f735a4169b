package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/voltguard/backend/internal/db"
	"github.com/voltguard/backend/internal/geocode"
	"github.com/voltguard/backend/internal/service"
)

type Handler struct {
	Store     *db.Store
	Roster    *service.Roster
	Geocoder  geocode.Geocoder
	Validator *validator.Validate
	Logger    zerolog.Logger

	CampusName      string
	RecencyWindow   time.Duration
	HeatmapWindow   time.Duration
	DuplicateWindow time.Duration

	buildingMu sync.Mutex
	building   map[string]*sync.Mutex
}

// buildingLock serializes the duplicate-check-then-insert span per building
// so two near-simultaneous duplicate reports cannot both pass the check.
func (h *Handler) buildingLock(building string) *sync.Mutex {
	h.buildingMu.Lock()
	defer h.buildingMu.Unlock()
	if h.building == nil {
		h.building = map[string]*sync.Mutex{}
	}
	mu, ok := h.building[building]
	if !ok {
		mu = &sync.Mutex{}
		h.building[building] = mu
	}
	return mu
}

// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Incident store unavailable", err.Error())
		return
	}
	count, err := h.Store.CountIncidents(ctx)
	if err != nil {
		writeError(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Incident store unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "postgres",
		"incidents": count,
	})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
