package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voltguard/backend/internal/geocode"
	"github.com/voltguard/backend/internal/models"
	"github.com/voltguard/backend/internal/service"
)

type LocationPayload struct {
	Building string      `json:"building" validate:"required"`
	Room     string      `json:"room"`
	GPS      *models.GPS `json:"gps"`
}

type CreateIncidentRequest struct {
	Title       string          `json:"title" validate:"required"`
	Category    string          `json:"category" validate:"required,oneof=electricity water internet hostel other"`
	Subcategory string          `json:"subcategory"`
	Description string          `json:"description" validate:"required"`
	Severity    string          `json:"severity" validate:"required,oneof=low medium high critical"`
	Location    LocationPayload `json:"location"`
	Equipment   string          `json:"equipment" validate:"omitempty,oneof=transformer generator ups switchboard wiring other"`
	Images      []string        `json:"images" validate:"max=3"`
	ForceSubmit bool            `json:"force_submit"`
}

// @Summary Submit an incident report
// @Tags incidents
// @Accept json
// @Produce json
// @Param request body CreateIncidentRequest true "incident draft"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/incidents [post]
func (h *Handler) CreateIncident(c *gin.Context) {
	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	now := time.Now().UTC()
	inc := models.Incident{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      models.StatusNew,
		Location: models.Location{
			Building: req.Location.Building,
			Room:     req.Location.Room,
			GPS:      req.Location.GPS,
		},
		Equipment: req.Equipment,
		Images:    req.Images,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if h.Geocoder != nil && geocode.ShouldGeocode(inc.Location, false) {
		lat, lng, _, _, err := h.Geocoder.Geocode(c.Request.Context(), geocode.BuildGeocodeQuery(h.CampusName, inc.Location))
		if err != nil {
			h.Logger.Warn().Err(err).Str("building", inc.Location.Building).Msg("geocode failed")
		} else {
			inc.Location.GPS = &models.GPS{Lat: lat, Lng: lng}
		}
	}

	mu := h.buildingLock(inc.Location.Building)
	mu.Lock()
	defer mu.Unlock()

	if !req.ForceSubmit {
		recent, err := h.Store.ListRecentByBuilding(c.Request.Context(), inc.Location.Building, now.Add(-h.DuplicateWindow))
		if err != nil {
			writeError(c, http.StatusInternalServerError, "DB_ERROR", "Duplicate check failed", err.Error())
			return
		}
		if match := service.FindDuplicate(inc, recent); match != nil {
			c.JSON(http.StatusConflict, gin.H{
				"error": gin.H{
					"code":    "DUPLICATE_CONFLICT",
					"message": "A similar incident was reported recently; resubmit with force_submit to override",
				},
				"duplicate": gin.H{
					"id":     match.ID,
					"title":  match.Title,
					"status": match.Status,
				},
			})
			return
		}
	}

	var assignment *models.AssignmentResult
	if inc.Severity == models.SeverityCritical {
		res := h.Roster.Assign(inc)
		assignment = &res
		if res.Assigned {
			inc.Status = models.StatusAssigned
			inc.AssignedTo = res.Technician.ID
		} else {
			h.Logger.Warn().Str("incident_id", inc.ID).Str("building", inc.Location.Building).
				Msg("no qualifying technician, escalation required")
		}
	}

	if err := h.Store.InsertIncident(c.Request.Context(), inc); err != nil {
		if assignment != nil && assignment.Assigned {
			h.Roster.Release(assignment.Technician.ID, inc.ID)
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to store incident", err.Error())
		return
	}

	resp := gin.H{"incident": inc}
	if assignment != nil {
		resp["assignment"] = assignment
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary List incidents
// @Tags incidents
// @Produce json
// @Success 200 {array} models.Incident
// @Router /api/incidents [get]
func (h *Handler) IncidentsList(c *gin.Context) {
	incidents, err := h.Store.ListIncidents(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list incidents", err.Error())
		return
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}
	c.JSON(http.StatusOK, incidents)
}

// @Summary Incident details
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} models.Incident
// @Failure 404 {object} map[string]any
// @Router /api/incidents/{id} [get]
func (h *Handler) IncidentDetails(c *gin.Context) {
	inc, err := h.Store.GetIncident(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Incident not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get incident", err.Error())
		return
	}
	c.JSON(http.StatusOK, inc)
}

type UpdateStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=new assigned in_progress resolved"`
	Override bool   `json:"override"`
}

// @Summary Update incident status
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param request body UpdateStatusRequest true "new status"
// @Success 200 {object} models.Incident
// @Failure 404 {object} map[string]any
// @Router /api/incidents/{id}/status [put]
func (h *Handler) UpdateIncidentStatus(c *gin.Context) {
	id := c.Param("id")
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	current, err := h.Store.GetIncident(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Incident not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load incident", err.Error())
		return
	}

	if !req.Override && !models.StatusForward(current.Status, req.Status) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Status cannot move backwards without override", gin.H{"from": current.Status, "to": req.Status})
		return
	}

	updated, err := h.Store.UpdateIncidentStatus(c.Request.Context(), id, req.Status, nil)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update incident", err.Error())
		return
	}

	if req.Status == models.StatusResolved && current.Status != models.StatusResolved && current.AssignedTo != "" {
		h.Roster.Complete(current.AssignedTo, id, time.Now().UTC().Sub(current.CreatedAt))
	}

	c.JSON(http.StatusOK, updated)
}
