package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/voltguard/backend/internal/models"
	"github.com/voltguard/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSampleIncidentsShape(t *testing.T) {
	now := time.Now().UTC()
	incidents := SampleIncidents(now)
	if len(incidents) == 0 {
		t.Fatalf("expected sample incidents")
	}
	for _, inc := range incidents {
		if inc.ID == "" || inc.Title == "" || inc.Description == "" {
			t.Fatalf("incomplete sample incident: %+v", inc)
		}
		if inc.Location.Building == "" {
			t.Fatalf("sample incident without building: %+v", inc)
		}
		if !models.ValidStatus(inc.Status) {
			t.Fatalf("invalid status %s", inc.Status)
		}
		if inc.CreatedAt.After(inc.UpdatedAt) {
			t.Fatalf("created_at after updated_at: %+v", inc)
		}
		if (inc.ResolvedAt != nil) != (inc.Status == models.StatusResolved) {
			t.Fatalf("resolved_at must be set iff resolved: %+v", inc)
		}
	}
}

func TestSampleIncidentsTriggerTransformerRule(t *testing.T) {
	// The demo dataset must produce a Hostel A transformer prediction so the
	// dashboard has something meaningful to show after seeding.
	now := time.Now().UTC()
	aggs := service.Aggregate(SampleIncidents(now), now, 7*24*time.Hour)
	hostel := aggs["Hostel A"]
	if hostel.Critical < 2 || hostel.Recent < 3 {
		t.Fatalf("seed data no longer triggers transformer-risk: %+v", hostel)
	}
}

func testHandler() *Handler {
	return &Handler{
		Roster:    service.DefaultRoster(),
		Validator: validator.New(),
		Logger:    zerolog.Nop(),
	}
}

func TestTechniciansList(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.GET("/api/technicians", h.TechniciansList)

	req, _ := http.NewRequest(http.MethodGet, "/api/technicians", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Items []models.Technician `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) == 0 {
		t.Fatalf("expected seeded roster")
	}
}

func TestSetAvailabilityUnknownTechnician(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.PUT("/api/technicians/:id/availability", h.SetTechnicianAvailability)

	body, _ := json.Marshal(gin.H{"available": false})
	req, _ := http.NewRequest(http.MethodPut, "/api/technicians/ghost/availability", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSetAvailabilityNoOrphans(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.PUT("/api/technicians/:id/availability", h.SetTechnicianAvailability)

	body, _ := json.Marshal(gin.H{"available": false})
	req, _ := http.NewRequest(http.MethodPut, "/api/technicians/tech-3/availability", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateIncidentRejectsInvalidDraftBeforeStore(t *testing.T) {
	// Handler has no store wired; validation must reject the draft before any
	// store access happens.
	h := testHandler()
	r := gin.New()
	r.POST("/api/incidents", h.CreateIncident)

	cases := []gin.H{
		{"category": "electricity", "description": "d", "severity": "low", "location": gin.H{"building": "B"}},
		{"title": "t", "description": "d", "severity": "low", "location": gin.H{"building": "B"}},
		{"title": "t", "category": "electricity", "severity": "low", "location": gin.H{"building": "B"}},
		{"title": "t", "category": "electricity", "description": "d", "severity": "low", "location": gin.H{}},
		{"title": "t", "category": "bogus", "description": "d", "severity": "low", "location": gin.H{"building": "B"}},
		{"title": "t", "category": "electricity", "description": "d", "severity": "extreme", "location": gin.H{"building": "B"}},
		{"title": "t", "category": "electricity", "description": "d", "severity": "low", "location": gin.H{"building": "B"}, "images": []string{"a", "b", "c", "d"}},
	}
	for i, payload := range cases {
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest(http.MethodPost, "/api/incidents", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d", i, w.Code)
		}
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.PUT("/api/incidents/:id/status", h.UpdateIncidentStatus)

	body, _ := json.Marshal(gin.H{"status": "closed"})
	req, _ := http.NewRequest(http.MethodPut, "/api/incidents/abc/status", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
