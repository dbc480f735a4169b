package service

import (
	"testing"
	"time"

	"github.com/voltguard/backend/internal/models"
)

func TestFindDuplicateTitleMatch(t *testing.T) {
	now := time.Now()
	candidate := models.Incident{
		Title:       "Complete Blackout Hostel A",
		Description: "no power anywhere",
	}
	recent := []models.Incident{
		{ID: "i1", Title: "Flickering lights corridor", Description: "minor flicker", CreatedAt: now.Add(-time.Hour)},
		{ID: "i2", Title: "Complete Blackout Hostel A", Description: "total power failure", CreatedAt: now.Add(-30 * time.Minute)},
	}

	match := FindDuplicate(candidate, recent)
	if match == nil || match.ID != "i2" {
		t.Fatalf("expected i2 to be matched, got %+v", match)
	}
}

func TestFindDuplicateMostRecentFirst(t *testing.T) {
	now := time.Now()
	candidate := models.Incident{Title: "Voltage drop lab complex"}
	recent := []models.Incident{
		{ID: "old", Title: "Voltage drop lab complex", CreatedAt: now.Add(-90 * time.Minute)},
		{ID: "new", Title: "Voltage drop lab complex", CreatedAt: now.Add(-10 * time.Minute)},
	}

	match := FindDuplicate(candidate, recent)
	if match == nil || match.ID != "new" {
		t.Fatalf("expected most recent incident to win, got %+v", match)
	}
}

func TestFindDuplicateNoMatch(t *testing.T) {
	candidate := models.Incident{
		Title:       "Generator refuses to start",
		Description: "backup generator silent during outage",
	}
	recent := []models.Incident{
		{ID: "i1", Title: "Flickering corridor lamps", Description: "strobe effect near stairwell"},
	}

	if match := FindDuplicate(candidate, recent); match != nil {
		t.Fatalf("expected no duplicate, got %+v", match)
	}
}

func TestFindDuplicateDescriptionThreshold(t *testing.T) {
	candidate := models.Incident{
		Title:       "different words entirely",
		Description: "ups not switching to battery during outages",
	}
	recent := []models.Incident{
		{ID: "i1", Title: "unrelated heading", Description: "ups not switching to battery during outages"},
	}

	match := FindDuplicate(candidate, recent)
	if match == nil || match.ID != "i1" {
		t.Fatalf("expected description similarity to trigger, got %+v", match)
	}
}
