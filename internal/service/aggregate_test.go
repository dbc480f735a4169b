package service

import (
	"testing"
	"time"

	"github.com/voltguard/backend/internal/models"
)

func mkIncident(building, severity, equipment string, createdAt time.Time) models.Incident {
	return models.Incident{
		Title:     "t",
		Severity:  severity,
		Equipment: equipment,
		Location:  models.Location{Building: building},
		CreatedAt: createdAt,
	}
}

func TestAggregateCounts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	incidents := []models.Incident{
		mkIncident("Hostel A", models.SeverityCritical, "transformer", now.Add(-24*time.Hour)),
		mkIncident("Hostel A", models.SeverityCritical, "transformer", now.Add(-48*time.Hour)),
		mkIncident("Hostel A", models.SeverityHigh, "", now.Add(-10*24*time.Hour)),
		mkIncident("Library", models.SeverityLow, "wiring", now.Add(-time.Hour)),
	}

	aggs := Aggregate(incidents, now, 7*24*time.Hour)

	hostel := aggs["Hostel A"]
	if hostel.Total != 3 {
		t.Fatalf("expected total 3 for Hostel A, got %d", hostel.Total)
	}
	if hostel.Critical != 2 {
		t.Fatalf("expected critical 2, got %d", hostel.Critical)
	}
	if hostel.Recent != 2 {
		t.Fatalf("expected recent 2 within 7d window, got %d", hostel.Recent)
	}
	if hostel.Equipment["transformer"] != 2 {
		t.Fatalf("expected 2 transformer incidents, got %d", hostel.Equipment["transformer"])
	}
	if aggs["Library"].Total != 1 {
		t.Fatalf("expected Library total 1, got %d", aggs["Library"].Total)
	}
}

func TestAggregateInvariants(t *testing.T) {
	now := time.Now()
	incidents := []models.Incident{
		mkIncident("B1", models.SeverityCritical, "", now.Add(-time.Hour)),
		mkIncident("B1", models.SeverityLow, "", now.Add(-100*24*time.Hour)),
		mkIncident("B2", models.SeverityMedium, "ups", now),
	}

	for _, agg := range Aggregate(incidents, now, 3*24*time.Hour) {
		if agg.Critical > agg.Total {
			t.Fatalf("critical %d exceeds total %d", agg.Critical, agg.Total)
		}
		if agg.Recent > agg.Total {
			t.Fatalf("recent %d exceeds total %d", agg.Recent, agg.Total)
		}
	}
}

func TestAggregateRecencyWindowIsParameter(t *testing.T) {
	now := time.Now()
	incidents := []models.Incident{
		mkIncident("B1", models.SeverityLow, "", now.Add(-5*24*time.Hour)),
	}

	if got := Aggregate(incidents, now, 3*24*time.Hour)["B1"].Recent; got != 0 {
		t.Fatalf("expected 0 recent under 3d window, got %d", got)
	}
	if got := Aggregate(incidents, now, 7*24*time.Hour)["B1"].Recent; got != 1 {
		t.Fatalf("expected 1 recent under 7d window, got %d", got)
	}
}

func TestAggregateEveningBand(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	incidents := []models.Incident{
		mkIncident("B1", models.SeverityLow, "", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)),
		mkIncident("B1", models.SeverityLow, "", time.Date(2026, 3, 10, 22, 59, 0, 0, time.UTC)),
		mkIncident("B1", models.SeverityLow, "", time.Date(2026, 3, 10, 17, 59, 0, 0, time.UTC)),
		mkIncident("B1", models.SeverityLow, "", time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)),
	}

	agg := Aggregate(incidents, now, 7*24*time.Hour)["B1"]
	if got := agg.EveningIncidents(); got != 2 {
		t.Fatalf("expected 2 incidents in the 18-22 inclusive band, got %d", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if aggs := Aggregate(nil, time.Now(), time.Hour); len(aggs) != 0 {
		t.Fatalf("expected empty aggregation, got %d buildings", len(aggs))
	}
}
