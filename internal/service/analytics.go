package service

import (
	"time"

	"github.com/voltguard/backend/internal/models"
)

// Heatmap projects recent and critical counts per building over a fixed
// trailing window.
func Heatmap(incidents []models.Incident, now time.Time, window time.Duration) map[string]models.HeatmapCell {
	out := map[string]models.HeatmapCell{}
	for _, inc := range incidents {
		cell := out[inc.Location.Building]
		if now.Sub(inc.CreatedAt) <= window {
			cell.Recent++
		}
		if inc.Severity == models.SeverityCritical {
			cell.Critical++
		}
		out[inc.Location.Building] = cell
	}
	return out
}

type Trends struct {
	WeeklyPatterns map[string]int `json:"weekly_patterns"`
	SeverityTrends map[string]int `json:"severity_trends"`
}

func ComputeTrends(incidents []models.Incident) Trends {
	t := Trends{
		WeeklyPatterns: map[string]int{},
		SeverityTrends: map[string]int{},
	}
	for _, inc := range incidents {
		t.WeeklyPatterns[inc.CreatedAt.Weekday().String()]++
		t.SeverityTrends[inc.Severity]++
	}
	return t
}

var AgingBuckets = []string{"0-24 hours", "1-3 days", "3-7 days", "1-2 weeks", "2+ weeks"}

// Aging buckets incidents by age. Boundaries are inclusive on the lower
// bucket: an incident aged exactly 24h falls in "0-24 hours".
func Aging(incidents []models.Incident, now time.Time) map[string]int {
	out := map[string]int{}
	for _, b := range AgingBuckets {
		out[b] = 0
	}
	for _, inc := range incidents {
		out[agingBucket(now.Sub(inc.CreatedAt))]++
	}
	return out
}

func agingBucket(age time.Duration) string {
	switch {
	case age <= 24*time.Hour:
		return AgingBuckets[0]
	case age <= 3*24*time.Hour:
		return AgingBuckets[1]
	case age <= 7*24*time.Hour:
		return AgingBuckets[2]
	case age <= 14*24*time.Hour:
		return AgingBuckets[3]
	default:
		return AgingBuckets[4]
	}
}
