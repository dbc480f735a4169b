package service

import (
	"time"

	"github.com/voltguard/backend/internal/models"
)

// Aggregate buckets incidents by building and accumulates the counts the
// prediction rules consume. Pure function: deterministic given its input, now
// and the recency window. Incidents with an empty building are a
// data-integrity violation rejected at ingestion and never reach this point.
func Aggregate(incidents []models.Incident, now time.Time, recencyWindow time.Duration) map[string]models.BuildingAggregate {
	out := map[string]models.BuildingAggregate{}
	for _, inc := range incidents {
		building := inc.Location.Building
		agg, ok := out[building]
		if !ok {
			agg = models.BuildingAggregate{
				Building:  building,
				Equipment: map[string]int{},
			}
		}

		agg.Total++
		if inc.Severity == models.SeverityCritical {
			agg.Critical++
		}
		if now.Sub(inc.CreatedAt) <= recencyWindow {
			agg.Recent++
		}
		if inc.Equipment != "" {
			agg.Equipment[inc.Equipment]++
		}
		agg.HourOfDay[inc.CreatedAt.Hour()]++

		out[building] = agg
	}
	return out
}
