package service

import (
	"sort"

	"github.com/voltguard/backend/internal/models"
)

const (
	titleThreshold = 0.7
	descThreshold  = 0.6
)

// FindDuplicate returns the first incident in recent whose title or
// description overlaps the candidate's beyond the thresholds, or nil. The
// recent slice is ordered most-recent-first before scanning so the winner is
// deterministic regardless of store iteration order. Callers handle the
// force-submit bypass; this check is read-only.
func FindDuplicate(candidate models.Incident, recent []models.Incident) *models.Incident {
	ordered := make([]models.Incident, len(recent))
	copy(ordered, recent)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	for i := range ordered {
		titleSim := Similarity(candidate.Title, ordered[i].Title)
		descSim := Similarity(candidate.Description, ordered[i].Description)
		if titleSim > titleThreshold || descSim > descThreshold {
			return &ordered[i]
		}
	}
	return nil
}
