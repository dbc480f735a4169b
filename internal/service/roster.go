package service

import (
	"errors"
	"sync"
	"time"

	"github.com/voltguard/backend/internal/models"
)

var ErrTechnicianNotFound = errors.New("technician not found")

// Roster holds the process-wide technician state. Every mutation goes through
// the mutex; an incident's AssignedTo field is the source of truth, the task
// lists here are a weak mirror used for load balancing and display.
type Roster struct {
	mu    sync.Mutex
	techs []models.Technician
}

func NewRoster(techs []models.Technician) *Roster {
	copied := make([]models.Technician, len(techs))
	copy(copied, techs)
	return &Roster{techs: copied}
}

// DefaultRoster seeds the campus maintenance crew used when no roster is
// configured.
func DefaultRoster() *Roster {
	return NewRoster([]models.Technician{
		{ID: "tech-1", Name: "Rajesh Kumar", Skills: []string{"emergency", "transformer", "switchboard"}, Available: true},
		{ID: "tech-2", Name: "Anita Sharma", Skills: []string{"critical", "ups", "generator"}, Available: true},
		{ID: "tech-3", Name: "Vikram Singh", Skills: []string{"wiring", "lighting"}, Available: true},
		{ID: "tech-4", Name: "Priya Nair", Skills: []string{"wiring", "ups"}, Available: true},
	})
}

func (r *Roster) List() []models.Technician {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Technician, len(r.techs))
	copy(out, r.techs)
	return out
}

// Assign picks the qualifying technician with the fewest current tasks and
// appends the incident to their task list. Critical incidents require the
// "emergency" or "critical" skill; any available technician qualifies for the
// rest. Roster order breaks load ties. An empty qualifying set yields an
// escalation result and no mutation; the caller surfaces it, there is no
// automatic retry.
func (r *Roster) Assign(incident models.Incident) models.AssignmentResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	best := -1
	for i := range r.techs {
		if !r.techs[i].Available {
			continue
		}
		if incident.Severity == models.SeverityCritical && !hasAnySkill(r.techs[i].Skills, "emergency", "critical") {
			continue
		}
		if best == -1 || len(r.techs[i].CurrentTasks) < len(r.techs[best].CurrentTasks) {
			best = i
		}
	}

	if best == -1 {
		return models.AssignmentResult{Assigned: false, Escalation: true}
	}

	r.techs[best].CurrentTasks = append(r.techs[best].CurrentTasks, incident.ID)
	picked := r.techs[best]
	return models.AssignmentResult{Assigned: true, Technician: &picked}
}

// SetAvailability toggles a technician. Marking one unavailable clears their
// task list and returns the orphaned incident ids so the caller can re-queue
// them; tasks are never dropped silently.
func (r *Roster) SetAvailability(id string, available bool) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.techs {
		if r.techs[i].ID != id {
			continue
		}
		r.techs[i].Available = available
		if !available && len(r.techs[i].CurrentTasks) > 0 {
			orphaned := r.techs[i].CurrentTasks
			r.techs[i].CurrentTasks = nil
			return orphaned, nil
		}
		return nil, nil
	}
	return nil, ErrTechnicianNotFound
}

// Release removes the incident from the technician's task list without
// touching the performance counters. Used when a store write fails after an
// assignment already happened.
func (r *Roster) Release(techID, incidentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.techs {
		if r.techs[i].ID != techID {
			continue
		}
		tasks := r.techs[i].CurrentTasks[:0]
		for _, t := range r.techs[i].CurrentTasks {
			if t != incidentID {
				tasks = append(tasks, t)
			}
		}
		r.techs[i].CurrentTasks = tasks
		return
	}
}

// Complete removes the incident from the technician's task list and folds the
// resolution time into the informational counters.
func (r *Roster) Complete(techID, incidentID string, resolution time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.techs {
		if r.techs[i].ID != techID {
			continue
		}
		tasks := r.techs[i].CurrentTasks[:0]
		for _, t := range r.techs[i].CurrentTasks {
			if t != incidentID {
				tasks = append(tasks, t)
			}
		}
		r.techs[i].CurrentTasks = tasks

		prev := r.techs[i].AvgResolutionMins * float64(r.techs[i].ResolvedCount)
		r.techs[i].ResolvedCount++
		r.techs[i].AvgResolutionMins = (prev + resolution.Minutes()) / float64(r.techs[i].ResolvedCount)
		return
	}
}

func hasAnySkill(skills []string, targets ...string) bool {
	for _, s := range skills {
		for _, t := range targets {
			if s == t {
				return true
			}
		}
	}
	return false
}
