package models

import "time"

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

const (
	StatusNew        = "new"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// statusRank orders the incident lifecycle; transitions must not move
// backwards unless the caller explicitly overrides.
var statusRank = map[string]int{
	StatusNew:        0,
	StatusAssigned:   1,
	StatusInProgress: 2,
	StatusResolved:   3,
}

func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

func StatusForward(from, to string) bool {
	return statusRank[to] >= statusRank[from]
}

type GPS struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Building string `json:"building"`
	Room     string `json:"room,omitempty"`
	GPS      *GPS   `json:"gps,omitempty"`
}

type Incident struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory,omitempty"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	Location    Location   `json:"location"`
	Equipment   string     `json:"equipment,omitempty"`
	Images      []string   `json:"images,omitempty"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type Technician struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Skills            []string `json:"skills"`
	Available         bool     `json:"available"`
	CurrentTasks      []string `json:"current_tasks"`
	ResolvedCount     int      `json:"resolved_count"`
	AvgResolutionMins float64  `json:"avg_resolution_mins"`
}

// BuildingAggregate is a projection of the incident store at query time; it
// is never persisted.
type BuildingAggregate struct {
	Building  string         `json:"building"`
	Total     int            `json:"total"`
	Critical  int            `json:"critical"`
	Recent    int            `json:"recent"`
	HourOfDay [24]int        `json:"hour_of_day"`
	Equipment map[string]int `json:"equipment"`
}

// EveningIncidents counts incidents created in the 18:00-22:00 band
// (inclusive on both ends).
func (a BuildingAggregate) EveningIncidents() int {
	n := 0
	for h := 18; h <= 22; h++ {
		n += a.HourOfDay[h]
	}
	return n
}

type Prediction struct {
	Location       Location       `json:"location"`
	PredictedIssue string         `json:"predicted_issue"`
	Probability    int            `json:"probability"`
	Confidence     int            `json:"confidence"`
	Reason         string         `json:"reason"`
	Urgency        string         `json:"urgency"`
	Equipment      string         `json:"equipment,omitempty"`
	PredictedDate  *time.Time     `json:"predicted_date,omitempty"`
	PredictedTime  string         `json:"predicted_time,omitempty"`
	Evidence       map[string]int `json:"evidence,omitempty"`
}

type AssignmentResult struct {
	Assigned   bool        `json:"assigned"`
	Technician *Technician `json:"technician,omitempty"`
	Escalation bool        `json:"escalation,omitempty"`
}

type HeatmapCell struct {
	Recent   int `json:"recent"`
	Critical int `json:"critical"`
}
