package project

import "time"

// Status represents the lifecycle status of a project.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusOnHold     Status = "on_hold"
	StatusComplete   Status = "complete"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusOnHold, StatusComplete:
		return true
	}
	return false
}

// Milestone is a free-form project checkpoint.
type Milestone struct {
	Title string     `json:"title"`
	Done  bool       `json:"done"`
	Due   *time.Time `json:"due,omitempty"`
}

// ExternalLink points at a resource outside the workspace.
type ExternalLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Project represents a fixed-scope engagement for a single client.
type Project struct {
	ID             string  `json:"id"`
	WorkspaceID    string  `json:"workspace_id"`
	ClientID       string  `json:"client_id"`
	Name           string  `json:"name"`
	Status         Status  `json:"status"`
	EstimatedHours float64 `json:"estimated_hours"`
	TotalValue     float64 `json:"total_value"`

	// Hours and Revenue are rollups over project-allocated sessions. Only
	// session side-effects write them; direct edits never touch them.
	Hours   float64 `json:"hours"`
	Revenue float64 `json:"revenue"`

	StartDate     *time.Time     `json:"start_date,omitempty"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	Milestones    []Milestone    `json:"milestones,omitempty"`
	ExternalLinks []ExternalLink `json:"external_links,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
