package session

import "time"

// AllocationType assigns a logged session's time and revenue to exactly one
// of general time, a retainer balance, or a project.
type AllocationType string

const (
	AllocationGeneral  AllocationType = "general"
	AllocationRetainer AllocationType = "retainer"
	AllocationProject  AllocationType = "project"
)

// Valid reports whether the allocation type is a known value.
func (a AllocationType) Valid() bool {
	switch a {
	case AllocationGeneral, AllocationRetainer, AllocationProject:
		return true
	}
	return false
}

// Session is a logged unit of work for a client. Sessions are the source of
// truth for all rollups: client and project totals are derived from them and
// can be recomputed from the session history at any time.
type Session struct {
	ID          string         `json:"id"`
	WorkspaceID string         `json:"workspace_id"`
	ClientID    string         `json:"client_id"`
	Date        time.Time      `json:"date"`
	Duration    float64        `json:"duration"` // hours
	Revenue     float64        `json:"revenue"`
	Billable    bool           `json:"billable"`
	Task        string         `json:"task,omitempty"`
	WorkTags    []string       `json:"work_tags,omitempty"`
	Allocation  AllocationType `json:"allocation"`
	ProjectID   *string        `json:"project_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
