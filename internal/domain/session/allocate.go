package session

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/project"
)

// LogRequest describes a "log session" action.
type LogRequest struct {
	ClientID   string
	Date       time.Time
	Duration   float64
	Billable   bool
	Task       string
	WorkTags   []string
	Allocation AllocationType
	ProjectID  string
}

// ClientPatch is the compensating update to the owning client's retainer
// balance.
type ClientPatch struct {
	RetainerRemaining float64
}

// ProjectPatch is the compensating update to a project's rollup totals.
// Values are absolute, computed from the pre-allocation state.
type ProjectPatch struct {
	ProjectID string
	Hours     float64
	Revenue   float64
}

// Allocation holds the compensating updates a session produces. At most one
// of the patches is set; a general allocation produces neither.
type Allocation struct {
	ClientPatch  *ClientPatch
	ProjectPatch *ProjectPatch
}

// New validates a log request against the owning client and its projects and
// builds the session record. Revenue is fixed at construction time:
// duration times the client's current rate when billable, zero otherwise.
// Rate changes after the fact never rewrite logged sessions.
func New(workspaceID string, req LogRequest, owner *client.Client, projects []project.Project) (*Session, error) {
	if owner == nil {
		return nil, ErrClientNotFound
	}
	if strings.TrimSpace(req.ClientID) == "" || req.ClientID != owner.ID {
		return nil, ErrInvalidInput
	}
	if req.Duration <= 0 {
		return nil, ErrInvalidInput
	}
	if !req.Allocation.Valid() {
		return nil, ErrInvalidInput
	}

	var projectID *string
	switch req.Allocation {
	case AllocationRetainer:
		if owner.Model != client.ModelRetainer {
			return nil, ErrNotRetainerClient
		}
	case AllocationProject:
		if strings.TrimSpace(req.ProjectID) == "" {
			return nil, ErrInvalidInput
		}
		if findProject(projects, req.ProjectID, owner.ID) == nil {
			return nil, ErrProjectNotFound
		}
		id := req.ProjectID
		projectID = &id
	}

	revenue := 0.0
	if req.Billable {
		revenue = req.Duration * owner.Rate
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &Session{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		ClientID:    owner.ID,
		Date:        date,
		Duration:    req.Duration,
		Revenue:     revenue,
		Billable:    req.Billable,
		Task:        req.Task,
		WorkTags:    req.WorkTags,
		Allocation:  req.Allocation,
		ProjectID:   projectID,
		CreatedAt:   time.Now(),
	}, nil
}

// Allocate computes the compensating updates for a session. It never fails:
// a dangling allocation target means the side-effect is skipped and logged,
// because recording time worked must not be blocked by a rollup the
// reconciliation pass can rebuild later.
//
// Retainer deductions apply only to billable sessions; retainer hours are a
// billing concept, not a time-tracking one. Project rollups apply regardless
// of billability, because completion tracking cares about effort spent.
func Allocate(sess *Session, owner *client.Client, projects []project.Project, logger *slog.Logger) Allocation {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch sess.Allocation {
	case AllocationRetainer:
		if owner == nil || owner.Model != client.ModelRetainer {
			logger.Warn("retainer allocation skipped",
				"session_id", sess.ID, "client_id", sess.ClientID)
			return Allocation{}
		}
		if !sess.Billable {
			return Allocation{}
		}
		remaining := owner.RetainerRemaining - sess.Duration
		if remaining < 0 {
			remaining = 0
		}
		return Allocation{ClientPatch: &ClientPatch{RetainerRemaining: remaining}}

	case AllocationProject:
		if sess.ProjectID == nil {
			logger.Warn("project allocation skipped: no project id",
				"session_id", sess.ID)
			return Allocation{}
		}
		proj := findProject(projects, *sess.ProjectID, sess.ClientID)
		if proj == nil {
			logger.Warn("project allocation skipped: project not found",
				"session_id", sess.ID, "project_id", *sess.ProjectID)
			return Allocation{}
		}
		return Allocation{ProjectPatch: &ProjectPatch{
			ProjectID: proj.ID,
			Hours:     proj.Hours + sess.Duration,
			Revenue:   proj.Revenue + sess.Revenue,
		}}
	}

	return Allocation{}
}

func findProject(projects []project.Project, id, clientID string) *project.Project {
	for i := range projects {
		if projects[i].ID == id && projects[i].ClientID == clientID {
			return &projects[i]
		}
	}
	return nil
}
