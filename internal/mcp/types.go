package mcp

import (
	"time"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/note"
	"github.com/solobooks/solobooks/internal/domain/plan"
	"github.com/solobooks/solobooks/internal/domain/project"
	"github.com/solobooks/solobooks/internal/domain/session"
	"github.com/solobooks/solobooks/internal/domain/settings"
)

type AddClientParams struct {
	Name          string  `json:"name"`
	Company       string  `json:"company,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Website       string  `json:"website,omitempty"`
	Model         string  `json:"model"`
	Rate          float64 `json:"rate,omitempty"`
	Status        string  `json:"status,omitempty"`
	RetainerTotal float64 `json:"retainer_total,omitempty"`
}

type UpdateClientParams struct {
	ID                string   `json:"id"`
	Name              *string  `json:"name,omitempty"`
	Company           *string  `json:"company,omitempty"`
	Email             *string  `json:"email,omitempty"`
	Phone             *string  `json:"phone,omitempty"`
	Website           *string  `json:"website,omitempty"`
	Model             *string  `json:"model,omitempty"`
	Rate              *float64 `json:"rate,omitempty"`
	Status            *string  `json:"status,omitempty"`
	RetainerTotal     *float64 `json:"retainer_total,omitempty"`
	RetainerRemaining *float64 `json:"retainer_remaining,omitempty"`
}

type ArchiveClientParams struct {
	ID string `json:"id"`
}

type LogSessionParams struct {
	ClientID   string   `json:"client_id"`
	Date       string   `json:"date,omitempty"`
	Duration   float64  `json:"duration"`
	Billable   *bool    `json:"billable,omitempty"`
	Task       string   `json:"task,omitempty"`
	WorkTags   []string `json:"work_tags,omitempty"`
	Allocation string   `json:"allocation,omitempty"`
	ProjectID  string   `json:"project_id,omitempty"`
}

type UpdateSessionParams struct {
	ID string `json:"id"`
	LogSessionParams
}

type DeleteSessionParams struct {
	ID string `json:"id"`
}

type ListSessionsParams struct {
	ClientID string `json:"client_id,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type AddProjectParams struct {
	ClientID       string  `json:"client_id"`
	Name           string  `json:"name"`
	Status         string  `json:"status,omitempty"`
	EstimatedHours float64 `json:"estimated_hours,omitempty"`
	TotalValue     float64 `json:"total_value,omitempty"`
	StartDate      string  `json:"start_date,omitempty"`
	EndDate        string  `json:"end_date,omitempty"`
}

type UpdateProjectParams struct {
	ID             string   `json:"id"`
	Name           *string  `json:"name,omitempty"`
	Status         *string  `json:"status,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	TotalValue     *float64 `json:"total_value,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
}

type AddNoteParams struct {
	ClientID string `json:"client_id,omitempty"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	Type     string `json:"type,omitempty"`
	Pinned   bool   `json:"pinned,omitempty"`
}

type SwitchPlanParams struct {
	Plan   string `json:"plan"`
	Reason string `json:"reason,omitempty"`
}

type UpdateFinancialsParams struct {
	TaxRate           float64 `json:"tax_rate"`
	ProcessingFeeRate float64 `json:"processing_fee_rate"`
	Currency          string  `json:"currency,omitempty"`
	WeeklyTarget      float64 `json:"weekly_target,omitempty"`
}

type ClientResponse struct {
	Client client.Client `json:"client"`
}

type ClientListResponse struct {
	Clients []client.Client `json:"clients"`
}

type SessionResponse struct {
	Session session.Session `json:"session"`
}

type SessionListResponse struct {
	Sessions []session.Session `json:"sessions"`
}

type ProjectResponse struct {
	Project project.Project `json:"project"`
}

type ProjectListResponse struct {
	Projects []project.Project `json:"projects"`
}

type NoteResponse struct {
	Note note.Note `json:"note"`
}

type NoteListResponse struct {
	Notes []note.Note `json:"notes"`
}

type PlanResponse struct {
	State        plan.State        `json:"state"`
	Entitlements plan.Entitlements `json:"entitlements"`
}

type FinancialsResponse struct {
	Financials    settings.Financials `json:"financials"`
	NetMultiplier float64             `json:"net_multiplier"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// Bare dates are the common case for session logging.
		t, err = time.Parse("2006-01-02", value)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
