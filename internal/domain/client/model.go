package client

import "time"

// BillingModel describes how a client is billed.
type BillingModel string

const (
	ModelHourly   BillingModel = "hourly"
	ModelRetainer BillingModel = "retainer"
	ModelProject  BillingModel = "project"
)

// Valid reports whether the billing model is a known value.
func (m BillingModel) Valid() bool {
	switch m {
	case ModelHourly, ModelRetainer, ModelProject:
		return true
	}
	return false
}

// Status represents the lifecycle status of a client.
type Status string

const (
	StatusActive   Status = "active"
	StatusProspect Status = "prospect"
	StatusArchived Status = "archived"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusProspect, StatusArchived:
		return true
	}
	return false
}

// Client represents a client of the workspace. Clients are never deleted;
// archival is a status transition and all history is retained.
type Client struct {
	ID          string       `json:"id"`
	WorkspaceID string       `json:"workspace_id"`
	Name        string       `json:"name"`
	Company     string       `json:"company,omitempty"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Website     string       `json:"website,omitempty"`
	Model       BillingModel `json:"model"`
	Rate        float64      `json:"rate"`
	Status      Status       `json:"status"`

	// Retainer state, meaningful only when Model is ModelRetainer.
	RetainerTotal     float64 `json:"retainer_total,omitempty"`
	RetainerRemaining float64 `json:"retainer_remaining,omitempty"`

	// Cached rollups maintained from session history. They are recoverable:
	// a reconciliation pass recomputes them from the session ledger.
	MonthlyEarnings float64    `json:"monthly_earnings"`
	LifetimeRevenue float64    `json:"lifetime_revenue"`
	HoursLogged     float64    `json:"hours_logged"`
	LastSessionDate *time.Time `json:"last_session_date,omitempty"`
	TrueHourlyRate  float64    `json:"true_hourly_rate"`

	CreatedAt time.Time `json:"created_at"`
}

// ClampRetainer enforces 0 <= RetainerRemaining <= RetainerTotal. Updates
// that would leave the balance out of range are clamped, never rejected.
func (c *Client) ClampRetainer() {
	if c.RetainerTotal < 0 {
		c.RetainerTotal = 0
	}
	if c.RetainerRemaining < 0 {
		c.RetainerRemaining = 0
	}
	if c.RetainerRemaining > c.RetainerTotal {
		c.RetainerRemaining = c.RetainerTotal
	}
}
