package plan

import (
	"errors"
	"time"
)

var (
	// ErrUnknownPlan indicates a plan id outside the closed tier set.
	ErrUnknownPlan = errors.New("unknown plan")
	// ErrReasonRequired indicates a downgrade to the lowest tier without a
	// captured reason.
	ErrReasonRequired = errors.New("downgrade reason required")
)

// ID identifies a subscription tier.
type ID string

const (
	Solo   ID = "solo"
	Pro    ID = "pro"
	Studio ID = "studio"
)

// Valid reports whether the plan id is a known tier.
func (id ID) Valid() bool {
	switch id {
	case Solo, Pro, Studio:
		return true
	}
	return false
}

// Rank orders tiers for upgrade/downgrade comparison. Unknown ids rank
// lowest.
func (id ID) Rank() int {
	switch id {
	case Pro:
		return 1
	case Studio:
		return 2
	default:
		return 0
	}
}

// Features are the boolean entitlement flags of a tier. Gating is an
// additive restriction on input, never a different computation path.
type Features struct {
	RichNotes             bool `json:"rich_notes"`
	FullInsights          bool `json:"full_insights"`
	DataExport            bool `json:"data_export"`
	Integrations          bool `json:"integrations"`
	AdvancedNotifications bool `json:"advanced_notifications"`
	CustomCategories      bool `json:"custom_categories"`
}

// Entitlements are the numeric limits and feature flags of a tier.
// ActiveClients of zero means unlimited.
type Entitlements struct {
	Seats         int      `json:"seats"`
	ActiveClients int      `json:"active_clients"`
	Features      Features `json:"features"`
}

// State is the workspace's active plan.
type State struct {
	Plan            ID         `json:"plan"`
	ActivatedAt     time.Time  `json:"activated_at"`
	IsTrial         bool       `json:"is_trial"`
	TrialEnd        *time.Time `json:"trial_end,omitempty"`
	DowngradeReason string     `json:"downgrade_reason,omitempty"`
}

var tiers = map[ID]Entitlements{
	Solo: {
		Seats:         1,
		ActiveClients: 5,
	},
	Pro: {
		Seats:         1,
		ActiveClients: 25,
		Features: Features{
			RichNotes:        true,
			FullInsights:     true,
			DataExport:       true,
			CustomCategories: true,
		},
	},
	Studio: {
		Seats:         5,
		ActiveClients: 0,
		Features: Features{
			RichNotes:             true,
			FullInsights:          true,
			DataExport:            true,
			Integrations:          true,
			AdvancedNotifications: true,
			CustomCategories:      true,
		},
	},
}

// Resolve looks up the entitlements for a plan id. Unknown ids resolve to
// the solo tier so limits fail closed.
func Resolve(id ID) Entitlements {
	if ent, ok := tiers[id]; ok {
		return ent
	}
	return tiers[Solo]
}
