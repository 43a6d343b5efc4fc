package metrics

// Snapshot is the derived analytics model. It is never persisted: the
// workspace recomputes it wholesale on every change to the session or client
// collections or to the net multiplier.
type Snapshot struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalHours    float64 `json:"total_hours"`
	BillableHours float64 `json:"billable_hours"`
	AvgHourlyRate float64 `json:"avg_hourly_rate"`
	NetRevenue    float64 `json:"net_revenue"`

	RevenueByClient []RevenueSlice  `json:"revenue_by_client"`
	HoursByCategory []CategorySlice `json:"hours_by_category"`
	ClientRankings  []ClientRanking `json:"client_rankings"`
	TimeAllocation  []TimeSlice     `json:"time_allocation"`
	Performance     Performance     `json:"performance"`
	ForwardSignals  []Signal        `json:"forward_signals"`
}

// RevenueSlice is one client's share of total revenue, ordered by value.
// Grouping is by client id; the display name is resolved at read time so a
// rename never fragments history.
type RevenueSlice struct {
	ClientID string  `json:"client_id"`
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Share    int     `json:"share"`
}

// CategorySlice is the hours logged under one work-tag category. A session's
// duration is split evenly across its tags; untagged time falls into the
// General bucket.
type CategorySlice struct {
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
	Share    int     `json:"share"`
}

// TimeSlice is the rounded time-allocation view of a category.
type TimeSlice struct {
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
	Percent  int     `json:"percent"`
}

// ClientRanking is an active, revenue-bearing client ranked by revenue.
type ClientRanking struct {
	ClientID    string  `json:"client_id"`
	Name        string  `json:"name"`
	Revenue     float64 `json:"revenue"`
	Utilization int     `json:"utilization"`
	Share       int     `json:"share"`
}

// Card is one performance summary card.
type Card struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Detail string `json:"detail"`
	Warn   bool   `json:"warn,omitempty"`
}

// Performance holds the four fixed summary cards.
type Performance struct {
	Concentration Card `json:"concentration"`
	Utilization   Card `json:"utilization"`
	EffectiveRate Card `json:"effective_rate"`
	NetMargin     Card `json:"net_margin"`
}

// SignalType classifies a forward-looking alert.
type SignalType string

const (
	SignalRetainer SignalType = "retainer"
	SignalInactive SignalType = "inactive"
)

// Impact is the severity of a forward signal.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Signal is a forward-looking alert derived from current aggregate state.
// IDs are assigned sequentially within one aggregation pass and are not
// stable across recomputation; never persist them as foreign keys.
type Signal struct {
	ID         int        `json:"id"`
	Type       SignalType `json:"type"`
	ClientID   string     `json:"client_id"`
	ClientName string     `json:"client_name"`
	Message    string     `json:"message"`
	Impact     Impact     `json:"impact"`
}
