package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/session"
)

func activeClient(id, name string) client.Client {
	return client.Client{
		ID:     id,
		Name:   name,
		Model:  client.ModelHourly,
		Rate:   100,
		Status: client.StatusActive,
	}
}

func withSession(c client.Client) client.Client {
	d := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	c.LastSessionDate = &d
	return c
}

func TestCompute_Totals(t *testing.T) {
	clients := []client.Client{
		withSession(activeClient("c1", "Acme")),
		withSession(activeClient("c2", "Beta")),
	}
	sessions := []session.Session{
		{ID: "s1", ClientID: "c1", Duration: 2, Revenue: 300, Billable: true},
		{ID: "s2", ClientID: "c1", Duration: 1, Revenue: 0, Billable: false},
		{ID: "s3", ClientID: "c2", Duration: 3, Revenue: 450, Billable: true},
	}

	snap := Compute(sessions, clients, Options{NetMultiplier: 0.8, Currency: "USD"})

	require.Equal(t, 750.0, snap.TotalRevenue)
	require.Equal(t, 6.0, snap.TotalHours)
	require.Equal(t, 5.0, snap.BillableHours)
	require.Equal(t, 150.0, snap.AvgHourlyRate)
	require.InDelta(t, 600.0, snap.NetRevenue, 1e-9)
}

func TestCompute_AvgRateZeroGuard(t *testing.T) {
	clients := []client.Client{withSession(activeClient("c1", "Acme"))}
	sessions := []session.Session{
		{ID: "s1", ClientID: "c1", Duration: 4, Revenue: 0, Billable: false},
	}

	snap := Compute(sessions, clients, Options{NetMultiplier: 1})
	require.Equal(t, 0.0, snap.AvgHourlyRate)
}

func TestCompute_EmptyWorkspace(t *testing.T) {
	snap := Compute(nil, nil, Options{NetMultiplier: 1})

	require.Equal(t, 0.0, snap.TotalRevenue)
	require.Empty(t, snap.RevenueByClient)
	require.Empty(t, snap.ClientRankings)
	require.Empty(t, snap.ForwardSignals)
	require.Equal(t, "0%", snap.Performance.Concentration.Value)
	require.False(t, snap.Performance.Concentration.Warn)
}

func TestCompute_RevenueByClient(t *testing.T) {
	clients := []client.Client{
		withSession(activeClient("c1", "Acme")),
		withSession(activeClient("c2", "Beta")),
		withSession(activeClient("c3", "Gamma")),
	}
	sessions := []session.Session{
		{ID: "s1", ClientID: "c1", Duration: 1, Revenue: 250, Billable: true},
		{ID: "s2", ClientID: "c2", Duration: 1, Revenue: 750, Billable: true},
		{ID: "s3", ClientID: "c3", Duration: 2, Revenue: 0, Billable: false},
	}

	snap := Compute(sessions, clients, Options{NetMultiplier: 1})

	// Zero-revenue clients are omitted; the rest sort descending.
	require.Len(t, snap.RevenueByClient, 2)
	require.Equal(t, "Beta", snap.RevenueByClient[0].Name)
	require.Equal(t, 75, snap.RevenueByClient[0].Share)
	require.Equal(t, "Acme", snap.RevenueByClient[1].Name)
	require.Equal(t, 25, snap.RevenueByClient[1].Share)
}

func TestCompute_RevenueForDeletedClient(t *testing.T) {
	sessions := []session.Session{
		{ID: "s1", ClientID: "ghost", Duration: 1, Revenue: 100, Billable: true},
	}

	snap := Compute(sessions, nil, Options{NetMultiplier: 1})
	require.Len(t, snap.RevenueByClient, 1)
	require.Equal(t, "Unknown client", snap.RevenueByClient[0].Name)
	require.Empty(t, snap.ClientRankings)
}

func TestCompute_HoursByCategory(t *testing.T) {
	clients := []client.Client{withSession(activeClient("c1", "Acme"))}
	sessions := []session.Session{
		{ID: "s1", ClientID: "c1", Duration: 4, Billable: true, WorkTags: []string{"Development", "Meetings"}},
		{ID: "s2", ClientID: "c1", Duration: 2, Billable: true, WorkTags: []string{"Development"}},
		{ID: "s3", ClientID: "c1", Duration: 2, Billable: false},
	}

	snap := Compute(sessions, clients, Options{NetMultiplier: 1})

	require.Len(t, snap.HoursByCategory, 3)
	require.Equal(t, "Development", snap.HoursByCategory[0].Category)
	require.Equal(t, 4.0, snap.HoursByCategory[0].Hours)
	require.Equal(t, 50, snap.HoursByCategory[0].Share)

	// Tagless time buckets under General; multi-tag time splits evenly.
	byName := map[string]float64{}
	for _, s := range snap.HoursByCategory {
		byName[s.Category] = s.Hours
	}
	require.Equal(t, 2.0, byName["Meetings"])
	require.Equal(t, 2.0, byName["General"])

	require.Len(t, snap.TimeAllocation, 3)
	require.Equal(t, snap.HoursByCategory[0].Category, snap.TimeAllocation[0].Category)
	require.Equal(t, snap.HoursByCategory[0].Share, snap.TimeAllocation[0].Percent)
}

func TestCompute_RankingsAndUtilization(t *testing.T) {
	retainer := client.Client{
		ID:                "c1",
		Name:              "Retainer Co",
		Model:             client.ModelRetainer,
		Status:            client.StatusActive,
		RetainerTotal:     40,
		RetainerRemaining: 16,
	}
	archived := activeClient("c3", "Archived Co")
	archived.Status = client.StatusArchived

	clients := []client.Client{
		withSession(retainer),
		withSession(activeClient("c2", "Hourly Co")),
		withSession(archived),
	}
	sessions := []session.Session{
		{ID: "s1", ClientID: "c1", Duration: 1, Revenue: 400, Billable: true},
		{ID: "s2", ClientID: "c2", Duration: 1, Revenue: 600, Billable: true},
		{ID: "s3", ClientID: "c3", Duration: 1, Revenue: 1000, Billable: true},
	}

	snap := Compute(sessions, clients, Options{NetMultiplier: 1})

	// Archived clients earn revenue slices but never rank.
	require.Len(t, snap.ClientRankings, 2)
	require.Equal(t, "Hourly Co", snap.ClientRankings[0].Name)
	require.Equal(t, 75, snap.ClientRankings[0].Utilization)
	require.Equal(t, "Retainer Co", snap.ClientRankings[1].Name)
	require.Equal(t, 60, snap.ClientRankings[1].Utilization)

	require.Len(t, snap.RevenueByClient, 3)
}

func TestCompute_ConcentrationWarning(t *testing.T) {
	clients := []client.Client{
		withSession(activeClient("c1", "Whale")),
		withSession(activeClient("c2", "Minnow")),
	}
	sessions := []session.Session{
		{ID: "s1", ClientID: "c1", Duration: 1, Revenue: 900, Billable: true},
		{ID: "s2", ClientID: "c2", Duration: 1, Revenue: 100, Billable: true},
	}

	snap := Compute(sessions, clients, Options{NetMultiplier: 1})
	require.True(t, snap.Performance.Concentration.Warn)
	require.Equal(t, "90%", snap.Performance.Concentration.Value)

	// An even split stays under the threshold.
	sessions[0].Revenue = 100
	snap = Compute(sessions, clients, Options{NetMultiplier: 1})
	require.False(t, snap.Performance.Concentration.Warn)
}

func TestCompute_ForwardSignals(t *testing.T) {
	hot := client.Client{
		ID: "c1", Name: "Hot", Model: client.ModelRetainer,
		Status: client.StatusActive, RetainerTotal: 100, RetainerRemaining: 10,
	}
	warm := client.Client{
		ID: "c2", Name: "Warm", Model: client.ModelRetainer,
		Status: client.StatusActive, RetainerTotal: 100, RetainerRemaining: 25,
	}
	cool := client.Client{
		ID: "c3", Name: "Cool", Model: client.ModelRetainer,
		Status: client.StatusActive, RetainerTotal: 100, RetainerRemaining: 60,
	}
	prospect := activeClient("c4", "Prospect Co")
	prospect.Status = client.StatusProspect

	clients := []client.Client{
		withSession(hot), withSession(warm), withSession(cool), prospect,
	}

	snap := Compute(nil, clients, Options{NetMultiplier: 1})

	require.Len(t, snap.ForwardSignals, 3)

	require.Equal(t, 1, snap.ForwardSignals[0].ID)
	require.Equal(t, SignalRetainer, snap.ForwardSignals[0].Type)
	require.Equal(t, "Hot", snap.ForwardSignals[0].ClientName)
	require.Equal(t, ImpactHigh, snap.ForwardSignals[0].Impact)

	require.Equal(t, 2, snap.ForwardSignals[1].ID)
	require.Equal(t, "Warm", snap.ForwardSignals[1].ClientName)
	require.Equal(t, ImpactMedium, snap.ForwardSignals[1].Impact)

	require.Equal(t, 3, snap.ForwardSignals[2].ID)
	require.Equal(t, SignalInactive, snap.ForwardSignals[2].Type)
	require.Equal(t, "Prospect Co", snap.ForwardSignals[2].ClientName)
	require.Equal(t, ImpactLow, snap.ForwardSignals[2].Impact)
}

func TestCompute_InactiveSignalForIdleActiveClient(t *testing.T) {
	idle := activeClient("c1", "Idle Co")

	snap := Compute(nil, []client.Client{idle}, Options{NetMultiplier: 1})
	require.Len(t, snap.ForwardSignals, 1)
	require.Equal(t, SignalInactive, snap.ForwardSignals[0].Type)
}

func TestCompute_Deterministic(t *testing.T) {
	clients := []client.Client{
		withSession(activeClient("c1", "Acme")),
		withSession(activeClient("c2", "Beta")),
	}
	sessions := []session.Session{
		{ID: "s1", ClientID: "c1", Duration: 1.25, Revenue: 312.5, Billable: true, WorkTags: []string{"Design"}},
		{ID: "s2", ClientID: "c2", Duration: 2.75, Revenue: 330, Billable: true},
	}

	first := Compute(sessions, clients, Options{NetMultiplier: 0.72, Currency: "EUR"})
	second := Compute(sessions, clients, Options{NetMultiplier: 0.72, Currency: "EUR"})
	require.Equal(t, first, second)
}
