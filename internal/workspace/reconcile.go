package workspace

import (
	"context"
	"math"
	"time"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/session"
)

// Report summarizes a reconciliation pass.
type Report struct {
	ProjectsRepaired  int `json:"projectsRepaired"`
	RetainersRepaired int `json:"retainersRepaired"`
	ClientsRefreshed  int `json:"clientsRefreshed"`
}

// rollup tolerance for float comparison
const rollupEpsilon = 1e-9

// Reconcile rebuilds every derived rollup from the session history: project
// hour and revenue totals, retainer balances for the current cycle, and the
// clients' cached stats. It is the repair path for drift left behind by
// logged-only persistence failures.
func (w *Workspace) Reconcile(ctx context.Context) (Report, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var report Report
	report.ProjectsRepaired = w.reconcileProjectTotals(ctx)
	report.RetainersRepaired = w.reconcileRetainers(ctx)
	report.ClientsRefreshed = w.reconcileClientStats(ctx)
	w.recompute()
	return report, nil
}

// reconcileProjectTotals recomputes each project's hours and revenue from
// the sessions allocated to it and repairs any mismatch.
func (w *Workspace) reconcileProjectTotals(ctx context.Context) int {
	type totals struct {
		hours   float64
		revenue float64
	}
	byProject := make(map[string]totals, len(w.projects))
	for _, s := range w.sessions {
		if s.Allocation != session.AllocationProject || s.ProjectID == nil {
			continue
		}
		t := byProject[*s.ProjectID]
		t.hours += s.Duration
		t.revenue += s.Revenue
		byProject[*s.ProjectID] = t
	}

	repaired := 0
	for _, p := range w.projects {
		want := byProject[p.ID]
		if math.Abs(p.Hours-want.hours) < rollupEpsilon && math.Abs(p.Revenue-want.revenue) < rollupEpsilon {
			continue
		}
		w.logger.Info("repairing project totals",
			"project_id", p.ID,
			"hours", p.Hours, "want_hours", want.hours,
			"revenue", p.Revenue, "want_revenue", want.revenue)
		p.Hours = want.hours
		p.Revenue = want.revenue
		if err := w.stores.Projects.Update(ctx, w.id, p); err != nil {
			w.logger.Error("project reconciliation write failed", "project_id", p.ID, "error", err)
			continue
		}
		repaired++
	}
	return repaired
}

// reconcileRetainers recomputes each retainer client's remaining balance
// for the current calendar-month cycle: total minus the billable retainer
// hours logged this month, clamped to the valid range.
func (w *Workspace) reconcileRetainers(ctx context.Context) int {
	now := time.Now()
	repaired := 0
	for _, c := range w.clients {
		if c.Model != client.ModelRetainer {
			continue
		}
		used := 0.0
		for _, s := range w.sessions {
			if s.ClientID != c.ID || s.Allocation != session.AllocationRetainer || !s.Billable {
				continue
			}
			if sameMonth(s.Date, now) {
				used += s.Duration
			}
		}
		want := c.RetainerTotal - used
		if want < 0 {
			want = 0
		}
		if math.Abs(c.RetainerRemaining-want) < rollupEpsilon {
			continue
		}
		w.logger.Info("repairing retainer balance",
			"client_id", c.ID, "remaining", c.RetainerRemaining, "want", want)
		c.RetainerRemaining = want
		if err := w.stores.Clients.Update(ctx, w.id, c); err != nil {
			w.logger.Error("retainer reconciliation write failed", "client_id", c.ID, "error", err)
			continue
		}
		repaired++
	}
	return repaired
}

// reconcileClientStats rebuilds each client's cached rollups from the
// session history and persists the ones that changed.
func (w *Workspace) reconcileClientStats(ctx context.Context) int {
	refreshed := 0
	for _, c := range w.clients {
		before := *c
		w.recomputeClientStats(c)
		if clientStatsEqual(&before, c) {
			continue
		}
		if err := w.stores.Clients.Update(ctx, w.id, c); err != nil {
			w.logger.Error("client stats reconciliation write failed", "client_id", c.ID, "error", err)
			continue
		}
		refreshed++
	}
	return refreshed
}

func clientStatsEqual(a, b *client.Client) bool {
	if math.Abs(a.MonthlyEarnings-b.MonthlyEarnings) >= rollupEpsilon ||
		math.Abs(a.LifetimeRevenue-b.LifetimeRevenue) >= rollupEpsilon ||
		math.Abs(a.HoursLogged-b.HoursLogged) >= rollupEpsilon ||
		math.Abs(a.TrueHourlyRate-b.TrueHourlyRate) >= rollupEpsilon {
		return false
	}
	switch {
	case a.LastSessionDate == nil && b.LastSessionDate == nil:
		return true
	case a.LastSessionDate == nil || b.LastSessionDate == nil:
		return false
	default:
		return a.LastSessionDate.Equal(*b.LastSessionDate)
	}
}
