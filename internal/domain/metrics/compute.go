package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/solobooks/solobooks/internal/domain/client"
	"github.com/solobooks/solobooks/internal/domain/session"
)

// Options parameterize an aggregation pass.
type Options struct {
	// NetMultiplier is 1 - taxRate - processingFeeRate.
	NetMultiplier float64
	// Currency is the ISO code used for display strings. Unknown or empty
	// codes fall back to USD.
	Currency string
}

const (
	// concentrationWarnPct is the revenue share above which the
	// concentration card warns.
	concentrationWarnPct = 50
	// retainerWarnPct and retainerHighPct are the retainer-usage signal
	// thresholds.
	retainerWarnPct = 70
	retainerHighPct = 85
	// placeholderUtilization stands in for clients without a retainer,
	// which have no per-cycle balance to measure against.
	placeholderUtilization = 75
	// generalCategory buckets untagged session time.
	generalCategory = "General"
)

// Compute aggregates the full session and client collections into a
// Snapshot. It is a pure function: deterministic, no I/O, safe to re-run on
// every state change.
func Compute(sessions []session.Session, clients []client.Client, opts Options) Snapshot {
	var snap Snapshot

	byID := make(map[string]*client.Client, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}

	// Money totals accumulate in decimals; float sums drift across a few
	// thousand sessions.
	totalRevenue := decimal.Zero
	revenueByClient := make(map[string]decimal.Decimal)
	hoursByCategory := make(map[string]float64)
	var totalHours, billableHours float64

	for _, s := range sessions {
		rev := decimal.NewFromFloat(s.Revenue)
		totalRevenue = totalRevenue.Add(rev)
		revenueByClient[s.ClientID] = revenueByClient[s.ClientID].Add(rev)
		totalHours += s.Duration
		if s.Billable {
			billableHours += s.Duration
		}

		if len(s.WorkTags) == 0 {
			hoursByCategory[generalCategory] += s.Duration
		} else {
			per := s.Duration / float64(len(s.WorkTags))
			for _, tag := range s.WorkTags {
				hoursByCategory[tag] += per
			}
		}
	}

	snap.TotalRevenue = totalRevenue.InexactFloat64()
	snap.TotalHours = totalHours
	snap.BillableHours = billableHours
	if billableHours > 0 {
		snap.AvgHourlyRate = snap.TotalRevenue / billableHours
	}
	snap.NetRevenue = totalRevenue.Mul(decimal.NewFromFloat(opts.NetMultiplier)).InexactFloat64()

	snap.RevenueByClient = revenueSlices(revenueByClient, byID, snap.TotalRevenue)
	snap.HoursByCategory = categorySlices(hoursByCategory, totalHours)
	snap.TimeAllocation = timeAllocation(snap.HoursByCategory)
	snap.ClientRankings = rankings(revenueByClient, byID, snap.TotalRevenue)
	snap.Performance = performance(snap, opts)
	snap.ForwardSignals = forwardSignals(clients)

	return snap
}

func revenueSlices(revenue map[string]decimal.Decimal, byID map[string]*client.Client, total float64) []RevenueSlice {
	slices := make([]RevenueSlice, 0, len(revenue))
	for id, rev := range revenue {
		amount := rev.InexactFloat64()
		if amount == 0 {
			continue
		}
		name := "Unknown client"
		if c, ok := byID[id]; ok {
			name = c.Name
		}
		slices = append(slices, RevenueSlice{
			ClientID: id,
			Name:     name,
			Revenue:  amount,
			Share:    share(amount, total),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Revenue != slices[j].Revenue {
			return slices[i].Revenue > slices[j].Revenue
		}
		return slices[i].Name < slices[j].Name
	})
	return slices
}

func categorySlices(hours map[string]float64, total float64) []CategorySlice {
	slices := make([]CategorySlice, 0, len(hours))
	for category, h := range hours {
		slices = append(slices, CategorySlice{
			Category: category,
			Hours:    h,
			Share:    share(h, total),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Hours != slices[j].Hours {
			return slices[i].Hours > slices[j].Hours
		}
		return slices[i].Category < slices[j].Category
	})
	return slices
}

func timeAllocation(categories []CategorySlice) []TimeSlice {
	allocation := make([]TimeSlice, 0, len(categories))
	for _, c := range categories {
		allocation = append(allocation, TimeSlice{
			Category: c.Category,
			Hours:    math.Round(c.Hours*10) / 10,
			Percent:  c.Share,
		})
	}
	return allocation
}

func rankings(revenue map[string]decimal.Decimal, byID map[string]*client.Client, total float64) []ClientRanking {
	ranked := make([]ClientRanking, 0, len(revenue))
	for id, rev := range revenue {
		c, ok := byID[id]
		if !ok || c.Status != client.StatusActive {
			continue
		}
		amount := rev.InexactFloat64()
		if amount <= 0 {
			continue
		}
		ranked = append(ranked, ClientRanking{
			ClientID:    id,
			Name:        c.Name,
			Revenue:     amount,
			Utilization: utilization(c),
			Share:       share(amount, total),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

func utilization(c *client.Client) int {
	if c.Model == client.ModelRetainer && c.RetainerTotal > 0 {
		used := c.RetainerTotal - c.RetainerRemaining
		return roundPct(used / c.RetainerTotal * 100)
	}
	return placeholderUtilization
}

func performance(snap Snapshot, opts Options) Performance {
	concentration := Card{
		Label:  "Client concentration",
		Value:  "0%",
		Detail: "No revenue recorded yet",
	}
	if len(snap.ClientRankings) > 0 {
		top := snap.ClientRankings[0]
		concentration.Value = fmt.Sprintf("%d%%", top.Share)
		concentration.Detail = fmt.Sprintf("%s drives %d%% of revenue", top.Name, top.Share)
		concentration.Warn = top.Share > concentrationWarnPct
	}

	meanUtilization := 0
	if n := len(snap.ClientRankings); n > 0 {
		sum := 0
		for _, r := range snap.ClientRankings {
			sum += r.Utilization
		}
		meanUtilization = roundPct(float64(sum) / float64(n))
	}
	utilizationCard := Card{
		Label:  "Average utilization",
		Value:  fmt.Sprintf("%d%%", meanUtilization),
		Detail: fmt.Sprintf("Across %d ranked clients", len(snap.ClientRankings)),
	}

	rate := Card{
		Label:  "Effective rate",
		Value:  formatMoney(math.Round(snap.AvgHourlyRate), opts.Currency) + "/hr",
		Detail: fmt.Sprintf("Blended over %.1f billable hours", snap.BillableHours),
	}

	marginPct := roundPct(opts.NetMultiplier * 100)
	margin := Card{
		Label:  "Net margin",
		Value:  fmt.Sprintf("%d%%", marginPct),
		Detail: formatMoney(snap.NetRevenue, opts.Currency) + " net of taxes and fees",
	}

	return Performance{
		Concentration: concentration,
		Utilization:   utilizationCard,
		EffectiveRate: rate,
		NetMargin:     margin,
	}
}

func forwardSignals(clients []client.Client) []Signal {
	var signals []Signal
	nextID := 1

	for i := range clients {
		c := &clients[i]
		if c.Status != client.StatusActive || c.Model != client.ModelRetainer || c.RetainerTotal <= 0 {
			continue
		}
		used := c.RetainerTotal - c.RetainerRemaining
		usedPct := roundPct(used / c.RetainerTotal * 100)
		if usedPct < retainerWarnPct {
			continue
		}
		impact := ImpactMedium
		if usedPct >= retainerHighPct {
			impact = ImpactHigh
		}
		signals = append(signals, Signal{
			ID:         nextID,
			Type:       SignalRetainer,
			ClientID:   c.ID,
			ClientName: c.Name,
			Message:    fmt.Sprintf("%s has used %d%% of retainer hours this cycle", c.Name, usedPct),
			Impact:     impact,
		})
		nextID++
	}

	for i := range clients {
		c := &clients[i]
		inactive := c.Status == client.StatusProspect ||
			(c.Status == client.StatusActive && c.LastSessionDate == nil)
		if !inactive {
			continue
		}
		signals = append(signals, Signal{
			ID:         nextID,
			Type:       SignalInactive,
			ClientID:   c.ID,
			ClientName: c.Name,
			Message:    fmt.Sprintf("No sessions logged for %s", c.Name),
			Impact:     ImpactLow,
		})
		nextID++
	}

	return signals
}

func share(part, total float64) int {
	if total == 0 {
		return 0
	}
	return roundPct(part / total * 100)
}

func roundPct(pct float64) int {
	return int(math.Round(pct))
}

func formatMoney(amount float64, code string) string {
	if code == "" || money.GetCurrency(code) == nil {
		code = money.USD
	}
	cents := int64(math.Round(amount * 100))
	return money.New(cents, code).Display()
}
