// Package stats derives the dashboard figures from an already-fetched
// ticket collection.  Everything here is pure; "now" is always passed
// in so the date windows are testable.
//
// Note that Totals approximates cost with fixed ratios (70% of parts
// revenue, 50% of labor) instead of reusing the stored profit field.
// That is a second, slightly different formula from the costing
// package and both are kept deliberately distinct so the dashboard
// matches the figures the workshop has always seen.
package stats

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// Window selects the dashboard date range.  Anything else selects the
// whole collection.
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// UnknownLabel stands in for tickets whose model or issue is missing.
const UnknownLabel = "Unknown"

// weekdayNames indexes time.Weekday (Sunday == 0).
var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// FilterByWindow keeps tickets created inside the window relative to
// now: today is the same calendar day, week and month are trailing
// 7*24h and 30*24h.  The lower bound is inclusive and there is no
// upper bound, so future-dated tickets pass every window.
func FilterByWindow(repairs []*model.RepairRequest, w Window, now time.Time) []*model.RepairRequest {
	switch w {
	case WindowToday:
		return lo.Filter(repairs, func(r *model.RepairRequest, _ int) bool {
			return sameCalendarDay(r.CreatedAt, now)
		})
	case WindowWeek:
		cutoff := now.Add(-7 * 24 * time.Hour)
		return lo.Filter(repairs, func(r *model.RepairRequest, _ int) bool {
			return !r.CreatedAt.Before(cutoff)
		})
	case WindowMonth:
		cutoff := now.Add(-30 * 24 * time.Hour)
		return lo.Filter(repairs, func(r *model.RepairRequest, _ int) bool {
			return !r.CreatedAt.Before(cutoff)
		})
	default:
		out := make([]*model.RepairRequest, len(repairs))
		copy(out, repairs)
		return out
	}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Totals are the headline dashboard figures for a filtered window.
type Totals struct {
	Revenue   float64 `json:"total_revenue"`
	Cost      float64 `json:"total_cost"`
	NetProfit float64 `json:"net_profit"`
	Count     int     `json:"total_repairs"`
}

// ComputeTotals sums revenue from stored total_cost and approximates
// cost as 70% of each part line's revenue plus 50% of labor.
func ComputeTotals(repairs []*model.RepairRequest) Totals {
	revenue := lo.SumBy(repairs, func(r *model.RepairRequest) float64 {
		return r.TotalCost
	})
	cost := 0.0
	for _, r := range repairs {
		for _, p := range r.Parts {
			cost += float64(p.QuantityUsed) * p.PriceAtTime * 0.7
		}
		cost += r.LaborCost * 0.5
	}
	return Totals{
		Revenue:   revenue,
		Cost:      cost,
		NetProfit: revenue - cost,
		Count:     len(repairs),
	}
}

// DayProfit is one weekday bucket of the weekly profit chart.
type DayProfit struct {
	Day    string  `json:"name"`
	Profit float64 `json:"profit"`
}

// WeeklyProfitByDay buckets the stored profit of completed tickets
// created within the trailing 7 days by weekday (Sunday first).  It
// always looks at the trailing week regardless of the dashboard's
// selected window, so pass the unfiltered collection.
func WeeklyProfitByDay(repairs []*model.RepairRequest, now time.Time) []DayProfit {
	out := make([]DayProfit, 7)
	for i := range out {
		out[i].Day = weekdayNames[i]
	}
	cutoff := now.Add(-7 * 24 * time.Hour)
	for _, r := range repairs {
		if r.Status != model.StatusCompleted || r.CreatedAt.Before(cutoff) {
			continue
		}
		out[int(r.CreatedAt.Weekday())].Profit += r.Profit
	}
	return out
}

// FrequencyCount is a name/count pair for the top-5 charts.
type FrequencyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopModelsByFrequency ranks model names by ticket count, most
// frequent first.  Ties keep first-encountered order; tickets without
// a joined model fall into the Unknown bucket.
func TopModelsByFrequency(repairs []*model.RepairRequest, limit int) []FrequencyCount {
	return topByFrequency(repairs, limit, func(r *model.RepairRequest) string {
		if r.Model == nil || r.Model.Name == "" {
			return UnknownLabel
		}
		return r.Model.Name
	})
}

// TopIssuesByFrequency ranks issue types by ticket count with the
// same ordering rules as TopModelsByFrequency.
func TopIssuesByFrequency(repairs []*model.RepairRequest, limit int) []FrequencyCount {
	return topByFrequency(repairs, limit, func(r *model.RepairRequest) string {
		if r.IssueType == "" {
			return UnknownLabel
		}
		return r.IssueType
	})
}

func topByFrequency(repairs []*model.RepairRequest, limit int, key func(*model.RepairRequest) string) []FrequencyCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range repairs {
		k := key(r)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	out := lo.Map(order, func(name string, _ int) FrequencyCount {
		return FrequencyCount{Name: name, Count: counts[name]}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
