package analytics

import (
	"fmt"
	"sort"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	IncreaseThreshold = decimal.NewFromInt(10)
	DecreaseThreshold = decimal.NewFromInt(-10)
	AlertThreshold    = decimal.NewFromInt(50)
)

// ComputeInsights compares per-category expense totals of the current month with the
// previous month. Only categories present in current get a row; rows are ordered by
// current total, largest first, ties broken by category name.
func ComputeInsights(current, previous map[string]decimal.Decimal) domain.InsightsReport {
	categories := make([]string, 0, len(current))
	for c := range current {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := current[categories[i]], current[categories[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return categories[i] < categories[j]
	})

	insights := make([]domain.SpendingInsight, 0, len(categories))
	alerts := make([]domain.Alert, 0)
	for _, category := range categories {
		cur := current[category]
		prev, ok := previous[category]
		if !ok {
			prev = decimal.Zero
		}

		change := PercentChange(cur, prev)
		insights = append(insights, domain.SpendingInsight{
			Category:           category,
			CurrentMonthTotal:  cur,
			PreviousMonthTotal: prev,
			PercentChange:      change,
			ChangeDirection:    DirectionFor(change),
		})

		if change.GreaterThan(AlertThreshold) {
			alerts = append(alerts, domain.Alert{
				Severity: domain.AlertSeverityWarning,
				Category: category,
				Message: fmt.Sprintf("Your %s spending increased by %s%% compared to last month",
					category, change.StringFixed(1)),
			})
		}
	}

	return domain.InsightsReport{
		Insights:      insights,
		Alerts:        alerts,
		TotalCurrent:  sum(current),
		TotalPrevious: sum(previous),
	}
}

// PercentChange returns the rounded change from prev to cur, or zero when there is
// no positive baseline.
func PercentChange(cur, prev decimal.Decimal) decimal.Decimal {
	if !prev.IsPositive() {
		return decimal.Zero
	}
	return Round2(cur.Sub(prev).Mul(hundred).Div(prev))
}

func DirectionFor(change decimal.Decimal) domain.ChangeDirection {
	switch {
	case change.GreaterThan(IncreaseThreshold):
		return domain.ChangeIncrease
	case change.LessThan(DecreaseThreshold):
		return domain.ChangeDecrease
	default:
		return domain.ChangeStable
	}
}

// TotalsByCategory folds category totals into a map, merging repeated categories
func TotalsByCategory(totals []*domain.CategoryTotal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		out[t.Category] = out[t.Category].Add(t.Total)
	}
	return out
}
