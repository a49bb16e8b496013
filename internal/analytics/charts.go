package analytics

import (
	"sort"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// ComputeCharts buckets the transactions inside start..end (inclusive) by UTC day.
// Days without activity are left out, so both series can be empty. Series run
// oldest first; categories are ordered by total, largest first.
func ComputeCharts(transactions []*domain.Transaction, start, end time.Time) domain.ChartData {
	byCategory := make(map[string]decimal.Decimal)
	expenses := make(map[string]decimal.Decimal)
	income := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if t.OccurredOn.Before(start) || t.OccurredOn.After(end) {
			continue
		}
		day := t.OccurredOn.UTC().Format(dayLayout)
		if t.IsIncome {
			income[day] = income[day].Add(t.Amount)
			continue
		}
		expenses[day] = expenses[day].Add(t.Amount)
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}

	return domain.ChartData{
		Start:              start,
		End:                end,
		ExpensesByCategory: rankCategories(byCategory),
		ExpensesOverTime:   daySeries(expenses),
		IncomeOverTime:     daySeries(income),
	}
}

func rankCategories(totals map[string]decimal.Decimal) []domain.CategoryTotal {
	out := make([]domain.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, domain.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func daySeries(totals map[string]decimal.Decimal) []domain.ChartPoint {
	out := make([]domain.ChartPoint, 0, len(totals))
	for day, total := range totals {
		out = append(out, domain.ChartPoint{Date: day, Total: total})
	}
	// YYYY-MM-DD sorts chronologically
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
