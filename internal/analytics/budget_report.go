package analytics

import (
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Status thresholds, in percent of the budget spent
var (
	OverThreshold    = decimal.NewFromInt(100)
	WarningThreshold = decimal.NewFromInt(80)
	CautionThreshold = decimal.NewFromInt(60)
)

// ComputeBudgetReport produces one report per budget, in input order. A budget only
// counts non-income transactions of its own category dated inside its own month.
func ComputeBudgetReport(budgets []*domain.Budget, transactions []*domain.Transaction) []domain.BudgetReport {
	reports := make([]domain.BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		reports = append(reports, reportFor(b, transactions))
	}
	return reports
}

func reportFor(b *domain.Budget, transactions []*domain.Transaction) domain.BudgetReport {
	start, end := util.MonthBounds(b.Year, b.Month)

	spent := decimal.Zero
	for _, t := range transactions {
		if t.IsIncome || t.Category != b.Category {
			continue
		}
		if t.OccurredOn.Before(start) || t.OccurredOn.After(end) {
			continue
		}
		spent = spent.Add(t.Amount)
	}

	pct := decimal.Zero
	if b.Amount.IsPositive() {
		pct = Round2(spent.Mul(hundred).Div(b.Amount))
	}

	return domain.BudgetReport{
		BudgetID:        b.ID,
		Category:        b.Category,
		BudgetAmount:    b.Amount,
		SpentAmount:     spent,
		RemainingAmount: b.Amount.Sub(spent),
		PercentageSpent: pct,
		Status:          StatusFor(pct),
		Month:           b.Month,
		Year:            b.Year,
	}
}

// StatusFor classifies a (rounded) spent percentage
func StatusFor(pct decimal.Decimal) domain.BudgetStatus {
	switch {
	case pct.GreaterThanOrEqual(OverThreshold):
		return domain.BudgetStatusOver
	case pct.GreaterThanOrEqual(WarningThreshold):
		return domain.BudgetStatusWarning
	case pct.GreaterThanOrEqual(CautionThreshold):
		return domain.BudgetStatusCaution
	default:
		return domain.BudgetStatusSafe
	}
}
