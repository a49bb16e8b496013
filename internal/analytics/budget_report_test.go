package analytics

import (
	"testing"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(category, amount string, on time.Time) *domain.Transaction {
	return &domain.Transaction{Category: category, Amount: dec(amount), OccurredOn: on}
}

func budget(id int32, category, amount string, year, month int) *domain.Budget {
	return &domain.Budget{ID: id, WorkspaceID: 1, Category: category, Amount: dec(amount), Year: year, Month: month}
}

func TestComputeBudgetReport_MixedMonths(t *testing.T) {
	budgets := []*domain.Budget{budget(1, "Food", "500", 2024, 6)}
	transactions := []*domain.Transaction{
		expense("Food", "300", time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)),
		expense("Food", "120", time.Date(2024, 6, 28, 18, 30, 0, 0, time.UTC)),
		expense("Food", "50", time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)),
	}

	reports := ComputeBudgetReport(budgets, transactions)

	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, "Food", r.Category)
	assert.True(t, r.SpentAmount.Equal(dec("420")), "spent = %s", r.SpentAmount)
	assert.True(t, r.RemainingAmount.Equal(dec("80")), "remaining = %s", r.RemainingAmount)
	assert.True(t, r.PercentageSpent.Equal(dec("84")), "pct = %s", r.PercentageSpent)
	assert.Equal(t, domain.BudgetStatusWarning, r.Status)
	assert.Equal(t, 6, r.Month)
	assert.Equal(t, 2024, r.Year)
}

func TestComputeBudgetReport_NoMatchingTransactions(t *testing.T) {
	budgets := []*domain.Budget{budget(1, "Travel", "250", 2024, 6)}
	transactions := []*domain.Transaction{
		expense("Food", "90", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)),
	}

	reports := ComputeBudgetReport(budgets, transactions)

	require.Len(t, reports, 1)
	assert.True(t, reports[0].SpentAmount.IsZero())
	assert.True(t, reports[0].PercentageSpent.IsZero())
	assert.True(t, reports[0].RemainingAmount.Equal(dec("250")))
	assert.Equal(t, domain.BudgetStatusSafe, reports[0].Status)
}

func TestComputeBudgetReport_IgnoresIncome(t *testing.T) {
	budgets := []*domain.Budget{budget(1, "Food", "100", 2024, 6)}
	refund := expense("Food", "40", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	refund.IsIncome = true

	reports := ComputeBudgetReport(budgets, []*domain.Transaction{refund})

	assert.True(t, reports[0].SpentAmount.IsZero())
}

func TestComputeBudgetReport_MonthEdges(t *testing.T) {
	budgets := []*domain.Budget{budget(1, "Food", "100", 2024, 6)}
	transactions := []*domain.Transaction{
		expense("Food", "1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		expense("Food", "2", time.Date(2024, 6, 30, 23, 59, 59, 999000000, time.UTC)),
		expense("Food", "4", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
		expense("Food", "8", time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)),
	}

	reports := ComputeBudgetReport(budgets, transactions)

	assert.True(t, reports[0].SpentAmount.Equal(dec("3")), "spent = %s", reports[0].SpentAmount)
}

func TestComputeBudgetReport_StatusThresholds(t *testing.T) {
	tests := []struct {
		name   string
		spent  string
		pct    string
		status domain.BudgetStatus
	}{
		{"just under caution", "59.99", "59.99", domain.BudgetStatusSafe},
		{"exactly caution", "60", "60", domain.BudgetStatusCaution},
		{"exactly warning", "80", "80", domain.BudgetStatusWarning},
		{"just under over", "99.99", "99.99", domain.BudgetStatusWarning},
		{"exactly over", "100", "100", domain.BudgetStatusOver},
		{"well over", "180", "180", domain.BudgetStatusOver},
		{"rounds up into over", "99.996", "100", domain.BudgetStatusOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := []*domain.Budget{budget(1, "Food", "100", 2024, 6)}
			transactions := []*domain.Transaction{
				expense("Food", tt.spent, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
			}

			r := ComputeBudgetReport(budgets, transactions)[0]

			assert.True(t, r.PercentageSpent.Equal(dec(tt.pct)), "pct = %s", r.PercentageSpent)
			assert.Equal(t, tt.status, r.Status)
		})
	}
}

func TestComputeBudgetReport_NonPositiveBudget(t *testing.T) {
	budgets := []*domain.Budget{
		budget(1, "Food", "0", 2024, 6),
		budget(2, "Fun", "-10", 2024, 6),
	}
	transactions := []*domain.Transaction{
		expense("Food", "25", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
		expense("Fun", "5", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	reports := ComputeBudgetReport(budgets, transactions)

	require.Len(t, reports, 2)
	assert.True(t, reports[0].PercentageSpent.IsZero())
	assert.Equal(t, domain.BudgetStatusSafe, reports[0].Status)
	assert.True(t, reports[0].RemainingAmount.Equal(dec("-25")))
	assert.True(t, reports[1].PercentageSpent.IsZero())
	assert.True(t, reports[1].RemainingAmount.Equal(dec("-15")))
}

func TestComputeBudgetReport_RemainingIsExact(t *testing.T) {
	budgets := []*domain.Budget{budget(1, "Food", "333.33", 2024, 6)}
	transactions := []*domain.Transaction{
		expense("Food", "111.111", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		expense("Food", "0.004", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)),
	}

	r := ComputeBudgetReport(budgets, transactions)[0]

	assert.True(t, r.RemainingAmount.Equal(r.BudgetAmount.Sub(r.SpentAmount)))
	assert.True(t, r.RemainingAmount.Equal(dec("222.215")))
}

func TestComputeBudgetReport_DuplicateBudgetsNotMerged(t *testing.T) {
	budgets := []*domain.Budget{
		budget(1, "Food", "500", 2024, 6),
		budget(2, "Food", "200", 2024, 6),
	}
	transactions := []*domain.Transaction{
		expense("Food", "150", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	reports := ComputeBudgetReport(budgets, transactions)

	require.Len(t, reports, 2)
	assert.Equal(t, int32(1), reports[0].BudgetID)
	assert.Equal(t, int32(2), reports[1].BudgetID)
	assert.True(t, reports[0].SpentAmount.Equal(dec("150")))
	assert.True(t, reports[1].SpentAmount.Equal(dec("150")))
	assert.True(t, reports[0].PercentageSpent.Equal(dec("30")))
	assert.True(t, reports[1].PercentageSpent.Equal(dec("75")))
	assert.Equal(t, domain.BudgetStatusCaution, reports[1].Status)
}

func TestComputeBudgetReport_EachBudgetUsesItsOwnMonth(t *testing.T) {
	budgets := []*domain.Budget{
		budget(1, "Food", "100", 2024, 5),
		budget(2, "Food", "100", 2024, 6),
	}
	transactions := []*domain.Transaction{
		expense("Food", "10", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)),
		expense("Food", "70", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	reports := ComputeBudgetReport(budgets, transactions)

	assert.True(t, reports[0].SpentAmount.Equal(dec("10")))
	assert.True(t, reports[1].SpentAmount.Equal(dec("70")))
}

func TestComputeBudgetReport_CategoryIsCaseSensitive(t *testing.T) {
	budgets := []*domain.Budget{budget(1, "Food", "100", 2024, 6)}
	transactions := []*domain.Transaction{
		expense("food", "10", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	reports := ComputeBudgetReport(budgets, transactions)

	assert.True(t, reports[0].SpentAmount.IsZero())
}

func TestComputeBudgetReport_EmptyInput(t *testing.T) {
	reports := ComputeBudgetReport(nil, nil)

	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestComputeBudgetReport_Idempotent(t *testing.T) {
	budgets := []*domain.Budget{budget(1, "Food", "500", 2024, 6), budget(2, "Rent", "1000", 2024, 6)}
	transactions := []*domain.Transaction{
		expense("Food", "123.45", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)),
		expense("Rent", "1000", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
	}

	first := ComputeBudgetReport(budgets, transactions)
	second := ComputeBudgetReport(budgets, transactions)

	assert.Equal(t, first, second)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"66.6666666", "66.67"},
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"-1.005", "-1"},
		{"-1.006", "-1.01"},
		{"84", "84"},
		{"0", "0"},
	}

	for _, tt := range tests {
		got := Round2(dec(tt.in))
		assert.True(t, got.Equal(dec(tt.want)), "Round2(%s) = %s, want %s", tt.in, got, tt.want)
	}
}
