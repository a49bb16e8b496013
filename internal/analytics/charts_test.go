package analytics

import (
	"testing"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func income(amount string, on time.Time) *domain.Transaction {
	return &domain.Transaction{Category: "Salary", Amount: dec(amount), IsIncome: true, OccurredOn: on}
}

func TestComputeCharts(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 999999999, time.UTC)
	transactions := []*domain.Transaction{
		expense("Rent", "900", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
		expense("Food", "12.50", time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)),
		expense("Food", "7.25", time.Date(2024, 6, 3, 19, 0, 0, 0, time.UTC)),
		expense("Fun", "900", time.Date(2024, 6, 20, 21, 0, 0, 0, time.UTC)),
		income("3000", time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)),
		// outside the window
		expense("Food", "99", time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC)),
		income("50", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	}

	charts := ComputeCharts(transactions, start, end)

	assert.Equal(t, start, charts.Start)
	assert.Equal(t, end, charts.End)

	require.Len(t, charts.ExpensesByCategory, 3)
	// equal totals fall back to name order
	assert.Equal(t, "Fun", charts.ExpensesByCategory[0].Category)
	assert.Equal(t, "Rent", charts.ExpensesByCategory[1].Category)
	assert.Equal(t, "Food", charts.ExpensesByCategory[2].Category)
	assert.True(t, charts.ExpensesByCategory[2].Total.Equal(dec("19.75")))

	require.Len(t, charts.ExpensesOverTime, 3)
	assert.Equal(t, "2024-06-01", charts.ExpensesOverTime[0].Date)
	assert.Equal(t, "2024-06-03", charts.ExpensesOverTime[1].Date)
	assert.True(t, charts.ExpensesOverTime[1].Total.Equal(dec("19.75")))
	assert.Equal(t, "2024-06-20", charts.ExpensesOverTime[2].Date)

	require.Len(t, charts.IncomeOverTime, 1)
	assert.Equal(t, "2024-06-28", charts.IncomeOverTime[0].Date)
	assert.True(t, charts.IncomeOverTime[0].Total.Equal(dec("3000")))
}

func TestComputeCharts_BucketsByUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	// June 11 at 08:00 in UTC+9 is June 10 in UTC
	charts := ComputeCharts([]*domain.Transaction{
		expense("Food", "10", time.Date(2024, 6, 11, 8, 0, 0, 0, loc)),
	}, start, end)

	require.Len(t, charts.ExpensesOverTime, 1)
	assert.Equal(t, "2024-06-10", charts.ExpensesOverTime[0].Date)
}

func TestComputeCharts_Empty(t *testing.T) {
	charts := ComputeCharts(nil, time.Now(), time.Now())

	assert.NotNil(t, charts.ExpensesByCategory)
	assert.Empty(t, charts.ExpensesByCategory)
	assert.NotNil(t, charts.ExpensesOverTime)
	assert.NotNil(t, charts.IncomeOverTime)
}
