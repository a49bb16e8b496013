package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultChartDays = 30
	MaxChartDays     = 366
)

// ChartPoint is the total of one UTC day, Date formatted YYYY-MM-DD
type ChartPoint struct {
	Date  string
	Total decimal.Decimal
}

// ChartData holds the dashboard series for the inclusive window Start..End
type ChartData struct {
	Start              time.Time
	End                time.Time
	ExpensesByCategory []CategoryTotal
	ExpensesOverTime   []ChartPoint
	IncomeOverTime     []ChartPoint
}
