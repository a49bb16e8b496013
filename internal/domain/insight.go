package domain

import "github.com/shopspring/decimal"

type ChangeDirection string

const (
	ChangeIncrease ChangeDirection = "increase"
	ChangeDecrease ChangeDirection = "decrease"
	ChangeStable   ChangeDirection = "stable"
)

const AlertSeverityWarning = "warning"

// SpendingInsight compares one category's spending across two consecutive months
type SpendingInsight struct {
	Category           string          `json:"category"`
	CurrentMonthTotal  decimal.Decimal `json:"currentMonthTotal"`
	PreviousMonthTotal decimal.Decimal `json:"previousMonthTotal"`
	PercentChange      decimal.Decimal `json:"percentChange"`
	ChangeDirection    ChangeDirection `json:"changeDirection"`
}

type Alert struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type InsightsReport struct {
	Insights      []SpendingInsight `json:"insights"`
	Alerts        []Alert           `json:"alerts"`
	TotalCurrent  decimal.Decimal   `json:"totalCurrentMonth"`
	TotalPrevious decimal.Decimal   `json:"totalLastMonth"`
}
