// Package analytics turns raw transactions and budgets into budget-versus-actual
// reports, month-over-month spending insights and the daily dashboard series.
//
// Everything here is a pure function of its arguments. Callers load the data and
// pick the window.
package analytics
