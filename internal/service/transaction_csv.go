package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/util"
	"github.com/receiptwise/receiptwise-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var exportHeader = []string{"Date", "Name", "Category", "Type", "Amount", "Tags"}

// ExportCSV writes every transaction in the workspace, newest first
func (s *TransactionService) ExportCSV(ctx context.Context, workspaceID int32, w io.Writer) (int, error) {
	transactions, err := s.transactionRepo.ListAll(ctx, workspaceID)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}
	for _, t := range transactions {
		kind := "expense"
		if t.IsIncome {
			kind = "income"
		}
		record := []string{
			t.OccurredOn.UTC().Format("2006-01-02"),
			t.Name,
			t.Category,
			kind,
			t.Amount.StringFixed(2),
			strings.Join(t.Tags, ";"),
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return len(transactions), nil
}

// ImportMapping names the CSV header used for each transaction field.
// Name and Amount are required; the rest are optional.
type ImportMapping struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Type     string `json:"type"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type columnIndex struct {
	name, amount, category, date, kind int
}

func (m ImportMapping) resolve(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}
	lookup := func(column string) int {
		column = strings.ToLower(strings.TrimSpace(column))
		if column == "" {
			return -1
		}
		if i, ok := positions[column]; ok {
			return i
		}
		return -1
	}

	idx := columnIndex{
		name:     lookup(m.Name),
		amount:   lookup(m.Amount),
		category: lookup(m.Category),
		date:     lookup(m.Date),
		kind:     lookup(m.Type),
	}
	if idx.name < 0 || idx.amount < 0 {
		return idx, fmt.Errorf("%w: name and amount columns are required", domain.ErrInvalidCSV)
	}
	return idx, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// cleanAmount drops currency symbols, thousands separators and anything else
// that is not part of a signed decimal number
func cleanAmount(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(raw), "(") && strings.HasSuffix(strings.TrimSpace(raw), ")") {
		return decimal.NewFromString("-" + strings.TrimPrefix(b.String(), "-"))
	}
	return decimal.NewFromString(b.String())
}

func isIncomeType(value string) bool {
	value = strings.ToLower(value)
	return strings.Contains(value, "income") || strings.Contains(value, "credit")
}

// ImportCSV parses a CSV upload using mapping and stores the valid rows in one batch.
// Rows without a name or with an unparseable or zero amount are skipped.
func (s *TransactionService) ImportCSV(ctx context.Context, workspaceID int32, r io.Reader, mapping ImportMapping) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCSV, err)
	}

	idx, err := mapping.resolve(header)
	if err != nil {
		return nil, err
	}

	var rules []*domain.CategoryRule
	if s.rules != nil {
		rules, err = s.rules.ListRules(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
	}

	today := s.now().UTC()
	result := &ImportResult{}
	batch := make([]*domain.Transaction, 0)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCSV, err)
		}

		name := field(record, idx.name)
		if name == "" || len(name) > domain.MaxNameLength {
			result.Skipped++
			continue
		}

		amount, err := cleanAmount(field(record, idx.amount))
		if err != nil || amount.IsZero() {
			result.Skipped++
			continue
		}

		isIncome := amount.IsPositive()
		if kind := field(record, idx.kind); kind != "" {
			isIncome = isIncomeType(kind)
		}

		category := field(record, idx.category)
		if category == "" || len(category) > domain.MaxCategoryLength {
			if rule := domain.MatchCategoryRule(rules, name); rule != nil {
				category = rule.Category
			} else {
				category = domain.DefaultCategoryFor(isIncome)
			}
		}

		occurredOn, ok := util.ParseDate(field(record, idx.date))
		if !ok {
			occurredOn = today
		}

		batch = append(batch, &domain.Transaction{
			WorkspaceID: workspaceID,
			Name:        name,
			Category:    category,
			Amount:      amount.Abs(),
			IsIncome:    isIncome,
			OccurredOn:  occurredOn,
			Tags:        []string{},
		})
	}

	if len(batch) > 0 {
		imported, err := s.transactionRepo.CreateBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		result.Imported = imported
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("Transactions imported from CSV")

	if result.Imported > 0 {
		s.publishEvent(workspaceID, websocket.TransactionsImported(result))
	}
	return result, nil
}
