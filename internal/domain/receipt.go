package domain

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptImage describes a stored receipt and its resized variants
type ReceiptImage struct {
	ID          string `json:"id"`
	ThumbURL    string `json:"thumbUrl"`
	DisplayURL  string `json:"displayUrl"`
	OriginalURL string `json:"originalUrl"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type ReceiptLineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReceiptScan holds the fields extracted from a receipt photo
type ReceiptScan struct {
	Merchant string            `json:"merchant"`
	Date     *time.Time        `json:"date,omitempty"`
	Total    decimal.Decimal   `json:"total"`
	Currency string            `json:"currency,omitempty"`
	Category string            `json:"category"`
	Items    []ReceiptLineItem `json:"items"`
	RawText  string            `json:"rawText"`
}

// ReceiptStore persists receipt image objects under workspace-scoped keys
type ReceiptStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, path string) error
	GeneratePresignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
