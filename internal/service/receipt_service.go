package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	_ "golang.org/x/image/webp"
)

const (
	MaxReceiptSize       = 5 * 1024 * 1024 // 5MB
	MinReceiptWidth      = 50
	MinReceiptHeight     = 50
	ThumbnailWidth       = 200
	DisplayWidth         = 800
	JPEGQuality          = 85
	PresignedURLExpiry   = time.Hour
	receiptScanMaxTokens = 1024
)

// receiptFormats maps decoder names to MIME types
var receiptFormats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

var receiptVariants = []struct {
	name     string
	maxWidth int
}{
	{"thumb", ThumbnailWidth},
	{"display", DisplayWidth},
	{"original", 0}, // 0 keeps the original size
}

// ReceiptService validates receipt photos, stores resized variants and extracts
// their contents with the language model
type ReceiptService struct {
	store domain.ReceiptStore
	model domain.LanguageModel
	rules *CategoryRuleService
}

// NewReceiptService creates a ReceiptService. store and model may be nil when the
// corresponding integration is not configured.
func NewReceiptService(store domain.ReceiptStore, model domain.LanguageModel, rules *CategoryRuleService) *ReceiptService {
	return &ReceiptService{store: store, model: model, rules: rules}
}

func (s *ReceiptService) StorageEnabled() bool {
	return s != nil && s.store != nil
}

func (s *ReceiptService) ScanEnabled() bool {
	return s != nil && s.model != nil
}

type decodedReceipt struct {
	img      image.Image
	mimeType string
}

func (s *ReceiptService) validateAndDecode(data []byte) (*decodedReceipt, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidImage
	}
	if len(data) > MaxReceiptSize {
		return nil, domain.ErrImageTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, domain.ErrUnsupportedFormat
		}
		return nil, domain.ErrInvalidImage
	}

	mimeType, ok := receiptFormats[format]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinReceiptWidth || bounds.Dy() < MinReceiptHeight {
		return nil, domain.ErrImageTooSmall
	}

	return &decodedReceipt{img: img, mimeType: mimeType}, nil
}

// Upload stores thumb, display and original JPEG variants of a receipt photo
// and returns presigned URLs for each
func (s *ReceiptService) Upload(ctx context.Context, workspaceID int32, data []byte) (*domain.ReceiptImage, error) {
	if !s.StorageEnabled() {
		return nil, domain.ErrStorageUnavailable
	}

	decoded, err := s.validateAndDecode(data)
	if err != nil {
		return nil, err
	}

	receiptID := uuid.New().String()
	paths := make(map[string]string, len(receiptVariants))

	for _, variant := range receiptVariants {
		processed := decoded.img
		if variant.maxWidth > 0 && processed.Bounds().Dx() > variant.maxWidth {
			processed = imaging.Resize(processed, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			s.cleanup(ctx, paths)
			return nil, fmt.Errorf("failed to encode %s variant: %w", variant.name, err)
		}

		objectPath := fmt.Sprintf("%d/%s_%s.jpg", workspaceID, receiptID, variant.name)
		stored, err := s.store.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
		if err != nil {
			s.cleanup(ctx, paths)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		paths[variant.name] = stored
	}

	urls := make(map[string]string, len(paths))
	for name, p := range paths {
		url, err := s.store.GeneratePresignedURL(ctx, p, PresignedURLExpiry)
		if err != nil {
			return nil, err
		}
		urls[name] = url
	}

	bounds := decoded.img.Bounds()
	log.Info().Int32("workspace_id", workspaceID).Str("receipt_id", receiptID).Int("size", len(data)).Msg("Receipt uploaded")

	return &domain.ReceiptImage{
		ID:          receiptID,
		ThumbURL:    urls["thumb"],
		DisplayURL:  urls["display"],
		OriginalURL: urls["original"],
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		SizeBytes:   int64(len(data)),
	}, nil
}

// cleanup removes variants already stored by a failed upload
func (s *ReceiptService) cleanup(ctx context.Context, paths map[string]string) {
	for _, p := range paths {
		if err := s.store.Delete(ctx, p); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("Failed to clean up receipt variant")
		}
	}
}

const receiptScanPrompt = `You read photos of shopping receipts.
Return ONLY a JSON object with these fields:
{"merchant": string, "date": "YYYY-MM-DD" or null, "total": number, "currency": string or null,
 "category": string, "items": [{"description": string, "amount": number}], "rawText": string}
"category" is a short spending category such as Food, Groceries, Transport, Shopping, Utilities,
Entertainment or Health. "rawText" is the visible text of the receipt.
Do NOT wrap the response in code fences.`

type scannedReceipt struct {
	Merchant string           `json:"merchant"`
	Date     *string          `json:"date"`
	Total    *decimal.Decimal `json:"total"`
	Currency *string          `json:"currency"`
	Category string           `json:"category"`
	Items    []struct {
		Description string           `json:"description"`
		Amount      *decimal.Decimal `json:"amount"`
	} `json:"items"`
	RawText string `json:"rawText"`
}

// Scan extracts merchant, date, total, category and line items from a receipt photo.
// A category rule matching the merchant overrides the model's suggestion.
func (s *ReceiptService) Scan(ctx context.Context, workspaceID int32, data []byte) (*domain.ReceiptScan, error) {
	if !s.ScanEnabled() {
		return nil, domain.ErrAdvisorUnavailable
	}

	decoded, err := s.validateAndDecode(data)
	if err != nil {
		return nil, err
	}

	raw, err := s.model.Generate(ctx, domain.GenerateRequest{
		System:      receiptScanPrompt,
		Messages:    []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "Extract the receipt details."}},
		Attachments: []domain.Attachment{{MIMEType: decoded.mimeType, Data: data}},
		Temperature: 0.1,
		MaxTokens:   receiptScanMaxTokens,
		JSON:        true,
	})
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Receipt scan failed")
		return nil, err
	}

	scan, err := parseReceiptScan(raw)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Receipt scan returned invalid JSON")
		return nil, err
	}

	if s.rules != nil && scan.Merchant != "" {
		category, err := s.rules.Categorize(ctx, workspaceID, scan.Merchant)
		if err != nil {
			return nil, err
		}
		if category != "" {
			scan.Category = category
		}
	}
	if scan.Category == "" {
		scan.Category = domain.DefaultExpenseCategory
	}

	return scan, nil
}

func parseReceiptScan(raw string) (*domain.ReceiptScan, error) {
	var parsed scannedReceipt
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal receipt scan: %w", err)
	}

	scan := &domain.ReceiptScan{
		Merchant: strings.TrimSpace(parsed.Merchant),
		Total:    decimal.Zero,
		Category: strings.TrimSpace(parsed.Category),
		Items:    make([]domain.ReceiptLineItem, 0, len(parsed.Items)),
		RawText:  parsed.RawText,
	}
	if parsed.Total != nil {
		scan.Total = parsed.Total.Abs()
	}
	if parsed.Currency != nil {
		scan.Currency = strings.ToUpper(strings.TrimSpace(*parsed.Currency))
	}
	if parsed.Date != nil {
		if d, ok := util.ParseDate(*parsed.Date); ok {
			scan.Date = &d
		}
	}
	for _, item := range parsed.Items {
		description := strings.TrimSpace(item.Description)
		if description == "" || item.Amount == nil {
			continue
		}
		scan.Items = append(scan.Items, domain.ReceiptLineItem{Description: description, Amount: *item.Amount})
	}
	return scan, nil
}
