package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/middleware"
	"github.com/receiptwise/receiptwise-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ReceiptHandler handles receipt photo uploads and scans
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

type ReceiptScanResponse struct {
	Merchant string                    `json:"merchant"`
	Date     *string                   `json:"date,omitempty"`
	Total    string                    `json:"total"`
	Currency string                    `json:"currency,omitempty"`
	Category string                    `json:"category"`
	Items    []ReceiptLineItemResponse `json:"items"`
	RawText  string                    `json:"rawText"`
}

type ReceiptLineItemResponse struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// readImage reads the "image" multipart field, capped one byte above the size limit
// so oversized files are still rejected by the service
func readImage(c echo.Context) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, invalidRequest("No file provided",
			ValidationError{Field: "image", Message: "Image is required"})
	}
	if file.Size > service.MaxReceiptSize {
		return nil, invalidRequest("Validation failed",
			ValidationError{Field: "image", Message: "File too large. Maximum size is 5MB"})
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxReceiptSize+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	return data, nil
}

// UploadReceipt godoc
// @Summary Upload a receipt photo
// @Description Stores thumbnail, display and original JPEG variants and returns presigned URLs
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "JPEG, PNG or WebP image, at most 5MB"
// @Success 201 {object} domain.ReceiptImage
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /receipts/upload [post]
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	if !h.receiptService.StorageEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	data, err := readImage(c)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "upload receipt")
	}

	receipt, err := h.receiptService.Upload(c.Request().Context(), workspaceID, data)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "upload receipt")
	}

	return c.JSON(http.StatusCreated, receipt)
}

// ScanReceipt godoc
// @Summary Extract details from a receipt photo
// @Description Reads merchant, date, total, category and line items with the language model
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "JPEG, PNG or WebP image, at most 5MB"
// @Success 200 {object} ReceiptScanResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /receipts/scan [post]
func (h *ReceiptHandler) ScanReceipt(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	if !h.receiptService.ScanEnabled() {
		return NewServiceUnavailableError(c, domain.ErrAdvisorUnavailable.Error())
	}

	data, err := readImage(c)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "scan receipt")
	}

	scan, err := h.receiptService.Scan(c.Request().Context(), workspaceID, data)
	if err != nil {
		if isImageError(err) {
			return handleServiceError(c, err, workspaceID, "scan receipt")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Receipt scan failed")
		return NewUpstreamError(c, "Could not read the receipt")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("merchant", scan.Merchant).Str("category", scan.Category).Msg("Receipt scanned")
	return c.JSON(http.StatusOK, toReceiptScanResponse(scan))
}

func isImageError(err error) bool {
	return errors.Is(err, domain.ErrInvalidImage) ||
		errors.Is(err, domain.ErrImageTooLarge) ||
		errors.Is(err, domain.ErrImageTooSmall) ||
		errors.Is(err, domain.ErrUnsupportedFormat)
}

func toReceiptScanResponse(scan *domain.ReceiptScan) ReceiptScanResponse {
	resp := ReceiptScanResponse{
		Merchant: scan.Merchant,
		Total:    scan.Total.StringFixed(2),
		Currency: scan.Currency,
		Category: scan.Category,
		Items:    make([]ReceiptLineItemResponse, len(scan.Items)),
		RawText:  scan.RawText,
	}
	if scan.Date != nil {
		d := scan.Date.Format(dateLayout)
		resp.Date = &d
	}
	for i, item := range scan.Items {
		resp.Items[i] = ReceiptLineItemResponse{
			Description: item.Description,
			Amount:      item.Amount.StringFixed(2),
		}
	}
	return resp
}
