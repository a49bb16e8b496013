package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/middleware"
	"github.com/receiptwise/receiptwise-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxImportSize bounds CSV uploads
const MaxImportSize = 10 * 1024 * 1024

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest is the body of create and update requests
type TransactionRequest struct {
	Name       string   `json:"name"`
	Amount     string   `json:"amount"`
	Category   string   `json:"category"`
	IsIncome   bool     `json:"isIncome"`
	OccurredOn *string  `json:"occurredOn,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          int32    `json:"id"`
	WorkspaceID int32    `json:"workspaceId"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Amount      string   `json:"amount"`
	IsIncome    bool     `json:"isIncome"`
	OccurredOn  string   `json:"occurredOn"`
	Tags        []string `json:"tags"`
	Notes       *string  `json:"notes,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// PaginatedTransactionsResponse represents paginated transactions in API responses
type PaginatedTransactionsResponse struct {
	Data       []TransactionResponse `json:"data"`
	Page       int32                 `json:"page"`
	PageSize   int32                 `json:"pageSize"`
	TotalItems int64                 `json:"totalItems"`
	TotalPages int32                 `json:"totalPages"`
}

// SummaryResponse holds lifetime totals for the workspace and its newest transactions
type SummaryResponse struct {
	TotalIncome        string                `json:"totalIncome"`
	TotalExpenses      string                `json:"totalExpenses"`
	Balance            string                `json:"balance"`
	Count              int64                 `json:"count"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

type BulkDeleteRequest struct {
	IDs []int32 `json:"ids"`
}

type DeleteCategoryRequest struct {
	Category string `json:"category"`
}

// CountResponse reports how many rows an operation touched
type CountResponse struct {
	Count int64 `json:"count"`
}

func (h *TransactionHandler) parseRequest(c echo.Context) (service.TransactionInput, error) {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return service.TransactionInput{}, invalidRequest("Invalid request body")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return service.TransactionInput{}, invalidRequest("Invalid amount",
			ValidationError{Field: "amount", Message: "Must be a valid decimal number"})
	}

	input := service.TransactionInput{
		Name:     req.Name,
		Amount:   amount,
		Category: req.Category,
		IsIncome: req.IsIncome,
		Tags:     req.Tags,
		Notes:    req.Notes,
	}

	if req.OccurredOn != nil && *req.OccurredOn != "" {
		parsed, err := parseDateParam(*req.OccurredOn)
		if err != nil {
			return service.TransactionInput{}, invalidRequest("Invalid date",
				ValidationError{Field: "occurredOn", Message: "Must be in YYYY-MM-DD or RFC 3339 format"})
		}
		input.OccurredOn = &parsed
	}

	return input, nil
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Create a new income or expense transaction. An empty category is filled from the category rules.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "Transaction"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	input, err := h.parseRequest(c)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "create transaction")
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), workspaceID, input)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "create transaction")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("transaction_id", transaction.ID).Str("category", transaction.Category).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions godoc
// @Summary List transactions
// @Description Get paginated transactions, newest first, with optional filters
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param category query string false "Exact category"
// @Param type query string false "income or expense"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param search query string false "Case-insensitive name search"
// @Param tag query string false "Tag"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {object} PaginatedTransactionsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	filters := &domain.TransactionFilters{
		Page:     1,
		PageSize: domain.DefaultPageSize,
	}

	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		filters.Category = &category
	}
	if search := strings.TrimSpace(c.QueryParam("search")); search != "" {
		filters.Search = &search
	}
	if tag := strings.ToLower(strings.TrimSpace(c.QueryParam("tag"))); tag != "" {
		filters.Tag = &tag
	}

	switch c.QueryParam("type") {
	case "":
	case "income":
		isIncome := true
		filters.IsIncome = &isIncome
	case "expense":
		isIncome := false
		filters.IsIncome = &isIncome
	default:
		return NewValidationError(c, "Invalid type (must be 'income' or 'expense')", nil)
	}

	if s := c.QueryParam("startDate"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			return NewValidationError(c, "Invalid startDate format (use YYYY-MM-DD)", nil)
		}
		filters.StartDate = &parsed
	}
	if s := c.QueryParam("endDate"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			return NewValidationError(c, "Invalid endDate format (use YYYY-MM-DD)", nil)
		}
		// inclusive of the whole end day
		end := parsed.Add(24*time.Hour - time.Nanosecond)
		filters.EndDate = &end
	}

	var page int32
	if ok, err := parseIntParam(c.QueryParam("page"), &page); err != nil || (ok && page < 1) {
		return NewValidationError(c, "Invalid page (must be positive integer)", nil)
	} else if ok {
		filters.Page = page
	}

	var pageSize int32
	if ok, err := parseIntParam(c.QueryParam("pageSize"), &pageSize); err != nil || (ok && pageSize < 1) {
		return NewValidationError(c, "Invalid pageSize (must be positive integer)", nil)
	} else if ok {
		if pageSize > domain.MaxPageSize {
			pageSize = domain.MaxPageSize
		}
		filters.PageSize = pageSize
	}

	result, err := h.transactionService.GetTransactions(c.Request().Context(), workspaceID, filters)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get transactions")
	}

	response := PaginatedTransactionsResponse{
		Data:       make([]TransactionResponse, len(result.Data)),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}
	for i, transaction := range result.Data {
		response.Data[i] = toTransactionResponse(transaction)
	}

	return c.JSON(http.StatusOK, response)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransactionByID(c.Request().Context(), workspaceID, id)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body TransactionRequest true "Transaction"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	input, err := h.parseRequest(c)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "update transaction")
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request().Context(), workspaceID, id, input)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "update transaction")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("transaction_id", transaction.ID).Msg("Transaction updated")
	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), workspaceID, id); err != nil {
		return handleServiceError(c, err, workspaceID, "delete transaction")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// BulkDeleteTransactions godoc
// @Summary Delete several transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkDeleteRequest true "IDs to delete"
// @Success 200 {object} CountResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions/bulk [delete]
func (h *TransactionHandler) BulkDeleteTransactions(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.IDs) == 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "ids", Message: "At least one ID is required"},
		})
	}

	deleted, err := h.transactionService.DeleteTransactions(c.Request().Context(), workspaceID, req.IDs)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "delete transactions")
	}

	log.Info().Int32("workspace_id", workspaceID).Int64("deleted", deleted).Msg("Transactions bulk deleted")
	return c.JSON(http.StatusOK, CountResponse{Count: deleted})
}

// GetSummary godoc
// @Summary Income and expense totals
// @Description Lifetime totals plus the five newest transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SummaryResponse
// @Router /transactions/summary [get]
func (h *TransactionHandler) GetSummary(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	summary, err := h.transactionService.GetSummary(c.Request().Context(), workspaceID)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get summary")
	}

	recent := make([]TransactionResponse, len(summary.RecentTransactions))
	for i, t := range summary.RecentTransactions {
		recent[i] = toTransactionResponse(t)
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		TotalIncome:        summary.TotalIncome.StringFixed(2),
		TotalExpenses:      summary.TotalExpenses.StringFixed(2),
		Balance:            summary.Balance.StringFixed(2),
		Count:              summary.Count,
		RecentTransactions: recent,
	})
}

// GetCategories godoc
// @Summary Distinct categories in use
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /transactions/categories [get]
func (h *TransactionHandler) GetCategories(c echo.Context) error {
	return h.categories(c, nil)
}

// GetExpenseCategories godoc
// @Summary Distinct expense categories
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /transactions/categories/expense [get]
func (h *TransactionHandler) GetExpenseCategories(c echo.Context) error {
	isIncome := false
	return h.categories(c, &isIncome)
}

// GetIncomeCategories godoc
// @Summary Distinct income categories
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /transactions/categories/income [get]
func (h *TransactionHandler) GetIncomeCategories(c echo.Context) error {
	isIncome := true
	return h.categories(c, &isIncome)
}

func (h *TransactionHandler) categories(c echo.Context, isIncome *bool) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	categories, err := h.transactionService.GetCategories(c.Request().Context(), workspaceID, isIncome)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get categories")
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categories)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Moves every transaction in the category to Uncategorized
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteCategoryRequest true "Category"
// @Success 200 {object} CountResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions/category [delete]
func (h *TransactionHandler) DeleteCategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req DeleteCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	moved, err := h.transactionService.DeleteCategory(c.Request().Context(), workspaceID, req.Category)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "delete category")
	}

	return c.JSON(http.StatusOK, CountResponse{Count: moved})
}

// GetTags godoc
// @Summary Distinct tags in use
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /transactions/tags [get]
func (h *TransactionHandler) GetTags(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	tags, err := h.transactionService.GetTags(c.Request().Context(), workspaceID)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get tags")
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(http.StatusOK, tags)
}

// ExportTransactions godoc
// @Summary Export transactions as CSV
// @Tags transactions
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Router /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var buf bytes.Buffer
	rows, err := h.transactionService.ExportCSV(c.Request().Context(), workspaceID, &buf)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "export transactions")
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().UTC().Format(dateLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	log.Info().Int32("workspace_id", workspaceID).Int("rows", rows).Msg("Transactions exported")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportTransactions godoc
// @Summary Import transactions from CSV
// @Description Multipart upload with a "file" CSV and an optional "mapping" JSON naming the header of each column
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param mapping formData string false "Column mapping JSON"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} ProblemDetails
// @Router /transactions/import [post]
func (h *TransactionHandler) ImportTransactions(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}
	if file.Size > MaxImportSize {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: "File too large. Maximum size is 10MB"},
		})
	}

	mapping := service.ImportMapping{
		Name:     "name",
		Amount:   "amount",
		Category: "category",
		Date:     "date",
		Type:     "type",
	}
	if raw := c.FormValue("mapping"); raw != "" {
		mapping = service.ImportMapping{}
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "mapping", Message: "Must be a JSON object"},
			})
		}
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	result, err := h.transactionService.ImportCSV(c.Request().Context(), workspaceID, src, mapping)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "import transactions")
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("Transactions imported")

	return c.JSON(http.StatusOK, result)
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TransactionResponse{
		ID:          t.ID,
		WorkspaceID: t.WorkspaceID,
		Name:        t.Name,
		Category:    t.Category,
		Amount:      t.Amount.StringFixed(2),
		IsIncome:    t.IsIncome,
		OccurredOn:  t.OccurredOn.Format(time.RFC3339),
		Tags:        tags,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}
