package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://receiptwise.app/errors/validation"
	ErrorTypeNotFound     = "https://receiptwise.app/errors/not-found"
	ErrorTypeUnauthorized = "https://receiptwise.app/errors/unauthorized"
	ErrorTypeConflict     = "https://receiptwise.app/errors/conflict"
	ErrorTypeUnavailable  = "https://receiptwise.app/errors/service-unavailable"
	ErrorTypeUpstream     = "https://receiptwise.app/errors/upstream"
	ErrorTypeInternal     = "https://receiptwise.app/errors/internal"
)

func problem(c echo.Context, status int, errorType, title, detail string) error {
	return c.JSON(status, ProblemDetails{
		Type:     errorType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail)
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return problem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", detail)
}

// NewServiceUnavailableError is returned when an optional integration is not configured
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return problem(c, http.StatusServiceUnavailable, ErrorTypeUnavailable, "Service Unavailable", detail)
}

// NewUpstreamError is returned when the language model or storage backend fails
func NewUpstreamError(c echo.Context, detail string) error {
	return problem(c, http.StatusBadGateway, ErrorTypeUpstream, "Bad Gateway", detail)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail)
}

// requestError is a malformed request caught before the service is called.
// handleServiceError renders it as a 400.
type requestError struct {
	detail string
	fields []ValidationError
}

func (e *requestError) Error() string { return e.detail }

func invalidRequest(detail string, fields ...ValidationError) error {
	return &requestError{detail: detail, fields: fields}
}

// fieldErrors maps validation sentinels to the request field they concern
var fieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrNameRequired, "name", "Name is required"},
	{domain.ErrNameTooLong, "name", "Name must be 255 characters or less"},
	{domain.ErrInvalidAmount, "amount", "Amount is out of range"},
	{domain.ErrInvalidDate, "date", "Date range is invalid"},
	{domain.ErrCategoryRequired, "category", "Category is required"},
	{domain.ErrInvalidMonth, "month", "Month must be between 1 and 12"},
	{domain.ErrInvalidYear, "year", "Year must be between 1900 and 2100"},
	{domain.ErrGoalProgressNegative, "amount", "Progress cannot go below zero"},
	{domain.ErrKeywordRequired, "keyword", "Keyword is required"},
	{domain.ErrInvalidImage, "image", "Invalid image data"},
	{domain.ErrImageTooLarge, "image", "File too large. Maximum size is 5MB"},
	{domain.ErrImageTooSmall, "image", "Image too small. Minimum 50x50 pixels"},
	{domain.ErrUnsupportedFormat, "image", "Invalid format. Supported: JPEG, PNG, WebP"},
	{domain.ErrEmptyPrompt, "userMessage", "Message is required"},
	{domain.ErrInvalidCSV, "file", "Invalid CSV file"},
	{domain.ErrInvalidInput, "", "Invalid input"},
}

var notFoundErrors = []error{
	domain.ErrNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrBudgetNotFound,
	domain.ErrGoalNotFound,
	domain.ErrCategoryRuleNotFound,
	domain.ErrUserNotFound,
	domain.ErrWorkspaceNotFound,
}

// handleServiceError converts a service error to a problem response. action names
// the operation for the log line and the 500 detail.
func handleServiceError(c echo.Context, err error, workspaceID int32, action string) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return NewValidationError(c, reqErr.detail, reqErr.fields)
	}

	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			var details []ValidationError
			if fe.field != "" {
				details = []ValidationError{{Field: fe.field, Message: fe.message}}
			}
			return NewValidationError(c, err.Error(), details)
		}
	}

	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			return NewNotFoundError(c, err.Error())
		}
	}

	switch {
	case errors.Is(err, domain.ErrCategoryRuleExists), errors.Is(err, domain.ErrAlreadyExists):
		return NewConflictError(c, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable), errors.Is(err, domain.ErrAdvisorUnavailable):
		return NewServiceUnavailableError(c, err.Error())
	}

	log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}

func parseIDParam(c echo.Context) (int32, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func parseIntParam(s string, out *int32) (bool, error) {
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return false, errors.New("invalid integer")
	}
	*out = int32(v)
	return true, nil
}

const dateLayout = "2006-01-02"

// parseDateParam accepts YYYY-MM-DD or RFC 3339
func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
