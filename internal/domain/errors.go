package domain

import "errors"

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternalError     = errors.New("internal error")
	ErrUserNotFound      = errors.New("user not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrNameRequired      = errors.New("name is required")
	ErrNameTooLong       = errors.New("name exceeds maximum length")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrCategoryRequired  = errors.New("category is required")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidYear       = errors.New("year must be between 1900 and 2100")

	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrGoalProgressNegative = errors.New("goal progress cannot go below zero")
	ErrCategoryRuleNotFound = errors.New("category rule not found")
	ErrCategoryRuleExists   = errors.New("a rule for this keyword already exists")
	ErrKeywordRequired      = errors.New("keyword is required")

	ErrInvalidImage       = errors.New("invalid image")
	ErrImageTooLarge      = errors.New("image exceeds maximum size")
	ErrImageTooSmall      = errors.New("image dimensions too small")
	ErrUnsupportedFormat  = errors.New("unsupported image format")
	ErrStorageUnavailable = errors.New("receipt storage is not configured")

	ErrAdvisorUnavailable = errors.New("AI advisor is not configured")
	ErrEmptyPrompt        = errors.New("message is required")
	ErrInvalidCSV         = errors.New("invalid CSV file")
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxCategoryLength    = 100
	MaxKeywordLength     = 100
	MaxNotesLength       = 1000
	MaxTagLength         = 50
	MaxTagsPerItem       = 20
	MaxDescriptionLength = 1000
)
