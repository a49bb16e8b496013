package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/middleware"
	"github.com/receiptwise/receiptwise-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// CategoryRuleHandler manages keyword to category rules
type CategoryRuleHandler struct {
	ruleService *service.CategoryRuleService
}

func NewCategoryRuleHandler(ruleService *service.CategoryRuleService) *CategoryRuleHandler {
	return &CategoryRuleHandler{ruleService: ruleService}
}

type CategoryRuleRequest struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}

// CreateRule godoc
// @Summary Create a category rule
// @Description Transactions whose name contains the keyword are assigned the category
// @Tags category-rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRuleRequest true "Rule"
// @Success 201 {object} domain.CategoryRule
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /category-rules [post]
func (h *CategoryRuleHandler) CreateRule(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CategoryRuleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	rule, err := h.ruleService.CreateRule(c.Request().Context(), workspaceID, service.CategoryRuleInput{
		Keyword:  req.Keyword,
		Category: req.Category,
	})
	if err != nil {
		return handleServiceError(c, err, workspaceID, "create category rule")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("rule_id", rule.ID).Str("keyword", rule.Keyword).Msg("Category rule created")
	return c.JSON(http.StatusCreated, rule)
}

// GetRules godoc
// @Summary List category rules
// @Tags category-rules
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.CategoryRule
// @Router /category-rules [get]
func (h *CategoryRuleHandler) GetRules(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	rules, err := h.ruleService.ListRules(c.Request().Context(), workspaceID)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get category rules")
	}
	if rules == nil {
		rules = []*domain.CategoryRule{}
	}
	return c.JSON(http.StatusOK, rules)
}

// UpdateRule godoc
// @Summary Update a category rule
// @Tags category-rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Param request body CategoryRuleRequest true "Rule"
// @Success 200 {object} domain.CategoryRule
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /category-rules/{id} [put]
func (h *CategoryRuleHandler) UpdateRule(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	var req CategoryRuleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	rule, err := h.ruleService.UpdateRule(c.Request().Context(), workspaceID, id, service.CategoryRuleInput{
		Keyword:  req.Keyword,
		Category: req.Category,
	})
	if err != nil {
		return handleServiceError(c, err, workspaceID, "update category rule")
	}
	return c.JSON(http.StatusOK, rule)
}

// DeleteRule godoc
// @Summary Delete a category rule
// @Tags category-rules
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /category-rules/{id} [delete]
func (h *CategoryRuleHandler) DeleteRule(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	if err := h.ruleService.DeleteRule(c.Request().Context(), workspaceID, id); err != nil {
		return handleServiceError(c, err, workspaceID, "delete category rule")
	}
	return c.NoContent(http.StatusNoContent)
}
