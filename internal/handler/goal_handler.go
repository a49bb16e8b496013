package handler

import (
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

// GoalHandler handles savings goal requests
type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type GoalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  string  `json:"targetAmount"`
	CurrentAmount string  `json:"currentAmount,omitempty"`
	TargetDate    *string `json:"targetDate,omitempty"`
	Description   *string `json:"description,omitempty"`
}

type GoalProgressRequest struct {
	Amount string `json:"amount"`
}

type GoalResponse struct {
	ID            int32   `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  string  `json:"targetAmount"`
	CurrentAmount string  `json:"currentAmount"`
	TargetDate    *string `json:"targetDate,omitempty"`
	Description   *string `json:"description,omitempty"`
	IsCompleted   bool    `json:"isCompleted"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type GoalStatsResponse struct {
	TotalGoals         int    `json:"totalGoals"`
	CompletedGoals     int    `json:"completedGoals"`
	ActiveGoals        int    `json:"activeGoals"`
	TotalTargetAmount  string `json:"totalTargetAmount"`
	TotalCurrentAmount string `json:"totalCurrentAmount"`
	AverageProgress    string `json:"averageProgress"`
}

func (h *GoalHandler) parseRequest(c echo.Context) (service.GoalInput, error) {
	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return service.GoalInput{}, invalidRequest("Invalid request body")
	}

	target, err := decimal.NewFromString(strings.TrimSpace(req.TargetAmount))
	if err != nil {
		return service.GoalInput{}, invalidRequest("Invalid targetAmount",
			ValidationError{Field: "targetAmount", Message: "Must be a valid decimal number"})
	}

	current := decimal.Zero
	if s := strings.TrimSpace(req.CurrentAmount); s != "" {
		current, err = decimal.NewFromString(s)
		if err != nil {
			return service.GoalInput{}, invalidRequest("Invalid currentAmount",
				ValidationError{Field: "currentAmount", Message: "Must be a valid decimal number"})
		}
	}

	input := service.GoalInput{
		Name:          req.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Description:   req.Description,
	}
	if req.TargetDate != nil && *req.TargetDate != "" {
		parsed, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			return service.GoalInput{}, invalidRequest("Invalid targetDate",
				ValidationError{Field: "targetDate", Message: "Must be in YYYY-MM-DD format"})
		}
		input.TargetDate = &parsed
	}
	return input, nil
}

// CreateGoal godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GoalRequest true "Goal"
// @Success 201 {object} GoalResponse
// @Failure 400 {object} ProblemDetails
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	input, err := h.parseRequest(c)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "create goal")
	}

	goal, err := h.goalService.CreateGoal(c.Request().Context(), workspaceID, input)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "create goal")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("goal_id", goal.ID).Msg("Goal created")
	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GetGoals godoc
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} GoalResponse
// @Router /goals [get]
func (h *GoalHandler) GetGoals(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	goals, err := h.goalService.GetGoals(c.Request().Context(), workspaceID)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get goals")
	}

	response := make([]GoalResponse, len(goals))
	for i, g := range goals {
		response[i] = toGoalResponse(g)
	}
	return c.JSON(http.StatusOK, response)
}

// GetGoal godoc
// @Summary Get a savings goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} GoalResponse
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	goal, err := h.goalService.GetGoal(c.Request().Context(), workspaceID, id)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get goal")
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// UpdateGoal godoc
// @Summary Update a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body GoalRequest true "Goal"
// @Success 200 {object} GoalResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	input, err := h.parseRequest(c)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "update goal")
	}

	goal, err := h.goalService.UpdateGoal(c.Request().Context(), workspaceID, id, input)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "update goal")
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// AddProgress godoc
// @Summary Add to a goal's saved amount
// @Description The amount may be negative to record a withdrawal; the saved amount never drops below zero
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body GoalProgressRequest true "Amount"
// @Success 200 {object} GoalResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id}/progress [patch]
func (h *GoalHandler) AddProgress(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req GoalProgressRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	goal, err := h.goalService.AddProgress(c.Request().Context(), workspaceID, id, amount)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "update goal progress")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("goal_id", goal.ID).Str("amount", amount.String()).Msg("Goal progress recorded")
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal godoc
// @Summary Delete a savings goal
// @Tags goals
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.DeleteGoal(c.Request().Context(), workspaceID, id); err != nil {
		return handleServiceError(c, err, workspaceID, "delete goal")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStats godoc
// @Summary Savings goal statistics
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GoalStatsResponse
// @Router /goals/stats [get]
func (h *GoalHandler) GetStats(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	stats, err := h.goalService.GetStats(c.Request().Context(), workspaceID)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get goal stats")
	}

	return c.JSON(http.StatusOK, GoalStatsResponse{
		TotalGoals:         stats.TotalGoals,
		CompletedGoals:     stats.CompletedGoals,
		ActiveGoals:        stats.ActiveGoals,
		TotalTargetAmount:  stats.TotalTargetAmount.StringFixed(2),
		TotalCurrentAmount: stats.TotalCurrentAmount.StringFixed(2),
		AverageProgress:    stats.AverageProgress.StringFixed(2),
	})
}

func toGoalResponse(g *domain.Goal) GoalResponse {
	resp := GoalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Description:   g.Description,
		IsCompleted:   g.IsCompleted,
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     g.UpdatedAt.Format(time.RFC3339),
	}
	if g.TargetDate != nil {
		d := g.TargetDate.Format(dateLayout)
		resp.TargetDate = &d
	}
	return resp
}
