package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/usecase/budget"
	"github.com/ledgerworks/budget-ledger/internal/domain/usecase/ledger"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/middleware"
)

// CategoryHandler handles budget category requests
type CategoryHandler struct {
	ledgerService *ledger.Service
	logger        coreport.Logger
}

// NewCategoryHandler creates a new category handler instance
func NewCategoryHandler(ledgerService *ledger.Service, logger coreport.Logger) *CategoryHandler {
	return &CategoryHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// noticeString renders a budget notice for API responses, empty when none
func noticeString(report budget.Report) string {
	if report.Notice == budget.NoticeNone {
		return ""
	}
	return report.Notice.String()
}

// Create handles the POST /create/budget-category endpoint
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing name or budget")
		return
	}

	budgetCents, err := entity.ParseAmount(req.Budget)
	if err != nil {
		respondError(c, err)
		return
	}
	if budgetCents <= 0 {
		respondError(c, errs.ErrInvalidAmount)
		return
	}

	category, err := h.ledgerService.CreateCategory(c.Request.Context(), middleware.UserID(c), req.Name, &budgetCents)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryResponse{
		ID:     category.ID,
		Name:   category.Name,
		Budget: entity.FormatBudget(category.TotalBudget),
		Spent:  category.FormattedSpent(),
	})
}

// UpdateBudget handles the POST /update/budget-category endpoint
func (h *CategoryHandler) UpdateBudget(c *gin.Context) {
	var req dto.UpdateCategoryBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing category or new budget")
		return
	}

	budgetCents, err := entity.ParseAmount(req.Budget)
	if err != nil {
		respondError(c, err)
		return
	}
	if budgetCents <= 0 {
		respondError(c, errs.ErrInvalidAmount)
		return
	}

	spent, err := h.ledgerService.UpdateCategoryBudget(c.Request.Context(), middleware.UserID(c), req.Category, budgetCents)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateCategoryBudgetResponse{
		Spent:  entity.FormatCents(spent),
		Notice: noticeString(budget.Evaluate(budgetCents, spent)),
	})
}

// Delete handles the POST /delete/categories endpoint
func (h *CategoryHandler) Delete(c *gin.Context) {
	var req dto.DeleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "unspecified delete request")
		return
	}

	err := h.ledgerService.DeleteCategory(c.Request.Context(), middleware.UserID(c), req.Category, req.NewCategory)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{ID: middleware.UserID(c)})
}
