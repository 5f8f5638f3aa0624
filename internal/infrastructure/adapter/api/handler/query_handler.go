package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/usecase/ledger"
	"github.com/ledgerworks/budget-ledger/internal/domain/usecase/overview"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/middleware"
)

// QueryHandler handles read-only table listings and the monthly overview
type QueryHandler struct {
	ledgerService   *ledger.Service
	overviewService *overview.Service
	logger          coreport.Logger
}

// NewQueryHandler creates a new query handler instance
func NewQueryHandler(ledgerService *ledger.Service, overviewService *overview.Service, logger coreport.Logger) *QueryHandler {
	return &QueryHandler{
		ledgerService:   ledgerService,
		overviewService: overviewService,
		logger:          logger,
	}
}

// Query handles the GET /query/:table endpoint
func (h *QueryHandler) Query(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	switch c.Param("table") {
	case "categories":
		categories, err := h.ledgerService.ListCategories(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		rows := make([]dto.CategoryResponse, 0, len(categories))
		for _, category := range categories {
			rows = append(rows, dto.CategoryResponse{
				ID:     category.ID,
				Name:   category.Name,
				Budget: entity.FormatBudget(category.TotalBudget),
				Spent:  category.FormattedSpent(),
			})
		}
		c.JSON(http.StatusOK, dto.QueryResponse{Rows: rows})

	case "transactions":
		transactions, err := h.ledgerService.ListTransactions(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		categories, err := h.ledgerService.ListCategories(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		names := make(map[uint64]string, len(categories))
		for _, category := range categories {
			names[category.ID] = category.Name
		}
		rows := make([]dto.TransactionResponse, 0, len(transactions))
		for _, transaction := range transactions {
			rows = append(rows, dto.TransactionResponse{
				ID:       transaction.ID,
				Name:     transaction.Name,
				Cost:     transaction.FormattedCost(),
				Category: names[transaction.CategoryID],
				Date:     transaction.Date.Format(entity.DateLayout),
			})
		}
		c.JSON(http.StatusOK, dto.QueryResponse{Rows: rows})

	case "recurringpayments":
		payments, err := h.ledgerService.ListPayments(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		rows := make([]dto.PaymentResponse, 0, len(payments))
		for _, payment := range payments {
			rows = append(rows, dto.PaymentResponse{
				ID:       payment.ID,
				Name:     payment.Name,
				Cost:     payment.FormattedCost(),
				Category: payment.Category,
				DueDate:  payment.DueDate.Format(entity.DateLayout),
			})
		}
		c.JSON(http.StatusOK, dto.QueryResponse{Rows: rows})

	default:
		respondBadRequest(c, "unknown table")
	}
}

// Overview handles the GET /overview endpoint. Month and year default to the
// current calendar month when absent.
func (h *QueryHandler) Overview(c *gin.Context) {
	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()

	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "month must be a number")
			return
		}
		month = parsed
	}
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "year must be a number")
			return
		}
		year = parsed
	}

	report, err := h.overviewService.Monthly(c.Request.Context(), middleware.UserID(c), time.Month(month), year)
	if err != nil {
		respondError(c, err)
		return
	}

	top := make([]dto.OverviewEntry, 0, len(report.Top))
	for _, transaction := range report.Top {
		top = append(top, dto.OverviewEntry{
			Name: transaction.Name,
			Cost: transaction.FormattedCost(),
			Date: transaction.Date.Format(entity.DateLayout),
		})
	}

	begin := time.Date(report.Year, report.Month, 1, 0, 0, 0, 0, time.UTC)
	end := begin.AddDate(0, 1, -1)
	c.JSON(http.StatusOK, dto.OverviewResponse{
		Sum:        entity.FormatCents(report.TotalSpent),
		Top:        top,
		BeginRange: begin.Format(entity.DateLayout),
		EndRange:   end.Format(entity.DateLayout),
	})
}
