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

// TransactionHandler handles transaction and recurring payment edits
type TransactionHandler struct {
	ledgerService *ledger.Service
	logger        coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(ledgerService *ledger.Service, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Create handles the POST /create/transaction endpoint
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing transaction fields in body")
		return
	}

	costCents, err := entity.ParseAmount(req.Cost)
	if err != nil {
		respondError(c, err)
		return
	}
	date, err := entity.ParseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.ledgerService.RecordTransaction(
		c.Request.Context(), middleware.UserID(c), req.Name, costCents, req.Category, date)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.CreateTransactionResponse{
		TotalBudget: entity.FormatBudget(result.TotalBudget),
		Spent:       entity.FormatCents(result.Spent),
	}
	if result.TotalBudget != nil {
		resp.Notice = noticeString(budget.Evaluate(*result.TotalBudget, result.Spent))
	}
	c.JSON(http.StatusCreated, resp)
}

// Update handles the POST /update/transaction and /update/recurring-payment
// endpoints. The request names the record kind and exactly one field to
// change; transaction cost edits also return the owning category's spend
// total after the adjustment.
func (h *TransactionHandler) Update(c *gin.Context) {
	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "unspecified update request")
		return
	}

	switch req.Table {
	case "transactions":
		h.updateTransaction(c, req)
	case "recurringpayments":
		h.updatePayment(c, req)
	default:
		respondBadRequest(c, "unknown table")
	}
}

func (h *TransactionHandler) updateTransaction(c *gin.Context, req dto.UpdateRequest) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	switch {
	case req.NewName != nil:
		if err := h.ledgerService.UpdateTransactionName(ctx, userID, req.ID, *req.NewName); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.UpdateResponse{ID: req.ID})

	case req.NewCost != nil:
		// The stored cost is the source of truth for the spend delta; the
		// old-cost field is accepted for wire compatibility but ignored.
		newCost, err := entity.ParseAmount(*req.NewCost)
		if err != nil {
			respondError(c, err)
			return
		}
		spent, err := h.ledgerService.UpdateTransactionCost(ctx, userID, req.ID, newCost)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.UpdateResponse{ID: req.ID, Spent: entity.FormatCents(spent)})

	case req.NewCategory != nil:
		if err := h.ledgerService.ReassignTransactionCategory(ctx, userID, req.ID, *req.NewCategory); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.UpdateResponse{ID: req.ID})

	case req.NewDate != nil:
		date, err := entity.ParseDate(*req.NewDate)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := h.ledgerService.UpdateTransactionDate(ctx, userID, req.ID, date); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.UpdateResponse{ID: req.ID})

	default:
		respondError(c, errs.ErrInvalidRequest)
	}
}

func (h *TransactionHandler) updatePayment(c *gin.Context, req dto.UpdateRequest) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	switch {
	case req.NewName != nil:
		if err := h.ledgerService.UpdatePaymentName(ctx, userID, req.ID, *req.NewName); err != nil {
			respondError(c, err)
			return
		}

	case req.NewCost != nil:
		newCost, err := entity.ParseAmount(*req.NewCost)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := h.ledgerService.UpdatePaymentCost(ctx, userID, req.ID, newCost); err != nil {
			respondError(c, err)
			return
		}

	case req.NewCategory != nil:
		if err := h.ledgerService.UpdatePaymentCategory(ctx, userID, req.ID, *req.NewCategory); err != nil {
			respondError(c, err)
			return
		}

	case req.NewDate != nil:
		date, err := entity.ParseDate(*req.NewDate)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := h.ledgerService.UpdatePaymentDueDate(ctx, userID, req.ID, date); err != nil {
			respondError(c, err)
			return
		}

	default:
		respondError(c, errs.ErrInvalidRequest)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateResponse{ID: req.ID})
}

// Delete handles the POST /delete/transactions endpoint
func (h *TransactionHandler) Delete(c *gin.Context) {
	var req dto.DeleteRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing record id")
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), middleware.UserID(c), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{ID: req.ID})
}
