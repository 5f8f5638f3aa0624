package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/usecase/ledger"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/middleware"
)

// PaymentHandler handles recurring payment requests
type PaymentHandler struct {
	ledgerService *ledger.Service
	logger        coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(ledgerService *ledger.Service, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Create handles the POST /create/recurring-payment endpoint
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing payment fields in body")
		return
	}

	costCents, err := entity.ParseAmount(req.Cost)
	if err != nil {
		respondError(c, err)
		return
	}
	dueDate, err := entity.ParseDate(req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	payment, err := h.ledgerService.CreatePayment(
		c.Request.Context(), middleware.UserID(c), req.Name, costCents, req.Category, dueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePaymentResponse{ID: payment.ID})
}

// Delete handles the POST /delete/recurringpayments endpoint
func (h *PaymentHandler) Delete(c *gin.Context) {
	var req dto.DeleteRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing record id")
		return
	}

	if err := h.ledgerService.DeletePayment(c.Request.Context(), middleware.UserID(c), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{ID: req.ID})
}
