package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
)

// AdminHandler handles operator endpoints
type AdminHandler struct {
	resetter persistence.Resetter
	logger   coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(resetter persistence.Resetter, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		resetter: resetter,
		logger:   logger,
	}
}

// Reset handles the DELETE /reset endpoint. It wipes every table, accounts
// included, and is meant for test environments.
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.resetter.ResetAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Warn("all tables wiped", map[string]any{"ip": c.ClientIP()})
	c.JSON(http.StatusOK, dto.ResetResponse{Success: 0})
}
