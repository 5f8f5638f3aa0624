package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	userUseCase "github.com/ledgerworks/budget-ledger/internal/domain/usecase/user"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	userService *userUseCase.Service
	logger      coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(userService *userUseCase.Service, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register handles the POST /users endpoint
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing credentials in body")
		return
	}

	account, err := h.userService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		ID:       account.ID,
		Username: account.Username,
	})
}

// Login handles the POST /auth endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing credentials in body")
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token})
}
