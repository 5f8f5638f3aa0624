package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/security"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
)

const userIDKey = "user_id"

// Auth validates the bearer token and stores the authenticated user id in
// the request context. Requests without a valid token never reach a handler.
func Auth(tokens security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrUnauthorized),
				Message: "no bearer token in headers",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrUnauthorized),
				Message: "invalid access token",
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id stored by Auth
func UserID(c *gin.Context) uint64 {
	userID, _ := c.Get(userIDKey)
	id, _ := userID.(uint64)
	return id
}
