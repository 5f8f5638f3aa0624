package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler middleware recovers from panics and returns a standardized
// error response instead of dropping the connection
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetHeader("X-Request-ID"),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    errs.ErrorCode(errs.ErrInternalServer),
					Message: "internal server error",
				})
			}
		}()

		c.Next()
	}
}
