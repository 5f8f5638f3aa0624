package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/api/dto"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	case errs.IsConflictError(err):
		return http.StatusConflict
	case errors.Is(err, errs.ErrCategoryProtected),
		errors.Is(err, errs.ErrReplacementRequired),
		errors.Is(err, errs.ErrSameCategory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidRequest),
		errors.Is(err, errs.ErrInvalidAmount),
		errors.Is(err, errs.ErrAmountOverflow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error DTO for a domain error
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// never leak store internals to the client
		message = "internal server error"
	}
	c.JSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	})
}

// respondBadRequest writes a 400 with the binding failure detail
func respondBadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    errs.CodeInvalidRequest,
		Message: detail,
	})
}
