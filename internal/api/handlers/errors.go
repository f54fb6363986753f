package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
)

// Error codes returned in the error envelope
const (
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeBelowMinimum       = "BELOW_MINIMUM"
	CodeInvalidAddress     = "INVALID_ADDRESS"
	CodeSameWallet         = "SAME_WALLET"
	CodeInvalidWallet      = "INVALID_WALLET"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternalError      = "INTERNAL_ERROR"
	CodePersistenceFailure = "PERSISTENCE_ERROR"
)

// respondError maps a domain error onto the HTTP error envelope.
func respondError(c *gin.Context, err error) {
	status, code, message := classify(err)

	resp := entities.ErrorResponse{Code: code, Message: message}
	var domainErr *domainerrors.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code != "" {
			resp.Code = domainErr.Code
		}
		if domainErr.Message != "" {
			resp.Message = domainErr.Message
		}
		resp.Details = domainErr.Details
	}

	c.JSON(status, resp)
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, domainerrors.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, CodeInsufficientFunds, "insufficient funds"
	case errors.Is(err, domainerrors.ErrInvalidAmount):
		return http.StatusBadRequest, CodeInvalidAmount, "amount must be positive"
	case errors.Is(err, domainerrors.ErrBelowMinimum):
		return http.StatusUnprocessableEntity, CodeBelowMinimum, "amount below minimum"
	case errors.Is(err, domainerrors.ErrInvalidAddress):
		return http.StatusBadRequest, CodeInvalidAddress, "invalid external address"
	case errors.Is(err, domainerrors.ErrSameWallet):
		return http.StatusBadRequest, CodeSameWallet, "source and destination wallets must differ"
	case errors.Is(err, domainerrors.ErrInvalidWalletCategory):
		return http.StatusBadRequest, CodeInvalidWallet, "invalid wallet category"
	case errors.Is(err, domainerrors.ErrWalletNotFound),
		errors.Is(err, domainerrors.ErrUserNotFound),
		errors.Is(err, domainerrors.ErrPackageNotFound),
		errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, "resource not found"
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return http.StatusConflict, CodeConflict, "resource already exists"
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidRequest, "invalid request"
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized, "unauthorized"
	case errors.Is(err, domainerrors.ErrPersistence):
		return http.StatusServiceUnavailable, CodePersistenceFailure, "storage unavailable"
	default:
		return http.StatusInternalServerError, CodeInternalError, "internal server error"
	}
}

// respondBindError maps a request binding failure.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, entities.ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: "invalid request body",
		Details: map[string]interface{}{"error": err.Error()},
	})
}
