package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"phone-auth/internal/usecase"
	"phone-auth/pkg/notify"
	"phone-auth/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Account *AccountHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Account: NewAccountHandler(service.Account, log),
	}
}

// handleServiceError maps service errors onto HTTP responses. Typed errors
// are checked first; the message checks cover the plain service errors.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var failure *usecase.AuthenticationFailure
	var delivery *notify.DeliveryError
	errMsg := err.Error()

	switch {
	case errors.As(err, &failure):
		log.Warn(operation+" rejected", zap.String("reason", failure.Reason))
		utils.ResponseUnauthorized(w, failure.Reason)

	case errors.As(err, &delivery):
		log.Error(operation+" failed - delivery", zap.Error(err))
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Failed to deliver OTP", nil, nil)

	case errors.Is(err, usecase.ErrDirectoryInconsistency):
		log.Error(operation+" failed - directory inconsistency", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already registered"):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid token format"):
		log.Warn(operation+" failed - bad token", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
