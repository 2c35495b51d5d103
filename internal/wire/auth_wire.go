package wire

import (
	"phone-auth/internal/adaptor"
	"phone-auth/internal/data/repository"
	"phone-auth/pkg/middleware"
	"phone-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/request-otp", authHandler.RequestOTP)
	r.Post("/api/authenticate", authHandler.Authenticate)

	// ==================== PROTECTED ROUTES ====================
	// Logout revokes the session named by the bearer token
	r.With(middleware.AuthSession(repo.Session, log)).Post("/api/logout", authHandler.Logout)
}
