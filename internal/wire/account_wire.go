package wire

import (
	"phone-auth/internal/adaptor"
	"phone-auth/internal/data/repository"
	"phone-auth/pkg/middleware"
	"phone-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccount(
	r chi.Router,
	accountHandler *adaptor.AccountHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", accountHandler.Register)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/me", accountHandler.Me)
}
