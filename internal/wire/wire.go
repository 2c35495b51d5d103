// internal/wire/wire.go
package wire

import (
	"net/http"
	"phone-auth/internal/adaptor"
	"phone-auth/internal/data/repository"
	"phone-auth/internal/usecase"
	"phone-auth/pkg/middleware"
	"phone-auth/pkg/notify"
	"phone-auth/pkg/otpgen"
	"phone-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers, and routes. The generator and
// notifier come from main because their drivers are picked from config.
func Wiring(
	repo *repository.Repository,
	generator otpgen.Generator,
	notifier notify.Notifier,
	config *utils.Config,
	logger *zap.Logger,
) (*App, error) {
	// Initialize services and handlers
	service, err := usecase.NewService(repo, generator, notifier, config, logger)
	if err != nil {
		return nil, err
	}
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireAccount(r, handler.Account, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
