package wire

import (
	"net/http"

	"shop-backend/internal/adaptor"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/middleware"
	"shop-backend/pkg/security"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP application.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes from the repositories.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	hasher := security.NewBcryptHasher(config.Security.BcryptCost)

	service := usecase.NewService(repo, hasher, config.Security.PasswordMinLength, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, logger),
		Service: service,
	}
}

const metricsNamespace = "shop"

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	metrics := middleware.NewMetrics(metricsNamespace)

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(metrics.Instrument)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User)
	wireCatalog(r, handler.Category, handler.Product)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
