// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"travel-agency/internal/adaptor"
	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/middleware"
	"travel-agency/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const healthTimeout = 3 * time.Second

// Pinger is anything /health can check
type Pinger interface {
	Ping(ctx context.Context) error
}

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, infra usecase.Infra, db Pinger, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, infra, config, logger)
	handler := adaptor.NewHandler(service, adaptor.Options{
		Translator:     utils.NewCatalogTranslator(),
		Debug:          config.App.Debug,
		UploadMaxBytes: config.Image.UploadMaxBytes,
	}, logger)

	checks := map[string]Pinger{"database": db}
	if infra.Cache != nil {
		checks["cache"] = infra.Cache
	}
	if infra.Storage != nil {
		checks["storage"] = infra.Storage
	}

	// Setup router
	router := setupRouter(handler, infra.JWT, checks, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	jwtManager *utils.JWTManager,
	checks map[string]Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))
	r.Use(middleware.RateLimit(config.Throttle, jwtManager, logger))

	guard := guards{
		auth:     middleware.Auth(jwtManager, logger),
		optional: middleware.OptionalAuth(jwtManager, logger),
		admin:    middleware.RequireRole(logger, string(entity.RoleAdmin)),
	}

	// Apply routes
	wireAuth(r, handler.Auth, guard)
	wireUser(r, handler.User, guard)
	wireDestination(r, handler.Destination, guard)
	wireBooking(r, handler.Booking, guard)
	wireSlider(r, handler.Slider, guard)
	wireTestimonial(r, handler.Testimonial, guard)
	wireSubscription(r, handler.Subscription, guard)
	wireUpload(r, handler.Upload, guard)

	// Health check endpoint
	r.Get("/health", healthHandler(checks, logger))

	return r
}

// healthHandler pings every dependency in parallel and reports 503 when one is down
func healthHandler(checks map[string]Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		healthy := true
		type outcome struct {
			name string
			err  error
		}
		outcomes := make(chan outcome, len(checks))

		var g errgroup.Group
		for name, check := range checks {
			g.Go(func() error {
				outcomes <- outcome{name: name, err: check.Ping(ctx)}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)

		for o := range outcomes {
			if o.err != nil {
				logger.Warn("Health check failed", zap.String("dependency", o.name), zap.Error(o.err))
				results[o.name] = "down"
				healthy = false
				continue
			}
			results[o.name] = "up"
		}

		if !healthy {
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "unhealthy", results, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", results)
	}
}
