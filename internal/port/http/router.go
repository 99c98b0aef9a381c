package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/platform/metrics"
)

// NewRouter assembles the REST surface. Reads on published listings are
// public; everything that mutates state or exposes credentials sits behind
// the auth middleware.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	roomHandler *RoomHandler,
	itemHandler *ItemHandler,
	authMiddleware *AuthMiddleware,
	m *metrics.MetricsManager,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(latencyMiddleware(m))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/auth/verify-reset-otp", authHandler.VerifyResetOTP)
	r.Post("/api/auth/reset-password", authHandler.ResetPassword)

	r.Get("/api/rooms", roomHandler.List)
	r.Get("/api/rooms/{id}", roomHandler.GetByID)
	r.Get("/api/items", itemHandler.List)
	r.Get("/api/items/{id}", itemHandler.GetByID)

	// Protected routes
	r.Group(func(authRouter chi.Router) {
		authRouter.Use(authMiddleware.Handler)

		authRouter.Post("/api/auth/change-password", authHandler.ChangePassword)

		authRouter.Get("/api/profiles", profileHandler.List)
		authRouter.Get("/api/profiles/me", profileHandler.Me)
		authRouter.Get("/api/profiles/{id}", profileHandler.GetByID)
		authRouter.Put("/api/profiles/{id}", profileHandler.Update)
		authRouter.Post("/api/profiles/{id}/deactivate", profileHandler.Deactivate)
		authRouter.Delete("/api/profiles/{id}", profileHandler.Delete)

		authRouter.Post("/api/rooms", roomHandler.Create)
		authRouter.Put("/api/rooms/{id}", roomHandler.Update)
		authRouter.Post("/api/rooms/{id}/publish", roomHandler.Publish)
		authRouter.Post("/api/rooms/{id}/unpublish", roomHandler.Unpublish)
		authRouter.Post("/api/rooms/{id}/photos", roomHandler.UploadPhoto)
		authRouter.Post("/api/rooms/{id}/deactivate", roomHandler.Deactivate)
		authRouter.Delete("/api/rooms/{id}", roomHandler.Delete)

		authRouter.Post("/api/items", itemHandler.Create)
		authRouter.Put("/api/items/{id}", itemHandler.Update)
		authRouter.Post("/api/items/{id}/publish", itemHandler.Publish)
		authRouter.Post("/api/items/{id}/unpublish", itemHandler.Unpublish)
		authRouter.Post("/api/items/{id}/photos", itemHandler.UploadPhoto)
		authRouter.Post("/api/items/{id}/deactivate", itemHandler.Deactivate)
		authRouter.Delete("/api/items/{id}", itemHandler.Delete)
	})

	return r
}

// latencyMiddleware records per-route request latency. The route pattern is
// read after the handler runs so path parameters do not explode cardinality.
func latencyMiddleware(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.APIRequestLatency.WithLabelValues(r.Method + " " + pattern).Observe(time.Since(start).Seconds())
		})
	}
}
