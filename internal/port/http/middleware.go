package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/cache"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/repository"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/usecase"
	"go.uber.org/zap"
)

// ContextKey is a private key type so context values cannot collide with
// other packages.
type ContextKey string

const (
	ProfileIDCtxKey     = ContextKey("profile_id")
	ContactNumberCtxKey = ContextKey("contact_number")
)

const profileCacheTTL = 15 * time.Minute

// AuthMiddleware verifies bearer tokens and re-checks that the profile
// behind the token is still active, so deactivation takes effect before the
// token expires. The profile lookup goes through the cache first.
type AuthMiddleware struct {
	tokens   *usecase.TokenIssuer
	profiles repository.ProfileRepository
	cache    cache.ProfileCache
	logger   *zap.Logger
}

func NewAuthMiddleware(
	tokens *usecase.TokenIssuer,
	profiles repository.ProfileRepository,
	profileCache cache.ProfileCache,
	logger *zap.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		profiles: profiles,
		cache:    profileCache,
		logger:   logger.Named("AuthMiddleware"),
	}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := m.tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "token is invalid or expired"})
			return
		}

		profile, err := m.loadProfile(r.Context(), claims.Subject)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "token is invalid or expired"})
			return
		}
		if !profile.IsActive {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "account is deactivated"})
			return
		}

		ctx := context.WithValue(r.Context(), ProfileIDCtxKey, profile.ID)
		ctx = context.WithValue(ctx, ContactNumberCtxKey, profile.ContactNumber)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) loadProfile(ctx context.Context, id string) (*profileForAuth, error) {
	if m.cache != nil {
		cached, err := m.cache.Get(ctx, id)
		if err != nil {
			m.logger.Warn("profile cache read failed", zap.String("profileID", id), zap.Error(err))
		} else if cached != nil {
			return &profileForAuth{ID: cached.ID, ContactNumber: cached.ContactNumber, IsActive: cached.IsActive}, nil
		}
	}

	profile, err := m.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		if err := m.cache.Set(ctx, profile, profileCacheTTL); err != nil {
			m.logger.Warn("profile cache write failed", zap.String("profileID", id), zap.Error(err))
		}
	}
	return &profileForAuth{ID: profile.ID, ContactNumber: profile.ContactNumber, IsActive: profile.IsActive}, nil
}

type profileForAuth struct {
	ID            string
	ContactNumber string
	IsActive      bool
}

// ProfileIDFromContext extracts the authenticated profile id set by the
// middleware.
func ProfileIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ProfileIDCtxKey).(string)
	return id, ok && id != ""
}
