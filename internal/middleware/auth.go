package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"planet-randomizer/internal/auth"
	"planet-randomizer/internal/shared/errors"
	"planet-randomizer/internal/shared/response"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

type Authenticator struct {
	issuer *auth.Issuer
}

func NewAuthenticator(issuer *auth.Issuer) *Authenticator {
	return &Authenticator{issuer: issuer}
}

// JWT requires a valid "Authorization: Bearer" token and stores its claims in the request context.
func (a *Authenticator) JWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "jwt",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		claims, err := a.issuer.ValidateJWT(token)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		logger.Debug("JWT authentication successful", "subject", claims.Subject, "role", claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole chains JWT authentication and a role check.
func (a *Authenticator) RequireRole(role string, next http.Handler) http.Handler {
	return a.JWT(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With("middleware", "role", "role", role, "path", r.URL.Path)

		claims := GetClaimsFromContext(r)
		if claims == nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}
		if claims.Role != role {
			logger.Warn("Token without required role", "subject", claims.Subject, "token_role", claims.Role)
			response.Error(w, r, logger, errors.Forbidden(role+" access required"))
			return
		}

		next.ServeHTTP(w, r)
	}))
}

func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireRole(auth.RoleAdmin, next)
}

func GetClaimsFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
