package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pay2post/pay2post/internal/models"
	"github.com/pay2post/pay2post/internal/services"
)

type submitterFieldType string

const submitterField submitterFieldType = "submitterField"

type AuthMiddlewareConfig struct {
	excludePaths []string
}

func AuthMiddleware() *AuthMiddlewareConfig {
	return &AuthMiddlewareConfig{}
}

func (a *AuthMiddlewareConfig) WithExcludedPaths(paths ...string) *AuthMiddlewareConfig {
	a.excludePaths = paths
	return a
}

// Middleware validates the front-end token and places the submitter identity
// from its claims into the request context. There is no user store behind
// this: the token itself is the identity boundary.
func (a *AuthMiddlewareConfig) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, path := range a.excludePaths {
			if strings.HasPrefix(r.URL.Path, path) {
				next.ServeHTTP(w, r)
				return
			}
		}

		jwtService := GetServiceFromContext[models.JWTService](w, r, JwtServiceKey)

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			http.Error(w, "Bearer token is empty", http.StatusUnauthorized)
			return
		}

		token, err := (*jwtService).ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, services.ErrTokenIsInvalid) {
				http.Error(w, "Token is invalid", http.StatusUnauthorized)
				return
			}

			if errors.Is(err, services.ErrTokenIsExpired) {
				http.Error(w, "Token is expired", http.StatusUnauthorized)
				return
			}

			http.Error(w, fmt.Sprintf("Error occurred during validating token: %s", err.Error()), http.StatusUnauthorized)
			return
		}

		submitterID, err := token.Claims.GetSubject()
		if err != nil || submitterID == "" {
			http.Error(w, "Token doesn't contain a subject", http.StatusUnauthorized)
			return
		}

		submitter := &models.Submitter{ID: submitterID}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if name, ok := claims["name"].(string); ok {
				submitter.Username = name
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), submitterField, submitter)))
	})
}

func GetSubmitterFromContext(w http.ResponseWriter, r *http.Request) *models.Submitter {
	submitter, ok := r.Context().Value(submitterField).(*models.Submitter)

	if !ok {
		http.Error(w, "Could not retrieve submitter from context", http.StatusInternalServerError)
		return nil
	}

	return submitter
}
