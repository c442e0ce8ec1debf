package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pay2post/pay2post/internal/models"
)

type key int

const (
	SessionServiceKey key = iota
	OrderServiceKey
	JwtServiceKey
)

func ServiceInjectorMiddleware(
	sessionService models.SessionService,
	orderService models.OrderService,
	jwtService models.JWTService,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), SessionServiceKey, sessionService)
			ctx = context.WithValue(ctx, OrderServiceKey, orderService)
			ctx = context.WithValue(ctx, JwtServiceKey, jwtService)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetServiceFromContext[Service interface{}](w http.ResponseWriter, r *http.Request, serviceKey key) *Service {
	foundService, ok := r.Context().Value(serviceKey).(Service)

	if !ok {
		http.Error(w, fmt.Sprintf("Service wasn't found in context by key %v", serviceKey), http.StatusInternalServerError)
		return nil
	}

	return &foundService
}
