package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pay2post/pay2post/internal/logger"
	"github.com/pay2post/pay2post/internal/middlewares"
	"github.com/pay2post/pay2post/internal/models"
)

type Config struct {
	Endpoint string
}

type Router struct {
	config         Config
	sessionService models.SessionService
	orderService   models.OrderService
	jwtService     models.JWTService
}

func New(
	config Config,
	sessionService models.SessionService,
	orderService models.OrderService,
	jwtService models.JWTService,
) *Router {
	return &Router{
		config,
		sessionService,
		orderService,
		jwtService,
	}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middlewares.ServiceInjectorMiddleware(
			router.sessionService,
			router.orderService,
			router.jwtService,
		),
		logger.RequestLogger,
		middlewares.AuthMiddleware().Middleware,
	)

	r.Route("/api", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.Submission]).Post("/submissions", BeginSubmission)
		r.With(middlewares.JSONMiddleware[models.Confirmation]).Post("/submissions/confirm", ConfirmSubmission)

		r.Get("/orders", GetOrders)
	})

	return r
}

func (router *Router) Run() {
	log.Fatal(http.ListenAndServe(router.config.Endpoint, router.get()))
}
