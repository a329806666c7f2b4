package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"go-storefront/internal/storefront/handlers"
	"go-storefront/internal/storefront/middleware"
	"go-storefront/pkg/logging"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(
	cfg Config,
	tokenAuth *jwtauth.JWTAuth,
	registrationService handlers.RegistrationService,
	authorizationService handlers.AuthorizationService,
	orderService OrderService,
	imageFetcher handlers.ImageFetcher,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr: cfg.ServerAddress,
		Handler: createMux(
			tokenAuth,
			registrationService,
			authorizationService,
			orderService,
			imageFetcher,
			logger,
		),
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

// OrderService is the full order surface exposed over HTTP.
type OrderService interface {
	handlers.OrderGettingService
	handlers.OrderCreationService
	handlers.OrderCancellationService
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	tokenAuth *jwtauth.JWTAuth,
	registrationService handlers.RegistrationService,
	authorizationService handlers.AuthorizationService,
	orderService OrderService,
	imageFetcher handlers.ImageFetcher,
	logger *logging.ZapLogger,
) *chi.Mux {

	registrationHandler := handlers.NewRegisterHandler(registrationService, logger)
	authorizationHandler := handlers.NewAuthorizationHandler(authorizationService, logger)
	orderGettingHandler := handlers.NewOrderGettingHandler(orderService, logger)
	orderCreationHandler := handlers.NewOrderCreationHandler(orderService, logger)
	orderCancellationHandler := handlers.NewOrderCancellationHandler(orderService, logger)
	imageProxyHandler := handlers.NewImageProxyHandler(imageFetcher, logger)

	router := chi.NewRouter()
	router.Use(middleware.NewLoggerContext().CreateHandler)
	router.Use(middleware.NewPanicRecover(logger).CreateHandler)

	router.Route("/api/user", func(router chi.Router) {
		router.Post("/register", registrationHandler.ServeHTTP)
		router.Post("/login", authorizationHandler.ServeHTTP)

		router.Group(func(router chi.Router) {
			router.Use(jwtauth.Verifier(tokenAuth))
			router.Use(jwtauth.Authenticator(tokenAuth))
			router.Get("/orders", orderGettingHandler.ServeHTTP)
			router.Post("/orders", orderCreationHandler.ServeHTTP)
			router.Post("/orders/{orderID}/cancel", orderCancellationHandler.ServeHTTP)
		})
	})

	router.Route("/api/images", func(router chi.Router) {
		router.Get("/*", imageProxyHandler.ServeHTTP)
		router.Options("/*", imageProxyHandler.ServeOptions)
	})

	return router
}
