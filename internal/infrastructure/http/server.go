package http

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/VINCLARIFY/payment-service/internal/adapter/handler/http"
	"github.com/VINCLARIFY/payment-service/internal/config"
	"github.com/VINCLARIFY/payment-service/internal/usecase"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	checkout *usecase.CheckoutService
}

func NewServer(cfg *config.Config, logger *zap.Logger, checkout *usecase.CheckoutService) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.HTTP.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
	}))

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		checkout: checkout,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.config.Service.Name)
	orderHandler := handlers.NewOrderHandler(s.checkout, s.logger)

	s.echo.GET("/health", healthHandler.Health)

	// The checkout pages hit these either bare or under /api depending on the
	// deployment; serve both.
	s.echo.POST("/create-paypal-order", orderHandler.CreateOrder)
	s.echo.POST("/capture-paypal-order", orderHandler.CaptureOrder)

	api := s.echo.Group("/api")
	api.POST("/create-paypal-order", orderHandler.CreateOrder)
	api.POST("/capture-paypal-order", orderHandler.CaptureOrder)
}
