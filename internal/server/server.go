package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/songzhibin97/chainpulse/internal/configs"
)

// Server 对外 HTTP 接口
type Server struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger
}

func New(cfg configs.ServerConfig, h *Handler, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(LoggerMiddleware(logger))
	e.Use(CORSMiddleware(cfg.AllowedOrigins))

	e.GET("/health", h.GetHealth)

	api := e.Group("/api")

	api.GET("/prices", h.GetPrices)
	api.POST("/prices/refresh", h.RefreshPrices)

	wallet := api.Group("/wallet")
	wallet.GET("/examples", h.GetExampleWallets)
	wallet.POST("/lookup", h.LookupWallet)

	whales := api.Group("/whales")
	whales.GET("", h.GetWhales)
	whales.POST("/refresh", h.RefreshWhales)
	whales.POST("/pause", h.PauseWhales)
	whales.POST("/resume", h.ResumeWhales)

	api.GET("/market/overview", h.GetMarketOverview)
	api.GET("/market/mini", h.GetMarketMini)

	api.GET("/drawdowns/:asset", h.GetDrawdowns)

	projections := api.Group("/projections")
	projections.GET("", h.GetProjections)
	projections.POST("", h.SubmitProjection)
	projections.DELETE("", h.ClearProjections)

	api.GET("/coverage", h.GetCoverage)

	api.GET("/ask/examples", h.GetAskExamples)
	api.POST("/ask", h.Ask)

	api.POST("/claude", h.ProxyClaude)

	return &Server{
		echo:   e,
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		logger: logger,
	}
}

// ServeHTTP lets the server be mounted or exercised directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
