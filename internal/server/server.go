package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-planner/internal/clock"
	"github.com/smokyabdulrahman/prayer-planner/internal/holiday"
	"github.com/smokyabdulrahman/prayer-planner/internal/prayer"
	"github.com/smokyabdulrahman/prayer-planner/internal/ramadan"
)

const shutdownTimeout = 5 * time.Second

// Services are the wired services the API serves.
type Services struct {
	Prayers  *prayer.Service
	Holidays *holiday.Registry
	Ramadan  *ramadan.Scheduler
	Clock    clock.Clock
}

// NewRouter builds the gin engine with every module mounted under /api/v1.
func NewRouter(svc Services, logger zerolog.Logger) *gin.Engine {
	if svc.Clock == nil {
		svc.Clock = clock.Real{}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			RequestIDHeader,
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	MountGroup(r, GroupConfig{
		Prefix:     "/api/v1",
		Middleware: []gin.HandlerFunc{RequestLogger(logger)},
	},
		PrayerModule(svc),
		SettingsModule(svc),
		CalendarModule(svc),
		RamadanModule(svc),
	)
	return r
}

// Server serves the API until its context is cancelled.
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// New returns a Server listening on addr.
func New(addr string, svc Services, logger zerolog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(svc, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run listens until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("listening")
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}
