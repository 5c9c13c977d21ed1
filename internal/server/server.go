// Package server publishes an already-computed metrics snapshot over
// HTTP for dashboards. Ingestion stays file-based and local; the server
// is a read-only view of one run's report.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	coreerrors "github.com/monielab/monieshop-analytics/internal/core/errors"
	"github.com/monielab/monieshop-analytics/internal/report"
)

type Server struct {
	Engine *gin.Engine
	Addr   string

	mu   sync.RWMutex
	view *report.View
}

// New creates the metrics server. The snapshot view may be set later
// via SetView; until then /v1/metrics answers 503.
func New(addr string, mode string) *Server {
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	s := &Server{
		Engine: r,
		Addr:   addr,
	}

	r.GET("/health", s.healthHandler)
	r.GET("/v1/metrics", s.metricsHandler)
	r.GET("/v1/metrics/report", s.reportHandler)

	return s
}

// SetView publishes a freshly rendered snapshot view.
func (s *Server) SetView(v report.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = &v
}

func (s *Server) currentView() *report.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *Server) healthHandler(c *gin.Context) {
	ready := s.currentView() != nil
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status": "healthy",
		"ready":  ready,
	})
}

// metricsHandler returns the snapshot view as JSON.
func (s *Server) metricsHandler(c *gin.Context) {
	v := s.currentView()
	if v == nil {
		c.JSON(http.StatusServiceUnavailable, coreerrors.ErrorResponse{
			ErrorType: coreerrors.HttpReportNotReady,
			Message:   "no report has been computed yet",
		})
		return
	}
	c.JSON(http.StatusOK, v)
}

// reportHandler returns the classic plain-text report.
func (s *Server) reportHandler(c *gin.Context) {
	v := s.currentView()
	if v == nil {
		c.JSON(http.StatusServiceUnavailable, coreerrors.ErrorResponse{
			ErrorType: coreerrors.HttpReportNotReady,
			Message:   "no report has been computed yet",
		})
		return
	}
	c.String(http.StatusOK, v.Text())
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Engine,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
