// Package web serves interactive HTML charts for a loaded run collection
// using go-echarts. It is a local, short-lived viewer: handlers render
// from the in-memory collection and hold no other state.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/heron-robotics/fieldtest.report/internal/goalmetric"
	"github.com/heron-robotics/fieldtest.report/internal/monitoring"
	"github.com/heron-robotics/fieldtest.report/internal/robots"
	"github.com/heron-robotics/fieldtest.report/internal/runlog"
)

// Server renders charts for one loaded (robot, task) collection.
type Server struct {
	runs      runlog.Collection
	desc      robots.Descriptor
	threshold float64
}

// NewServer creates a chart server over a loaded collection.
func NewServer(runs runlog.Collection, desc robots.Descriptor, threshold float64) *Server {
	if threshold <= 0 {
		threshold = goalmetric.DefaultThreshold
	}
	return &Server{runs: runs, desc: desc, threshold: threshold}
}

// ServeMux returns the handler mux for the chart server.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/charts/metric", s.handleMetricChart)
	mux.HandleFunc("/charts/trajectory", s.handleTrajectoryChart)
	mux.HandleFunc("/charts/goals", s.handleGoalsChart)
	mux.HandleFunc("/api/runs", s.handleRuns)
	return mux
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.ServeMux(),
	}

	errCh := make(chan error, 1)
	go func() {
		monitoring.Logf("chart server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("chart server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("chart server shutdown: %w", err)
	}
	return nil
}
