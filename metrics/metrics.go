// Package metrics exposes Prometheus instrumentation for the client's
// operations and a standalone metrics HTTP server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation counters. Results are "success" or "failure".
var (
	RefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_client_refreshes_total",
		Help: "Registry synchronization runs by result.",
	}, []string{"result"})

	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_client_submissions_total",
		Help: "Report submission pipeline runs by result.",
	}, []string{"result"})

	SettlementFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_client_settlement_failures_total",
		Help: "Transactions that were broadcast but failed to settle successfully.",
	})

	SessionResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_client_session_resets_total",
		Help: "Full session resets triggered by wallet change events.",
	})
)

// MetricsServer serves the Prometheus scrape endpoint on its own listener.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given listen address.
func New(name, listenAddr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:         listenAddr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe blocks serving the scrape endpoint.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
