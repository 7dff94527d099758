// Package metrics exposes prometheus counters for the console.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfoliodesk_uploads_total",
			Help: "Accepted upload submissions",
		},
		[]string{"category"},
	)

	UploadErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfoliodesk_upload_errors_total",
			Help: "Rejected or failed upload attempts",
		},
		[]string{"kind"},
	)

	RecordsParsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfoliodesk_records_parsed_total",
			Help: "Records parsed from uploaded files",
		},
	)

	NoticesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfoliodesk_notices_total",
			Help: "Notice registers exported",
		},
		[]string{"kind"},
	)

	FileReadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfoliodesk_file_read_duration_seconds",
			Help:    "Time taken to read and parse an uploaded file",
			Buckets: prometheus.DefBuckets,
		},
	)

	LoansLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfoliodesk_loans_loaded",
			Help: "Loans in the portfolio view",
		},
	)
)

// Upload error kinds.
const (
	ErrKindValidation  = "validation"
	ErrKindUnsupported = "unsupported"
	ErrKindParse       = "parse"
	ErrKindSink        = "sink"
)

// RecordParse counts a finished file read.
func RecordParse(records int, elapsed time.Duration) {
	RecordsParsedTotal.Add(float64(records))
	FileReadDuration.Observe(elapsed.Seconds())
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
