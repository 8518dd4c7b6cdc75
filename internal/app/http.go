package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/metrics"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
)

func newHttpServer(log logger.Logger, cfg *config.Config) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})
	mux.Handle("/metrics", metrics.Handler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func startHttpServer(log logger.Logger, server *http.Server) {
	log.Info("Starting server", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
