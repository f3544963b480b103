package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"timebook/internal/config"
	"timebook/internal/entries"
	"timebook/internal/export"
	"timebook/internal/storage"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the booking and time-entry API.
type HTTPServer struct {
	cfg      *config.Config
	bookings *storage.Store
	entries  *entries.Store
	exporter *export.Exporter
	logger   zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(
	cfg *config.Config,
	bookings *storage.Store,
	entryStore *entries.Store,
	exporter *export.Exporter,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		bookings: bookings,
		entries:  entryStore,
		exporter: exporter,
		logger:   logger.With().Str("component", "http").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/api/booking", srv.handleBooking)
	mux.HandleFunc("/api/files", srv.handleFiles)
	mux.HandleFunc("/api/time-entries", srv.handleEntries)
	mux.HandleFunc("/api/time-entries/", srv.handleEntryByID)
	mux.HandleFunc("/api/scan", srv.handleScan)
	mux.HandleFunc("/api/export", srv.handleExport)

	limiter := newRateLimiter(cfg.RateLimit)
	handler := srv.loggingMiddleware(limiter.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler returns the full middleware chain, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
