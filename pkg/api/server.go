// Package api serves the replay codec and archive over HTTP.
//
// Routes under /api/v1 require the X-API-Key header. /metrics is left open
// for Prometheus scraping, and /swagger/ serves the API documentation.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"

	"github.com/ssargent/osr/pkg/replay"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the HTTP routes for s. metricsHandler is mounted at
// /metrics when non-nil.
func NewRouter(s *Server, metricsHandler http.Handler) http.Handler {
	m := s.metrics
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", s.handleSwagger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Codec
		r.Post("/replays/decode", m.InstrumentHandler("POST", "/api/v1/replays/decode", s.handleDecode))
		r.Post("/replays/repack", m.InstrumentHandler("POST", "/api/v1/replays/repack", s.handleRepack))
		r.Post("/replay-data/parse", m.InstrumentHandler("POST", "/api/v1/replay-data/parse", s.handleParseData))

		// Archive
		r.Post("/replays", m.InstrumentHandler("POST", "/api/v1/replays", s.handleArchivePut))
		r.Get("/replays", m.InstrumentHandler("GET", "/api/v1/replays", s.handleArchiveList))
		r.Get("/replays/{id}", m.InstrumentHandler("GET", "/api/v1/replays/{id}", s.handleArchiveGet))
		r.Get("/replays/{id}/summary", m.InstrumentHandler("GET", "/api/v1/replays/{id}/summary", s.handleArchiveSummary))
		r.Delete("/replays/{id}", m.InstrumentHandler("DELETE", "/api/v1/replays/{id}", s.handleArchiveDelete))
	})

	return r
}

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	<title>osr API Documentation</title>
	<link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	<div id="swagger-ui"></div>
	<script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	<script>
	  window.onload = function() {
	    SwaggerUIBundle({
	      url: '/swagger/swagger.json',
	      dom_id: '#swagger-ui',
	      presets: [
	        SwaggerUIBundle.presets.apis,
	        SwaggerUIBundle.presets.standalone
	      ]
	    });
	  };
	</script>
</body>
</html>`

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/swagger.json":
		doc, err := swag.ReadDoc(swag.Name)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to render swagger doc")
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully
func StartServer(ctx context.Context, archive ReplayArchive, codec *replay.Codec, config ServerConfig, log zerolog.Logger) error {
	if config.APIKey == "" {
		return errors.New("an API key is required")
	}

	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(archive, codec, config, metrics, log)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server, promhttp.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting osr REST API server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
