/* router.go
 * Builds the chi router of the HTTP server
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// maxBodyBytes caps the size of uploaded payloads
const maxBodyBytes = 8 << 20

// NewServer creates a Server and registers its routes
// Preconditions: Receives a Config with a non-nil API
// Postconditions: Returns the Server, ready to be used as an http.Handler
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		api:     cfg.API,
		logger:  logger,
		metrics: NewMetrics(),
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sports", s.GetSports)
		r.Post("/extract/{sport}", s.Extract)
		r.Post("/import/{sport}", s.ImportRecords)

		r.Route("/{sport}", func(r chi.Router) {
			r.Get("/athletes", s.SearchAthletes)
			r.Get("/athletes/{athleteID}/results", s.GetAthleteResults)
			r.Get("/athletes/{athleteID}/report", s.GetAthleteReport)
			r.Get("/competitions/{competitionID}/results", s.GetCompetitionResults)
			r.Get("/competitions/{competitionID}/report", s.GetCompetitionReport)
		})
	})

	s.router = r
	return s
}

// ServeHTTP lets the Server be used directly as a handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger logs one line per request
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
	})
}
