/* handlers.go
 * Contains the HTTP handlers. JSON endpoints return the view models built by the api package, report and extract
 * endpoints return the plain text blocks
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"sports-results/api/api"
	"sports-results/api/shared"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultSearchLimit = 10

// HealthCheck returns the health status of the service
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"country": s.api.Country,
		"sports":  shared.Sports,
	})
}

// GetSports lists the sports the pipeline understands
func (s *Server) GetSports(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"sports": shared.Sports})
}

// Extract runs the extractor of {sport} over the request body.
// The text block is returned as text/plain, or wrapped in ExtractResponse when the client accepts JSON
func (s *Server) Extract(w http.ResponseWriter, r *http.Request) {
	sport, ok := s.sportParam(w, r)
	if !ok {
		return
	}
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, http.StatusRequestEntityTooLarge, "payload too large", err)
		return
	}

	result, err := s.api.Extract(sport, payload)
	if err != nil {
		s.metrics.extractions.WithLabelValues(string(sport), "error").Inc()
		s.respondAPIError(w, err)
		return
	}
	s.metrics.extractions.WithLabelValues(string(sport), "ok").Inc()

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		respondJSON(w, http.StatusOK, ExtractResponse{Sport: string(sport), Result: result})
		return
	}
	respondText(w, http.StatusOK, result)
}

// ImportRecords stores the structured match records in the request body
func (s *Server) ImportRecords(w http.ResponseWriter, r *http.Request) {
	sport, ok := s.sportParam(w, r)
	if !ok {
		return
	}
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, http.StatusRequestEntityTooLarge, "payload too large", err)
		return
	}

	written, err := s.api.ImportRecords(r.Context(), sport, payload)
	if err != nil {
		s.respondAPIError(w, err)
		return
	}
	s.metrics.recordsImported.WithLabelValues(string(sport)).Add(float64(written))
	respondJSON(w, http.StatusOK, ImportResponse{Sport: string(sport), Written: written})
}

// SearchAthletes fuzzy matches athlete names
// Query params: q (required), limit
func (s *Server) SearchAthletes(w http.ResponseWriter, r *http.Request) {
	sport, ok := s.sportParam(w, r)
	if !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	limit := parseIntParam(r, "limit", defaultSearchLimit)

	athletes, err := s.api.SearchAthletes(r.Context(), sport, query, limit)
	if err != nil {
		s.respondAPIError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"athletes": athletes,
		"count":    len(athletes),
	})
}

// GetAthleteResults returns the results view of one athlete
func (s *Server) GetAthleteResults(w http.ResponseWriter, r *http.Request) {
	sport, ok := s.sportParam(w, r)
	if !ok {
		return
	}
	view, err := s.api.AthleteResults(r.Context(), sport, chi.URLParam(r, "athleteID"))
	if err != nil {
		s.respondAPIError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetAthleteReport returns the results of one athlete as text
func (s *Server) GetAthleteReport(w http.ResponseWriter, r *http.Request) {
	sport, ok := s.sportParam(w, r)
	if !ok {
		return
	}
	report, err := s.api.AthleteReport(r.Context(), sport, chi.URLParam(r, "athleteID"))
	if err != nil {
		s.respondAPIError(w, err)
		return
	}
	respondText(w, http.StatusOK, report)
}

// GetCompetitionResults returns the target country's results in one competition
func (s *Server) GetCompetitionResults(w http.ResponseWriter, r *http.Request) {
	sport, ok := s.sportParam(w, r)
	if !ok {
		return
	}
	view, err := s.api.CompetitionResults(r.Context(), sport, chi.URLParam(r, "competitionID"))
	if err != nil {
		s.respondAPIError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetCompetitionReport returns the target country's results in one competition as text
func (s *Server) GetCompetitionReport(w http.ResponseWriter, r *http.Request) {
	sport, ok := s.sportParam(w, r)
	if !ok {
		return
	}
	report, err := s.api.CompetitionReport(r.Context(), sport, chi.URLParam(r, "competitionID"))
	if err != nil {
		s.respondAPIError(w, err)
		return
	}
	respondText(w, http.StatusOK, report)
}

// sportParam parses the {sport} path parameter, writing a 400 response when it is unknown
func (s *Server) sportParam(w http.ResponseWriter, r *http.Request) (shared.Sport, bool) {
	sport, err := api.ParseSport(chi.URLParam(r, "sport"))
	if err != nil {
		s.respondAPIError(w, err)
		return "", false
	}
	return sport, true
}

// respondAPIError maps an api error onto a status code and the user facing message
func (s *Server) respondAPIError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, api.ErrUnknownSport):
		status = http.StatusBadRequest
	case errors.Is(err, api.ErrInvalidJSON), errors.Is(err, api.ErrInvalidHTML):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, api.ErrAthleteNotFound):
		status = http.StatusNotFound
	}
	s.respondError(w, status, api.UserMessage(err), err)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		if status >= http.StatusInternalServerError {
			s.logger.Error(message, zap.Error(err))
		} else {
			s.logger.Debug(message, zap.Error(err))
		}
	}
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// parseIntParam reads a positive integer query parameter, falling back to def
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
