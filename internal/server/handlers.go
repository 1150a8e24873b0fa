package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/services"
	"github.com/aristath/jyotish/internal/utils"
)

const maxBodyBytes = 1 << 20

// contextRequest is the body of /api/context and /api/chart
type contextRequest struct {
	Birth  *domain.BirthData `json:"birth"`
	Intent *domain.Intent    `json:"intent,omitempty"`
	AsOf   string            `json:"as_of,omitempty"`
}

// dashaRequest is the body of /api/dasha
type dashaRequest struct {
	Birth *domain.BirthData `json:"birth"`
	AsOf  string            `json:"as_of,omitempty"`
	From  string            `json:"from,omitempty"` // default: birth
	To    string            `json:"to,omitempty"`   // default: as_of + 20 years
	Depth int               `json:"depth,omitempty"`
}

// transitRequest is the body of /api/transits
type transitRequest struct {
	Birth *domain.BirthData `json:"birth"`
	From  string            `json:"from,omitempty"` // default: today
	To    string            `json:"to,omitempty"`   // default: from + 1 year
}

// errorResponse is returned for every failed request
type errorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "jyotish",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleContext builds the full context
// POST /api/context
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if !s.decode(w, r, &req) {
		return
	}
	birth, err := parseBirth(req.Birth)
	if err != nil {
		s.writeError(w, err)
		return
	}
	asOf, err := parseMoment("as_of", req.AsOf, time.Time{})
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.builder.Build(r.Context(), services.Request{Birth: birth, Intent: req.Intent, AsOf: asOf})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleChart returns the static context only.
// The charts query parameter ("D10,D60") is merged into the intent's divisional charts.
// POST /api/chart
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if !s.decode(w, r, &req) {
		return
	}
	birth, err := parseBirth(req.Birth)
	if err != nil {
		s.writeError(w, err)
		return
	}

	intent := req.Intent
	if codes := domain.SplitDivisionCodes(r.URL.Query().Get("charts")); len(codes) > 0 {
		if intent == nil {
			intent = &domain.Intent{}
		}
		intent.DivisionalCharts = append(intent.DivisionalCharts, codes...)
	}

	frag, err := s.builder.ChartReport(r.Context(), birth, intent)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, frag)
}

// handleDasha returns current stacks and timelines for every dasha system
// POST /api/dasha
func (s *Server) handleDasha(w http.ResponseWriter, r *http.Request) {
	var req dashaRequest
	if !s.decode(w, r, &req) {
		return
	}
	birth, err := parseBirth(req.Birth)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if req.Depth < 0 || req.Depth > 5 {
		s.writeError(w, domain.Malformed("server.dasha", "depth", "expected 1-5, got %d", req.Depth))
		return
	}
	if req.Depth == 0 {
		req.Depth = 1
	}

	asOf, err := parseMoment("as_of", req.AsOf, time.Now().UTC())
	if err != nil {
		s.writeError(w, err)
		return
	}
	from, err := parseMoment("from", req.From, birth.UTC())
	if err != nil {
		s.writeError(w, err)
		return
	}
	to, err := parseMoment("to", req.To, asOf.AddDate(20, 0, 0))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !to.After(from) {
		s.writeError(w, domain.Malformed("server.dasha", "window", "to must be after from"))
		return
	}

	frag, errs, err := s.builder.Dashas(r.Context(), birth, asOf, from, to, req.Depth)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if errs == nil {
		errs = []domain.AnalysisError{}
	}
	frag["analysis_errors"] = errs
	s.writeJSON(w, http.StatusOK, frag)
}

// handleTransits sweeps the slow planets over a window
// POST /api/transits
func (s *Server) handleTransits(w http.ResponseWriter, r *http.Request) {
	var req transitRequest
	if !s.decode(w, r, &req) {
		return
	}
	birth, err := parseBirth(req.Birth)
	if err != nil {
		s.writeError(w, err)
		return
	}
	from, err := parseMoment("from", req.From, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		s.writeError(w, err)
		return
	}
	to, err := parseMoment("to", req.To, from.AddDate(1, 0, 0))
	if err != nil {
		s.writeError(w, err)
		return
	}

	frag, err := s.builder.Transits(r.Context(), birth, from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, frag)
}

// decode reads a bounded JSON body. Unknown fields are ignored.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		s.writeError(w, domain.Malformed("server.decode", "body", "invalid JSON: %v", err))
		return false
	}
	return true
}

func parseBirth(data *domain.BirthData) (domain.BirthInput, error) {
	if data == nil {
		return domain.BirthInput{}, domain.Malformed("server.decode", "birth", "missing birth")
	}
	return domain.NewBirthInput(*data, nil)
}

// parseMoment accepts RFC3339 or a bare date. Empty yields def.
func parseMoment(field, raw string, def time.Time) (time.Time, error) {
	t, err := utils.ParseMoment(raw, def)
	if err != nil {
		return time.Time{}, domain.Malformed("server.decode", field, "%v", err)
	}
	return t, nil
}

// statusFor maps engine error kinds to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	switch domain.KindOf(err) {
	case domain.KindInputMalformed, domain.KindIntentIgnored:
		return http.StatusBadRequest
	case domain.KindEphemerisRange:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: domain.KindOf(err)})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, s.log, status, data)
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
