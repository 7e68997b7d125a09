package api

import (
	"net/http"
	"strconv"
)

func (s *Server) analyticsSummary(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "analytics disabled")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Summary())
}

func (s *Server) analyticsBots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "analytics disabled")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.BotReport(queryLimit(r, 20)))
}

func (s *Server) analyticsHourly(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "analytics disabled")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Hourly(s.clock.Now()))
}

func (s *Server) analyticsPages(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "analytics disabled")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.TopPages(queryLimit(r, 10)))
}

func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
