package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/whatstheplan/whatstheplan-go/internal/models"
	"github.com/whatstheplan/whatstheplan-go/internal/pipeline"
)

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Status      string               `json:"status"`
	SearchID    string               `json:"search_id,omitempty"`
	QueryStatus pipeline.QueryStatus `json:"query_status"`
	Events      []models.Event       `json:"events"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	currentDate := time.Now().Format("2006-01-02")
	s.logger.Info("processing search", "query", req.Query)

	result, err := s.runner.Run(r.Context(), req.Query, currentDate)
	if err != nil {
		s.logger.Error("search run failed", "query", req.Query, "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("search completed",
		"search_id", result.SearchID, "events", len(result.Events))

	s.respondJSON(w, http.StatusOK, searchResponse{
		Status:      "success",
		SearchID:    result.SearchID,
		QueryStatus: result.QueryStatus,
		Events:      result.Events,
	})
}

func (s *Server) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetSearch(r.Context(), id)
	if err != nil {
		s.logger.Error("get search failed", "id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		s.respondError(w, http.StatusNotFound, "search not found")
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListSearches(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := s.store.ListSearches(r.Context(), limit)
	if err != nil {
		s.logger.Error("list searches failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"searches": records,
		"count":    len(records),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.collector.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, map[string]string{"detail": detail})
}
