package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meur/gamedocs/internal/models"
)

// handleGetRecords returns every record of a category in display order
func (s *Server) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	cat, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	if s.notModified(w, r) {
		return
	}

	records := s.cat.Collection(cat)
	if records == nil {
		records = []models.Record{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records":     records,
		"total_count": len(records),
	})
}

// handleGetRecord returns a single record by ID
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	cat, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	record := s.cat.Find(cat, chi.URLParam(r, "id"))
	if record.IsZero() {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	if s.notModified(w, r) {
		return
	}

	respondJSON(w, http.StatusOK, record)
}
