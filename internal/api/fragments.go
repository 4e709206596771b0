package api

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meur/gamedocs/internal/catalog"
	"github.com/meur/gamedocs/internal/models"
	"github.com/meur/gamedocs/internal/query"
)

// handleFragment returns the link fragment for ?id=, or the text-only form
// with &text=1
func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	cat, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	if s.notModified(w, r) {
		return
	}

	params := query.Parse(r.URL.RequestURI())
	record := s.cat.Find(cat, params.Get("id"))

	var html template.HTML
	if params.Get("text") == "1" {
		html, err = s.render.TextLink(cat, record)
	} else {
		html, err = s.render.Link(cat, record)
	}
	if errors.Is(err, models.ErrNoDetailPage) {
		respondError(w, http.StatusBadRequest, "Category has no link form; use text=1")
		return
	}
	if err != nil {
		log.Printf("render %s fragment: %v", cat, err)
		respondError(w, http.StatusInternalServerError, "Failed to render fragment")
		return
	}

	respondHTML(w, http.StatusOK, html)
}

// handleUnlockFragment returns one "required to unlock" list item
func (s *Server) handleUnlockFragment(w http.ResponseWriter, r *http.Request) {
	params := query.Parse(r.URL.RequestURI())

	typ, err := models.ParseUnlockType(params.Get("type"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid unlock type")
		return
	}

	lock := models.Unlock{Type: typ, SourceID: params.Get("sourceID")}
	if raw := params.Get("chance"); raw != "" {
		chance, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid chance")
			return
		}
		lock.Chance = chance
	}

	if s.notModified(w, r) {
		return
	}

	html, err := s.render.UnlockListItem(lock)
	if errors.Is(err, catalog.ErrUnknownUnlockType) {
		respondError(w, http.StatusBadRequest, "No link rule for unlock type")
		return
	}
	if err != nil {
		log.Printf("render unlock fragment: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to render fragment")
		return
	}

	respondHTML(w, http.StatusOK, html)
}
