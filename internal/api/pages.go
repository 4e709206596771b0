package api

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/meur/gamedocs/internal/format"
	"github.com/meur/gamedocs/internal/models"
)

// pageFS contains the page layouts bundled with the binary.
//
//go:embed templates/*
var pageFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"hms":     format.HMS,
	"seconds": format.MsToSeconds,
	"percent": format.ScalarToPercent,
}).ParseFS(pageFS, "templates/*.gohtml"))

type stat struct {
	Name   string
	Scalar float64
}

type detailPage struct {
	Title    string
	Category string
	Found    bool
	Version  string

	Link     template.HTML
	TextLink template.HTML

	Gear             bool
	GearSlot         string
	Stats            []stat
	ConstructionTime int64
	Tags             template.HTML
	Unlocks          template.HTML
	Tagged           []template.HTML
}

// handleDetail serves <category>.html?id=<id>. Unknown IDs render the
// placeholder page.
func (s *Server) handleDetail(cat models.Category) http.HandlerFunc {
	forPage := map[models.Category]func(string) models.Record{
		models.CategoryObject: s.cat.ObjectForPage,
		models.CategoryItem:   s.cat.ItemForPage,
		models.CategoryNPC:    s.cat.NPCForPage,
		models.CategoryTag:    s.cat.TagForPage,
	}[cat]

	return func(w http.ResponseWriter, r *http.Request) {
		if s.notModified(w, r) {
			return
		}

		record := forPage(r.URL.RequestURI())
		page, err := s.detailPage(cat, record)
		if err != nil {
			log.Printf("build %s page for %q: %v", cat, record.ID, err)
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pages.ExecuteTemplate(w, "detail.gohtml", page); err != nil {
			log.Printf("render %s page for %q: %v", cat, record.ID, err)
		}
	}
}

func (s *Server) detailPage(cat models.Category, record models.Record) (detailPage, error) {
	page := detailPage{
		Title:    record.SortKey(),
		Category: cat.String(),
		Found:    !record.IsZero(),
		Version:  s.cat.Version(),
		Gear:     models.IsGear(record),

		ConstructionTime: record.ConstructionTime,
	}
	if record.GearSlot != nil {
		page.GearSlot = strconv.Itoa(*record.GearSlot)
	}
	if page.Title == "" {
		page.Title = "Unknown " + cat.String()
	}
	if !page.Found {
		return page, nil
	}

	var err error
	if page.Link, err = s.render.Link(cat, record); err != nil {
		return page, err
	}
	if page.TextLink, err = s.render.TextLink(cat, record); err != nil {
		return page, err
	}
	if page.Unlocks, err = s.render.UnlockList(record.UnlockedBy); err != nil {
		return page, err
	}
	page.Tags = s.render.TagList(record.Tags)

	for name, scalar := range record.Stats {
		page.Stats = append(page.Stats, stat{Name: name, Scalar: scalar})
	}
	sort.Slice(page.Stats, func(i, j int) bool { return page.Stats[i].Name < page.Stats[j].Name })

	if cat == models.CategoryTag {
		for _, entry := range s.cat.Tagged(record.ID) {
			link, err := s.render.TextLink(entry.Category, entry.Record)
			if err != nil {
				return page, err
			}
			page.Tagged = append(page.Tagged, link)
		}
	}
	return page, nil
}
