package main

import (
	"flag"
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"strings"

	"github.com/meur/gamedocs/internal/catalog"
	"github.com/meur/gamedocs/internal/models"
	"github.com/meur/gamedocs/internal/query"
	"github.com/meur/gamedocs/internal/render"
)

func main() {
	dataDir := flag.String("data", "./seeds", "Directory of JSON tables")
	pageURL := flag.String("url", "", `Page address, e.g. "item.html?id=wood"`)
	textOnly := flag.Bool("text", false, "Print the text-only link")
	unlocks := flag.Bool("unlocks", false, "Print the record's unlock list instead of its link")
	trust := flag.Bool("trust-data", false, "Emit names and link text without escaping")
	flag.Parse()

	cat, err := catalog.Load(os.DirFS(*dataDir))
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	category, err := pageCategory(*pageURL)
	if err != nil {
		log.Fatalf("Bad -url %q: %v", *pageURL, err)
	}

	var opts []render.Option
	if *trust {
		opts = append(opts, render.WithTrustedData())
	}
	r := render.New(cat, opts...)

	record := cat.Find(category, query.ID(*pageURL))
	if record.IsZero() {
		log.Printf("Warning: no %s with id %q", category, query.ID(*pageURL))
	}

	var html template.HTML
	switch {
	case *unlocks:
		html, err = r.UnlockList(record.UnlockedBy)
	case *textOnly:
		html, err = r.TextLink(category, record)
	default:
		html, err = r.Link(category, record)
	}
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	fmt.Println(html)
}

// pageCategory maps "item.html?id=x" to the item category.
func pageCategory(pageURL string) (models.Category, error) {
	page, _, _ := strings.Cut(pageURL, "?")
	return models.ParseCategory(strings.TrimSuffix(path.Base(page), ".html"))
}
