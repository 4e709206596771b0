package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/meur/gamedocs/internal/api"
	"github.com/meur/gamedocs/internal/catalog"
	"github.com/meur/gamedocs/internal/config"
	"github.com/meur/gamedocs/internal/render"
	"github.com/meur/gamedocs/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Parse flags
	port := flag.String("port", cfg.Port, "Server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite snapshot path (empty: read -data)")
	dataDir := flag.String("data", cfg.DataDir, "Directory of JSON tables")
	imagesDir := flag.String("images", cfg.ImagesDir, "Directory served under /images")
	trust := flag.Bool("trust-data", cfg.TrustData, "Emit names and link text without escaping")
	flag.Parse()

	cat, err := loadCatalog(*dbPath, *dataDir)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	var opts []render.Option
	if *trust {
		opts = append(opts, render.WithTrustedData())
	}

	srv := api.New(render.New(cat, opts...), api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		ImagesDir:      *imagesDir,
	})

	log.Printf("🚀 gamedocs preview starting on http://localhost:%s", *port)
	log.Printf("📦 Catalog version: %s", cat.Version())

	if err := http.ListenAndServe(":"+*port, srv); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func loadCatalog(dbPath, dataDir string) (*catalog.Catalog, error) {
	if dbPath == "" {
		log.Printf("📂 Data: %s", dataDir)
		return catalog.Load(os.DirFS(dataDir))
	}

	log.Printf("📦 Database: %s", dbPath)
	store, err := storage.New(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Catalog()
}
