package main

import (
	"flag"
	"log"
	"os"

	"github.com/meur/gamedocs/internal/catalog"
	"github.com/meur/gamedocs/internal/models"
	"github.com/meur/gamedocs/internal/storage"
)

func main() {
	dbPath := flag.String("db", "./gamedocs.db", "SQLite database path")
	dataDir := flag.String("data", "./seeds", "Directory of JSON tables")
	flag.Parse()

	data, err := catalog.LoadDir(os.DirFS(*dataDir))
	if err != nil {
		log.Fatalf("Failed to read tables: %v", err)
	}

	// Build once so bad rules fail before anything is written
	cat, err := catalog.New(data)
	if err != nil {
		log.Fatalf("Invalid tables: %v", err)
	}

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	if err := store.SaveSnapshot(cat.Data()); err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}

	for _, c := range models.Categories() {
		log.Printf("✓ %s: %d records", c, len(cat.Collection(c)))
	}
	log.Printf("🌱 Seeding complete! version %s", cat.Version())
}
