package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/gamedocs/internal/catalog"
	"github.com/meur/gamedocs/internal/models"
)

// Store holds a snapshot of the static game tables
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		// IDs are not unique: the tables keep whatever the source data holds.
		`CREATE TABLE IF NOT EXISTS records (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT,
			data TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_category ON records(category, id)`,
		`CREATE TABLE IF NOT EXISTS unlock_rules (
			type TEXT PRIMARY KEY,
			page TEXT NOT NULL,
			prefix TEXT NOT NULL DEFAULT '',
			suffix TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Records ---

// GetRecords returns the records of one category in insertion order
func (s *Store) GetRecords(cat models.Category) ([]models.Record, error) {
	rows, err := s.db.Query(`
		SELECT data FROM records WHERE category = ? ORDER BY seq
	`, cat.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r models.Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", cat, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ReplaceRecords swaps every record of a category in one transaction
func (s *Store) ReplaceRecords(cat models.Category, records []models.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceRecords(tx, cat, records); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceRecords(tx *sql.Tx, cat models.Category, records []models.Record) error {
	if _, err := tx.Exec(`DELETE FROM records WHERE category = ?`, cat.String()); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (category, id, name, data)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode %s %q: %w", cat, r.ID, err)
		}
		if _, err := stmt.Exec(cat.String(), r.ID, r.Name, string(data)); err != nil {
			return err
		}
	}
	return nil
}

// --- Unlock rules ---

// GetLinkRules returns the link rule of every stored unlock type
func (s *Store) GetLinkRules() (models.LinkRules, error) {
	rows, err := s.db.Query(`SELECT type, page, prefix, suffix FROM unlock_rules`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := models.LinkRules{}
	for rows.Next() {
		var typ, page string
		var rule models.LinkRule
		if err := rows.Scan(&typ, &page, &rule.Prefix, &rule.Suffix); err != nil {
			return nil, err
		}
		t, err := models.ParseUnlockType(typ)
		if err != nil {
			return nil, err
		}
		if rule.Page, err = models.ParseCategory(page); err != nil {
			return nil, err
		}
		rules[t] = rule
	}
	return rules, rows.Err()
}

func replaceLinkRules(tx *sql.Tx, rules models.LinkRules) error {
	if _, err := tx.Exec(`DELETE FROM unlock_rules`); err != nil {
		return err
	}
	for t, rule := range rules {
		_, err := tx.Exec(`
			INSERT INTO unlock_rules (type, page, prefix, suffix)
			VALUES (?, ?, ?, ?)
		`, t.String(), rule.Page.String(), rule.Prefix, rule.Suffix)
		if err != nil {
			return err
		}
	}
	return nil
}

// --- Snapshots ---

// SaveSnapshot replaces every stored table with d
func (s *Store) SaveSnapshot(d catalog.Data) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for cat, records := range collections(&d) {
		if err := replaceRecords(tx, cat, *records); err != nil {
			return fmt.Errorf("save %s: %w", cat, err)
		}
	}
	if err := replaceLinkRules(tx, d.Rules); err != nil {
		return fmt.Errorf("save unlock rules: %w", err)
	}
	return tx.Commit()
}

// LoadSnapshot reads every stored table
func (s *Store) LoadSnapshot() (catalog.Data, error) {
	var d catalog.Data
	for cat, records := range collections(&d) {
		loaded, err := s.GetRecords(cat)
		if err != nil {
			return catalog.Data{}, fmt.Errorf("load %s: %w", cat, err)
		}
		*records = loaded
	}

	rules, err := s.GetLinkRules()
	if err != nil {
		return catalog.Data{}, fmt.Errorf("load unlock rules: %w", err)
	}
	d.Rules = rules
	return d, nil
}

// Catalog builds a catalog from the stored snapshot
func (s *Store) Catalog() (*catalog.Catalog, error) {
	d, err := s.LoadSnapshot()
	if err != nil {
		return nil, err
	}
	return catalog.New(d)
}

func collections(d *catalog.Data) map[models.Category]*[]models.Record {
	return map[models.Category]*[]models.Record{
		models.CategoryObject: &d.Objects,
		models.CategoryItem:   &d.Items,
		models.CategoryNPC:    &d.NPCs,
		models.CategoryTag:    &d.Tags,
		models.CategoryRecipe: &d.Recipes,
		models.CategorySpell:  &d.Spells,
	}
}
