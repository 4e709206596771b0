package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/meur/gamedocs/internal/models"
)

// File names of the static tables inside a data directory.
const (
	ObjectsFile = "objects.json"
	ItemsFile   = "items.json"
	NPCsFile    = "npcs.json"
	TagsFile    = "tags.json"
	RecipesFile = "recipes.json"
	SpellsFile  = "spells.json"
	RulesFile   = "unlockRules.json"
)

// LoadDir reads the static tables from fsys. Missing collection files are
// empty collections; a missing rules file means no unlock type can be
// rendered.
func LoadDir(fsys fs.FS) (Data, error) {
	var d Data
	tables := []struct {
		file string
		dst  *[]models.Record
	}{
		{ObjectsFile, &d.Objects},
		{ItemsFile, &d.Items},
		{NPCsFile, &d.NPCs},
		{TagsFile, &d.Tags},
		{RecipesFile, &d.Recipes},
		{SpellsFile, &d.Spells},
	}
	for _, table := range tables {
		if err := readJSON(fsys, table.file, table.dst); err != nil {
			return Data{}, err
		}
	}
	if err := readJSON(fsys, RulesFile, &d.Rules); err != nil {
		return Data{}, err
	}
	return d, nil
}

// Load reads the static tables from fsys and builds the catalog.
func Load(fsys fs.FS) (*Catalog, error) {
	d, err := LoadDir(fsys)
	if err != nil {
		return nil, err
	}
	return New(d)
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
