package catalog

import "github.com/meur/gamedocs/internal/models"

// FindByCustom returns the first record whose keyName field equals key, or
// the zero Record.
func FindByCustom(collection []models.Record, key, keyName string) models.Record {
	for _, entry := range collection {
		if v, ok := entry.Field(keyName); ok && v == key {
			return entry
		}
	}
	return models.Record{}
}

// FindByID returns the first record with the given ID, or the zero Record.
func FindByID(collection []models.Record, id string) models.Record {
	return FindByCustom(collection, id, "id")
}
