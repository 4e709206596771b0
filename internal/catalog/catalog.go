// Package catalog holds the static game-data collections and answers
// lookups against them.
package catalog

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/meur/gamedocs/internal/models"
	"github.com/meur/gamedocs/internal/query"
)

var ErrUnknownUnlockType = models.ErrUnknownUnlockType

// versionSpace namespaces catalog versions.
var versionSpace = uuid.MustParse("6f1c9a52-3d0e-4d6b-9a57-2b8e0f4c7d11")

// Data is the raw input of a catalog, in any order.
type Data struct {
	Objects []models.Record
	Items   []models.Record
	NPCs    []models.Record
	Tags    []models.Record
	Recipes []models.Record
	Spells  []models.Record
	Rules   models.LinkRules
}

// Catalog is an immutable, sorted view of the game data. It is safe for
// concurrent use.
type Catalog struct {
	collections map[models.Category][]models.Record
	rules       models.LinkRules
	version     string
}

// Entry is a record together with the collection it came from.
type Entry struct {
	Category models.Category
	Record   models.Record
}

// New sorts copies of every collection and checks the link rules.
func New(d Data) (*Catalog, error) {
	rules := make(models.LinkRules, len(d.Rules))
	for t, rule := range d.Rules {
		if _, err := t.MarshalText(); err != nil {
			return nil, err
		}
		if _, err := rule.Page.Page(); err != nil {
			return nil, fmt.Errorf("rule for %s: %w", t, err)
		}
		rules[t] = rule
	}

	c := &Catalog{
		collections: map[models.Category][]models.Record{
			models.CategoryObject: Sort(d.Objects),
			models.CategoryItem:   Sort(d.Items),
			models.CategoryNPC:    Sort(d.NPCs),
			models.CategoryTag:    Sort(d.Tags),
			models.CategoryRecipe: Sort(d.Recipes),
			models.CategorySpell:  Sort(d.Spells),
		},
		rules: rules,
	}

	version, err := c.computeVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to compute catalog version: %w", err)
	}
	c.version = version
	return c, nil
}

func (c *Catalog) computeVersion() (string, error) {
	content, err := json.Marshal(c.Data())
	if err != nil {
		return "", err
	}
	return uuid.NewSHA1(versionSpace, content).String(), nil
}

// Version identifies the catalog content; equal data gives equal versions.
func (c *Catalog) Version() string {
	return c.version
}

// Data returns a copy of the sorted collections and rules.
func (c *Catalog) Data() Data {
	rules := make(models.LinkRules, len(c.rules))
	for t, rule := range c.rules {
		rules[t] = rule
	}
	return Data{
		Objects: c.Collection(models.CategoryObject),
		Items:   c.Collection(models.CategoryItem),
		NPCs:    c.Collection(models.CategoryNPC),
		Tags:    c.Collection(models.CategoryTag),
		Recipes: c.Collection(models.CategoryRecipe),
		Spells:  c.Collection(models.CategorySpell),
		Rules:   rules,
	}
}

// Collection returns a copy of the sorted records of one category.
func (c *Catalog) Collection(cat models.Category) []models.Record {
	return slices.Clone(c.collections[cat])
}

// Find looks up id in the given category.
func (c *Catalog) Find(cat models.Category, id string) models.Record {
	return FindByID(c.collections[cat], id)
}

func (c *Catalog) FindObject(id string) models.Record { return c.Find(models.CategoryObject, id) }
func (c *Catalog) FindItem(id string) models.Record   { return c.Find(models.CategoryItem, id) }
func (c *Catalog) FindNPC(id string) models.Record    { return c.Find(models.CategoryNPC, id) }
func (c *Catalog) FindTag(id string) models.Record    { return c.Find(models.CategoryTag, id) }
func (c *Catalog) FindRecipe(id string) models.Record { return c.Find(models.CategoryRecipe, id) }
func (c *Catalog) FindSpell(id string) models.Record  { return c.Find(models.CategorySpell, id) }

// ObjectForPage looks up the object named by the page's id parameter.
func (c *Catalog) ObjectForPage(search string) models.Record {
	return c.FindObject(query.ID(search))
}

// ItemForPage looks up the item named by the page's id parameter.
func (c *Catalog) ItemForPage(search string) models.Record {
	return c.FindItem(query.ID(search))
}

// NPCForPage looks up the NPC named by the page's id parameter.
func (c *Catalog) NPCForPage(search string) models.Record {
	return c.FindNPC(query.ID(search))
}

// TagForPage looks up the tag named by the page's id parameter.
func (c *Catalog) TagForPage(search string) models.Record {
	return c.FindTag(query.ID(search))
}

// Rule returns the link rule for an unlock type.
func (c *Catalog) Rule(t models.UnlockType) (models.LinkRule, error) {
	rule, ok := c.rules[t]
	if !ok {
		return models.LinkRule{}, fmt.Errorf("%w: %s", ErrUnknownUnlockType, t)
	}
	return rule, nil
}

// Tagged returns the items and objects carrying the tag, items first.
func (c *Catalog) Tagged(tag string) []Entry {
	var entries []Entry
	for _, cat := range []models.Category{models.CategoryItem, models.CategoryObject} {
		for _, r := range c.collections[cat] {
			if r.HasTag(tag) {
				entries = append(entries, Entry{Category: cat, Record: r})
			}
		}
	}
	return entries
}
