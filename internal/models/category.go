package models

import (
	"errors"
	"fmt"

	"github.com/meur/gamedocs/internal/query"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoDetailPage    = errors.New("category has no detail page")
)

// Category selects a collection and the detail page its records link to.
type Category int

const (
	CategoryObject Category = iota + 1
	CategoryItem
	CategoryNPC
	CategoryTag
	CategoryRecipe
	CategorySpell
)

var categoryNames = map[Category]string{
	CategoryObject: "object",
	CategoryItem:   "item",
	CategoryNPC:    "npc",
	CategoryTag:    "tag",
	CategoryRecipe: "recipe",
	CategorySpell:  "spell",
}

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{CategoryObject, CategoryItem, CategoryNPC, CategoryTag, CategoryRecipe, CategorySpell}
}

// ParseCategory maps a category name ("item", "npc", ...) to its value.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Page returns the detail page name for the category, e.g. "item" for
// item.html.
func (c Category) Page() (string, error) {
	switch c {
	case CategoryObject, CategoryItem, CategoryNPC, CategoryTag:
		return categoryNames[c], nil
	case CategoryRecipe, CategorySpell:
		return "", fmt.Errorf("%w: %s", ErrNoDetailPage, c)
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
}

// DetailURL is the relative address of the record's detail page.
func (c Category) DetailURL(id string) (string, error) {
	page, err := c.Page()
	if err != nil {
		return "", err
	}
	return page + ".html?id=" + query.Escape(id), nil
}

// MarshalText encodes the category by name, as in the rules table.
func (c Category) MarshalText() ([]byte, error) {
	name, ok := categoryNames[c]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(name), nil
}

// UnmarshalText accepts the names listed by Categories.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
