// Package render builds the HTML fragments that link game records to their
// detail pages.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/meur/gamedocs/internal/catalog"
	"github.com/meur/gamedocs/internal/format"
	"github.com/meur/gamedocs/internal/models"
	"github.com/meur/gamedocs/internal/query"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var fragments = template.Must(template.New("fragments").ParseFS(templateFS, "templates/*.gohtml"))

// Glyphs prefixed to text-only links.
const (
	GlyphObject   template.HTML = "&#9820;"
	GlyphNPC      template.HTML = "&#9822;"
	GlyphGear     template.HTML = "&#9876;"
	GlyphMaterial template.HTML = "&#9752;"
	GlyphRecipe   template.HTML = "&#9879;"
	GlyphSpell    template.HTML = "&#9889;"
)

// Renderer turns records into fragments. Output is escaped unless the
// renderer was built WithTrustedData. A Renderer is safe for concurrent use.
type Renderer struct {
	cat     *catalog.Catalog
	trusted bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTrustedData emits names, prefixes and suffixes verbatim, for data
// sources that already contain sanitized HTML. URLs are still normalized.
func WithTrustedData() Option {
	return func(r *Renderer) {
		r.trusted = true
	}
}

// New creates a renderer over cat.
func New(cat *catalog.Catalog, opts ...Option) *Renderer {
	r := &Renderer{cat: cat}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog the renderer resolves links against.
func (r *Renderer) Catalog() *catalog.Catalog {
	return r.cat
}

type linkData struct {
	Href  any
	Name  any
	Image string
	Glyph template.HTML
}

type unlockData struct {
	Prefix any
	Link   template.HTML
	Suffix any
	Chance string
}

func (r *Renderer) execute(name string, data any) template.HTML {
	var b strings.Builder
	if err := fragments.ExecuteTemplate(&b, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		return ""
	}
	return template.HTML(b.String())
}

func (r *Renderer) text(s string) any {
	if r.trusted {
		return template.HTML(s)
	}
	return s
}

// href builds the detail address for id on the given page. The id is
// escaped the way query.Parse decodes it, in both modes.
func (r *Renderer) href(page, id string) any {
	addr := page + ".html?id=" + query.Escape(id)
	if r.trusted {
		return template.URL(addr)
	}
	return addr
}

func (r *Renderer) data(page string, rec models.Record) linkData {
	return linkData{
		Href:  r.href(page, rec.ID),
		Name:  r.text(rec.Name),
		Image: rec.Image,
	}
}

// ImageNode is the record's image, images/<image>.png.
func (r *Renderer) ImageNode(rec models.Record) template.HTML {
	return r.execute("image", rec.Image)
}

// ObjectLink links to the object page with the name above the image.
func (r *Renderer) ObjectLink(rec models.Record) template.HTML {
	return r.execute("imageLink", r.data("object", rec))
}

// TextOnlyObjectLink links to the object page with a glyph instead of the
// image.
func (r *Renderer) TextOnlyObjectLink(rec models.Record) template.HTML {
	d := r.data("object", rec)
	d.Glyph = GlyphObject
	return r.execute("textLink", d)
}

// NPCLink links to the NPC page with the name above the image.
func (r *Renderer) NPCLink(rec models.Record) template.HTML {
	return r.execute("imageLink", r.data("npc", rec))
}

// TextOnlyNPCLink links to the NPC page with a glyph instead of the image.
func (r *Renderer) TextOnlyNPCLink(rec models.Record) template.HTML {
	d := r.data("npc", rec)
	d.Glyph = GlyphNPC
	return r.execute("textLink", d)
}

// ItemLink links to the item page with the image before the name.
func (r *Renderer) ItemLink(rec models.Record) template.HTML {
	return r.execute("itemLink", r.data("item", rec))
}

// TextOnlyItemLink marks gear and other items with different glyphs.
func (r *Renderer) TextOnlyItemLink(rec models.Record) template.HTML {
	d := r.data("item", rec)
	d.Glyph = GlyphMaterial
	if models.IsGear(rec) {
		d.Glyph = GlyphGear
	}
	return r.execute("textLink", d)
}

// TagLink links to the tag page by name. Tags have no image.
func (r *Renderer) TagLink(rec models.Record) template.HTML {
	return r.execute("tagLink", r.data("tag", rec))
}

// TextOnlyRecipeLink names a recipe by ID. Recipes have no page to link to.
func (r *Renderer) TextOnlyRecipeLink(rec models.Record) template.HTML {
	return r.execute("text", linkData{Glyph: GlyphRecipe, Name: r.text(rec.ID)})
}

// TextOnlySpellLink names a spell. Spells have no page to link to.
func (r *Renderer) TextOnlySpellLink(rec models.Record) template.HTML {
	return r.execute("text", linkData{Glyph: GlyphSpell, Name: r.text(rec.Name)})
}

// Link renders the image link of a record in the given category.
func (r *Renderer) Link(cat models.Category, rec models.Record) (template.HTML, error) {
	page, err := cat.Page()
	if err != nil {
		return "", err
	}
	return r.link(cat, r.data(page, rec)), nil
}

func (r *Renderer) link(cat models.Category, d linkData) template.HTML {
	switch cat {
	case models.CategoryItem:
		return r.execute("itemLink", d)
	case models.CategoryTag:
		return r.execute("tagLink", d)
	default:
		return r.execute("imageLink", d)
	}
}

// TextLink renders the text-only form of a record in the given category.
func (r *Renderer) TextLink(cat models.Category, rec models.Record) (template.HTML, error) {
	switch cat {
	case models.CategoryObject:
		return r.TextOnlyObjectLink(rec), nil
	case models.CategoryItem:
		return r.TextOnlyItemLink(rec), nil
	case models.CategoryNPC:
		return r.TextOnlyNPCLink(rec), nil
	case models.CategoryTag:
		return r.TagLink(rec), nil
	case models.CategoryRecipe:
		return r.TextOnlyRecipeLink(rec), nil
	case models.CategorySpell:
		return r.TextOnlySpellLink(rec), nil
	}
	return "", fmt.Errorf("%w: %d", models.ErrUnknownCategory, int(cat))
}

// UnlockListItem renders one "required to unlock" entry. The unlock type
// picks the detail page and the text around the link; types without a rule
// are an error.
func (r *Renderer) UnlockListItem(lock models.Unlock) (template.HTML, error) {
	rule, err := r.cat.Rule(lock.Type)
	if err != nil {
		return "", fmt.Errorf("render unlock from %q: %w", lock.SourceID, err)
	}
	page, err := rule.Page.Page()
	if err != nil {
		return "", fmt.Errorf("render unlock from %q: %w", lock.SourceID, err)
	}

	d := r.data(page, r.cat.Find(rule.Page, lock.SourceID))
	d.Href = r.href(page, lock.SourceID)

	u := unlockData{
		Prefix: r.text(rule.Prefix),
		Link:   r.link(rule.Page, d),
		Suffix: r.text(rule.Suffix),
	}
	if !lock.Certain() {
		u.Chance = chancePercent(lock.Chance)
	}
	return r.execute("unlock", u), nil
}

// chancePercent rounds an uncertain chance to a whole percent in [1, 99].
func chancePercent(chance float64) string {
	p := min(max(math.Floor(chance*100+0.5), 1), 99)
	return strconv.Itoa(int(p)) + "%"
}

// UnlockList renders every unlock as a list. No unlocks give an empty
// fragment.
func (r *Renderer) UnlockList(locks []models.Unlock) (template.HTML, error) {
	if len(locks) == 0 {
		return "", nil
	}
	items := make([]template.HTML, 0, len(locks))
	for _, lock := range locks {
		item, err := r.UnlockListItem(lock)
		if err != nil {
			return "", err
		}
		items = append(items, item)
	}
	return r.execute("unlockList", items), nil
}

// TagList links each tag ID, comma separated. Tags missing from the catalog
// are shown by ID.
func (r *Renderer) TagList(tags []string) template.HTML {
	links := make([]template.HTML, 0, len(tags))
	for _, id := range tags {
		tag := r.cat.FindTag(id)
		if tag.IsZero() {
			tag = models.Record{ID: id, Name: id}
		}
		links = append(links, r.TagLink(tag))
	}
	return format.List(links)
}
