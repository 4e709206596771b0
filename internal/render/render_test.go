package render

import (
	"errors"
	"html"
	"html/template"
	"os"
	"strings"
	"testing"

	"github.com/meur/gamedocs/internal/catalog"
	"github.com/meur/gamedocs/internal/models"
)

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	cat, err := catalog.New(catalog.Data{
		Objects: []models.Record{{ID: "tree", Name: "Tree", Image: "tree"}},
		Items: []models.Record{
			{ID: "log", Name: "Log", Image: "log"},
			{ID: "axe", Name: "Axe", Image: "axe", Kind: models.KindGear},
		},
		NPCs:    []models.Record{{ID: "wolf", Name: "Wolf", Image: "wolf"}},
		Tags:    []models.Record{{ID: "wood", Name: "Wood"}, {ID: "fuel", Name: "Fuel"}},
		Recipes: []models.Record{{ID: "plank"}},
		Spells:  []models.Record{{ID: "fire", Name: "Fireball"}},
		Rules: models.LinkRules{
			models.UnlockAcquire:   {Page: models.CategoryItem, Prefix: "Acquire "},
			models.UnlockConstruct: {Page: models.CategoryObject, Prefix: "Construct ", Suffix: " nearby"},
			models.UnlockGather:    {Page: models.CategoryObject, Prefix: "Gather from "},
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(cat, opts...)
}

func TestLinks(t *testing.T) {
	r := newTestRenderer(t)
	c := r.Catalog()

	tests := []struct {
		name string
		got  template.HTML
		want template.HTML
	}{
		{"image", r.ImageNode(c.FindItem("log")), `<img src="images/log.png"/>`},
		{"object", r.ObjectLink(c.FindObject("tree")), `<a href="object.html?id=tree">Tree<br><img src="images/tree.png"/></a>`},
		{"object text", r.TextOnlyObjectLink(c.FindObject("tree")), `<a href="object.html?id=tree">&#9820; Tree</a>`},
		{"npc", r.NPCLink(c.FindNPC("wolf")), `<a href="npc.html?id=wolf">Wolf<br><img src="images/wolf.png"/></a>`},
		{"npc text", r.TextOnlyNPCLink(c.FindNPC("wolf")), `<a href="npc.html?id=wolf">&#9822; Wolf</a>`},
		{"item", r.ItemLink(c.FindItem("log")), `<a href="item.html?id=log"><img src="images/log.png"/> Log</a>`},
		{"item text", r.TextOnlyItemLink(c.FindItem("log")), `<a href="item.html?id=log">&#9752; Log</a>`},
		{"gear text", r.TextOnlyItemLink(c.FindItem("axe")), `<a href="item.html?id=axe">&#9876; Axe</a>`},
		{"tag", r.TagLink(c.FindTag("wood")), `<a href="tag.html?id=wood">Wood</a>`},
		{"recipe", r.TextOnlyRecipeLink(c.FindRecipe("plank")), `&#9879; plank`},
		{"spell", r.TextOnlySpellLink(c.FindSpell("fire")), `&#9889; Fireball`},
		{"tag list", r.TagList([]string{"wood", "fuel"}), `<a href="tag.html?id=wood">Wood</a>, <a href="tag.html?id=fuel">Fuel</a>`},
		{"empty tag list", r.TagList(nil), ``},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s:\n got %s\nwant %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestPlaceholderRendersBlank(t *testing.T) {
	r := newTestRenderer(t)
	missing := r.Catalog().FindObject("nope")

	if got, want := r.TextOnlyObjectLink(missing), template.HTML(`<a href="object.html?id=">&#9820; </a>`); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if got, want := r.ItemLink(missing), template.HTML(`<a href="item.html?id="><img src="images/.png"/> </a>`); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestEscaping(t *testing.T) {
	rec := models.Record{ID: "<x>", Name: "Fish & <Chips>", Image: "fish"}

	escaped := newTestRenderer(t).TextOnlyItemLink(rec)
	if !strings.Contains(string(escaped), "Fish &amp; &lt;Chips&gt;") {
		t.Errorf("name not escaped: %s", escaped)
	}
	if strings.Contains(string(escaped), "<x>") || strings.Contains(string(escaped), "<Chips>") {
		t.Errorf("raw markup leaked: %s", escaped)
	}

	trusted := newTestRenderer(t, WithTrustedData()).TextOnlyItemLink(models.Record{ID: "log", Name: "<b>Log</b>"})
	if want := template.HTML(`<a href="item.html?id=log">&#9752; <b>Log</b></a>`); trusted != want {
		t.Errorf("trusted = %s, want %s", trusted, want)
	}
}

func TestUnlockListItem(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name string
		lock models.Unlock
		want template.HTML
	}{
		{
			"item",
			models.Unlock{Type: models.UnlockAcquire, SourceID: "log"},
			`<li>Acquire <a href="item.html?id=log"><img src="images/log.png"/> Log</a></li>`,
		},
		{
			"object with suffix",
			models.Unlock{Type: models.UnlockConstruct, SourceID: "tree"},
			`<li>Construct <a href="object.html?id=tree">Tree<br><img src="images/tree.png"/></a> nearby</li>`,
		},
		{
			"chance",
			models.Unlock{Type: models.UnlockGather, SourceID: "tree", Chance: 0.25},
			`<li>Gather from <a href="object.html?id=tree">Tree<br><img src="images/tree.png"/></a> (25% chance)</li>`,
		},
		{
			"missing source keeps address",
			models.Unlock{Type: models.UnlockAcquire, SourceID: "ghost"},
			`<li>Acquire <a href="item.html?id=ghost"><img src="images/.png"/> </a></li>`,
		},
	}

	for _, tt := range tests {
		got, err := r.UnlockListItem(tt.lock)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s:\n got %s\nwant %s", tt.name, got, tt.want)
		}
	}
}

func TestUnlockListItemUnknownType(t *testing.T) {
	r := newTestRenderer(t)
	for _, typ := range []models.UnlockType{models.UnlockCraft, models.UnlockType(99)} {
		_, err := r.UnlockListItem(models.Unlock{Type: typ, SourceID: "log"})
		if !errors.Is(err, catalog.ErrUnknownUnlockType) {
			t.Errorf("type %v: err = %v, want ErrUnknownUnlockType", typ, err)
		}
	}

	_, err := r.UnlockList([]models.Unlock{{Type: models.UnlockAcquire, SourceID: "log"}, {Type: models.UnlockCraft}})
	if !errors.Is(err, catalog.ErrUnknownUnlockType) {
		t.Errorf("list err = %v, want ErrUnknownUnlockType", err)
	}
}

func TestUnlockList(t *testing.T) {
	r := newTestRenderer(t)
	got, err := r.UnlockList([]models.Unlock{{Type: models.UnlockAcquire, SourceID: "axe"}})
	if err != nil {
		t.Fatalf("UnlockList: %v", err)
	}
	want := template.HTML(`<ul><li>Acquire <a href="item.html?id=axe"><img src="images/axe.png"/> Axe</a></li></ul>`)
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	if empty, err := r.UnlockList(nil); err != nil || empty != "" {
		t.Fatalf("empty list = %q, %v", empty, err)
	}
}

func TestLinkDispatch(t *testing.T) {
	r := newTestRenderer(t)
	c := r.Catalog()

	got, err := r.Link(models.CategoryNPC, c.FindNPC("wolf"))
	if err != nil || got != r.NPCLink(c.FindNPC("wolf")) {
		t.Fatalf("Link(npc) = %s, %v", got, err)
	}
	if _, err := r.Link(models.CategorySpell, c.FindSpell("fire")); !errors.Is(err, models.ErrNoDetailPage) {
		t.Fatalf("Link(spell) err = %v", err)
	}

	text, err := r.TextLink(models.CategorySpell, c.FindSpell("fire"))
	if err != nil || text != `&#9889; Fireball` {
		t.Fatalf("TextLink(spell) = %s, %v", text, err)
	}
	if _, err := r.TextLink(models.Category(0), models.Record{}); !errors.Is(err, models.ErrUnknownCategory) {
		t.Fatalf("TextLink(0) err = %v", err)
	}
}

func TestSeedTablesRender(t *testing.T) {
	cat, err := catalog.Load(os.DirFS("../../seeds"))
	if err != nil {
		t.Fatalf("load seeds: %v", err)
	}
	r := New(cat)

	for _, c := range models.Categories() {
		for _, rec := range cat.Collection(c) {
			if _, err := r.TextLink(c, rec); err != nil {
				t.Errorf("%s %s: %v", c, rec.ID, err)
			}
			if _, err := r.UnlockList(rec.UnlockedBy); err != nil {
				t.Errorf("%s %s unlocks: %v", c, rec.ID, err)
			}
		}
	}

	got, err := r.UnlockListItem(cat.FindObject("forge").UnlockedBy[1])
	if err != nil {
		t.Fatalf("forge unlock: %v", err)
	}
	want := template.HTML(`<li>Gather from <a href="object.html?id=rock">Rock<br><img src="images/rock.png"/></a> (10% chance)</li>`)
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// hrefOf returns the decoded address of the first anchor in a fragment.
func hrefOf(t *testing.T, frag template.HTML) string {
	t.Helper()
	_, rest, ok := strings.Cut(string(frag), `href="`)
	if !ok {
		t.Fatalf("no href in %s", frag)
	}
	addr, _, _ := strings.Cut(rest, `"`)
	return html.UnescapeString(addr)
}

func TestLinksRoundTripThroughPageLookup(t *testing.T) {
	ids := []string{"iron ore", "a+b", "x&y=z", "50%", "#1?", "éclair", "<x>"}

	var recs []models.Record
	for _, id := range ids {
		recs = append(recs, models.Record{ID: id, Name: id, Image: "img"})
	}
	cat, err := catalog.New(catalog.Data{
		Objects: recs, Items: recs, NPCs: recs, Tags: recs,
		Rules: models.LinkRules{
			models.UnlockAcquire: {Page: models.CategoryItem, Prefix: "Acquire "},
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	for _, opts := range [][]Option{nil, {WithTrustedData()}} {
		r := New(cat, opts...)
		for _, id := range ids {
			unlock, err := r.UnlockListItem(models.Unlock{Type: models.UnlockAcquire, SourceID: id})
			if err != nil {
				t.Fatalf("unlock %q: %v", id, err)
			}
			links := []struct {
				kind   string
				frag   template.HTML
				lookup func(string) models.Record
			}{
				{"object", r.ObjectLink(cat.FindObject(id)), cat.ObjectForPage},
				{"object text", r.TextOnlyObjectLink(cat.FindObject(id)), cat.ObjectForPage},
				{"npc", r.NPCLink(cat.FindNPC(id)), cat.NPCForPage},
				{"npc text", r.TextOnlyNPCLink(cat.FindNPC(id)), cat.NPCForPage},
				{"item", r.ItemLink(cat.FindItem(id)), cat.ItemForPage},
				{"item text", r.TextOnlyItemLink(cat.FindItem(id)), cat.ItemForPage},
				{"tag", r.TagLink(cat.FindTag(id)), cat.TagForPage},
				{"unlock", unlock, cat.ItemForPage},
			}
			for _, l := range links {
				addr := hrefOf(t, l.frag)
				if got := l.lookup(addr); got.ID != id {
					t.Errorf("%s %q: %s resolves to %q", l.kind, id, addr, got.ID)
				}
			}
		}
	}
}

func TestUnlockChanceStaysBetweenNeverAndAlways(t *testing.T) {
	r := newTestRenderer(t)
	tests := []struct {
		chance float64
		want   string
	}{
		{0.25, " (25% chance)"},
		{0.996, " (99% chance)"},
		{0.001, " (1% chance)"},
		{1, ""},
		{0, ""},
	}

	for _, tt := range tests {
		got, err := r.UnlockListItem(models.Unlock{Type: models.UnlockAcquire, SourceID: "log", Chance: tt.chance})
		if err != nil {
			t.Fatalf("chance %v: %v", tt.chance, err)
		}
		want := template.HTML(`<li>Acquire <a href="item.html?id=log"><img src="images/log.png"/> Log</a>` + tt.want + `</li>`)
		if got != want {
			t.Errorf("chance %v:\n got %s\nwant %s", tt.chance, got, want)
		}
	}
}

func TestUnlockResolvesInRulePageCollection(t *testing.T) {
	cat, err := catalog.New(catalog.Data{
		NPCs: []models.Record{{ID: "wolf", Name: "Wolf", Image: "wolf"}},
		Tags: []models.Record{{ID: "wood", Name: "Wood"}},
		Rules: models.LinkRules{
			models.UnlockCraft:  {Page: models.CategoryNPC, Prefix: "Tame "},
			models.UnlockGather: {Page: models.CategoryTag, Prefix: "Gather "},
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	r := New(cat)

	tests := []struct {
		lock models.Unlock
		want template.HTML
	}{
		{models.Unlock{Type: models.UnlockCraft, SourceID: "wolf"}, `<li>Tame <a href="npc.html?id=wolf">Wolf<br><img src="images/wolf.png"/></a></li>`},
		{models.Unlock{Type: models.UnlockGather, SourceID: "wood"}, `<li>Gather <a href="tag.html?id=wood">Wood</a></li>`},
	}
	for _, tt := range tests {
		got, err := r.UnlockListItem(tt.lock)
		if err != nil {
			t.Fatalf("%v: %v", tt.lock.Type, err)
		}
		if got != tt.want {
			t.Errorf("%v:\n got %s\nwant %s", tt.lock.Type, got, tt.want)
		}
	}
}
