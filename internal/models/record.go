package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the variant of a record.
type Kind int

const (
	KindStandard Kind = iota
	KindGear
)

// Record is one game-data entity: an object, item, NPC, tag, recipe or spell.
// The zero Record is the placeholder returned when a lookup finds nothing.
type Record struct {
	ID               string             `json:"id"`
	Name             string             `json:"name,omitempty"`
	Image            string             `json:"image,omitempty"`
	Kind             Kind               `json:"-"`
	GearSlot         *int               `json:"-"` // nil when the slot was null or not numeric
	Tags             []string           `json:"tags,omitempty"`
	UnlockedBy       []Unlock           `json:"unlockedBy,omitempty"`
	ConstructionTime int64              `json:"constructionTime,omitempty"` // ms
	Stats            map[string]float64 `json:"stats,omitempty"`            // multiplicative scalars
	Fields           map[string]any     `json:"-"`                          // any other field from the source data
}

var knownFields = map[string]bool{
	"id":               true,
	"name":             true,
	"image":            true,
	"gearSlot":         true,
	"tags":             true,
	"unlockedBy":       true,
	"constructionTime": true,
	"stats":            true,
}

// IsGear reports whether r is an equippable item.
func IsGear(r Record) bool {
	return r.Kind == KindGear
}

// IsZero reports whether r is the empty placeholder.
func (r Record) IsZero() bool {
	return r.ID == "" && r.Name == "" && r.Image == "" && len(r.Fields) == 0
}

// SortKey is the name, or the ID for records without one.
func (r Record) SortKey() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// HasTag reports whether the record carries the given tag ID.
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Field returns the string form of the named field.
func (r Record) Field(name string) (string, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "name":
		return r.Name, r.Name != ""
	case "image":
		return r.Image, r.Image != ""
	case "gearSlot":
		if r.Kind != KindGear {
			return "", false
		}
		if r.GearSlot == nil {
			return "", true
		}
		return strconv.Itoa(*r.GearSlot), true
	case "constructionTime":
		return strconv.FormatInt(r.ConstructionTime, 10), r.ConstructionTime != 0
	}
	v, ok := r.Fields[name]
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", true
	default:
		return fmt.Sprint(v), true
	}
}

// UnmarshalJSON decodes a record. The presence of a gearSlot key marks the
// record as gear, whatever its value.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if slot, ok := raw["gearSlot"]; ok {
		p.Kind = KindGear
		var n int
		if err := json.Unmarshal(slot, &n); err == nil && string(slot) != "null" {
			p.GearSlot = &n
		}
	}

	for key, value := range raw {
		if knownFields[key] {
			continue
		}
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		if p.Fields == nil {
			p.Fields = make(map[string]any)
		}
		p.Fields[key] = v
	}

	*r = Record(p)
	return nil
}

// MarshalJSON flattens Fields next to the known keys.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+8)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["id"] = r.ID
	if r.Name != "" {
		out["name"] = r.Name
	}
	if r.Image != "" {
		out["image"] = r.Image
	}
	if r.Kind == KindGear {
		out["gearSlot"] = r.GearSlot
	}
	if len(r.Tags) > 0 {
		out["tags"] = r.Tags
	}
	if len(r.UnlockedBy) > 0 {
		out["unlockedBy"] = r.UnlockedBy
	}
	if r.ConstructionTime != 0 {
		out["constructionTime"] = r.ConstructionTime
	}
	if len(r.Stats) > 0 {
		out["stats"] = r.Stats
	}
	return json.Marshal(out)
}
