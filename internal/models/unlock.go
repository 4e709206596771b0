package models

import (
	"errors"
	"fmt"
)

var ErrUnknownUnlockType = errors.New("unknown unlock type")

// UnlockType is the trigger that unlocks a construction or recipe.
type UnlockType int

const (
	UnlockAcquire   UnlockType = iota + 1 // obtaining an item
	UnlockConstruct                       // building an object
	UnlockGather                          // gathering from an object
	UnlockCraft                           // crafting a recipe
)

var unlockTypeNames = map[UnlockType]string{
	UnlockAcquire:   "item",
	UnlockConstruct: "construction",
	UnlockGather:    "gather",
	UnlockCraft:     "recipe",
}

// ParseUnlockType maps the data name of a trigger ("item", "construction",
// "gather", "recipe") to its value.
func ParseUnlockType(s string) (UnlockType, error) {
	for t, name := range unlockTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnlockType, s)
}

func (t UnlockType) String() string {
	if name, ok := unlockTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UnlockType(%d)", int(t))
}

func (t UnlockType) MarshalText() ([]byte, error) {
	name, ok := unlockTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnlockType, int(t))
	}
	return []byte(name), nil
}

func (t *UnlockType) UnmarshalText(text []byte) error {
	parsed, err := ParseUnlockType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Unlock describes what must be obtained or done to unlock something.
type Unlock struct {
	Type     UnlockType `json:"type"`
	SourceID string     `json:"sourceID"`
	Chance   float64    `json:"chance,omitempty"`
}

// Certain reports whether the trigger always unlocks.
func (u Unlock) Certain() bool {
	return u.Chance <= 0 || u.Chance >= 1
}

// LinkRule says which detail page an unlock type links to and the text
// around the link.
type LinkRule struct {
	Page   Category `json:"page"`
	Prefix string   `json:"prefix"`
	Suffix string   `json:"suffix"`
}

// LinkRules maps each unlock type to its rule.
type LinkRules map[UnlockType]LinkRule
