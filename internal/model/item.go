package model

import "strings"

// DefaultGroup is the implicit group every list starts with. It cannot be deleted.
const DefaultGroup = "General"

// Item is the domain model for a todo entry.
// ID is the creation time in Unix milliseconds and never changes.
type Item struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Group     string `json:"group,omitempty"`
}

// GroupName returns the item's trimmed group, falling back to DefaultGroup
// when it is blank.
func (it Item) GroupName() string {
	g := strings.TrimSpace(it.Group)
	if g == "" {
		return DefaultGroup
	}
	return g
}
