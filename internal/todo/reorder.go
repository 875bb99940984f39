package todo

import (
	"slices"

	"github.com/Makepad-fr/tada/internal/model"
)

// move relocates the element at from to index to. Bounds are the caller's job.
func move[T any](s []T, from, to int) []T {
	v := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, v)
}

func inRange(n, i int) bool { return i >= 0 && i < n }

// Reorder moves the item at position from to position to within group's view
// (see GroupItems). Items of other groups keep their slots in the list.
func (s *Store) Reorder(group string, from, to int) error {
	var slots []int
	for i, it := range s.items {
		if it.Group == group {
			slots = append(slots, i)
		}
	}
	if from == to || !inRange(len(slots), from) || !inRange(len(slots), to) {
		return nil
	}

	view := make([]model.Item, len(slots))
	for i, at := range slots {
		view[i] = s.items[at]
	}
	view = move(view, from, to)
	for i, at := range slots {
		s.items[at] = view[i]
	}
	return s.persist()
}

// ReorderGroups moves a group within the registry.
func (s *Store) ReorderGroups(from, to int) error {
	if from == to || !inRange(len(s.groups), from) || !inRange(len(s.groups), to) {
		return nil
	}
	s.groups = move(s.groups, from, to)
	return s.persist()
}
