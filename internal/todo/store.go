// Package todo is the persisted, groupable to-do list.
//
// Every effective mutation writes the whole state (items, group registry and
// collapse flags) back through the store.KV port. Invalid input such as blank
// text, unknown ids or out-of-range indexes is a no-op, never an error; the only
// errors are persistence failures, reported after the in-memory state changed.
//
// A Store is not safe for concurrent use. The CLI and the TUI drive it from a
// single goroutine, one user event at a time.
package todo

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

type Store struct {
	kv     store.KV
	log    *zap.Logger
	now    func() time.Time
	policy DeletePolicy

	items     []model.Item
	groups    []string
	collapsed map[string]bool
	selected  string
	lastID    int64
}

// New loads state from kv. Missing keys start empty; corrupt keys are logged
// and replaced by their defaults.
func New(kv store.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:        kv,
		log:       zap.NewNop(),
		now:       time.Now,
		collapsed: map[string]bool{},
		selected:  model.DefaultGroup,
	}
	for _, o := range opts {
		o(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	items, err := loadKey(s, store.KeyTodos, []model.Item{})
	if err != nil {
		return err
	}
	groups, err := loadKey(s, store.KeyGroups, []string{})
	if err != nil {
		return err
	}
	collapsed, err := loadKey(s, store.KeyCollapsed, map[string]bool{})
	if err != nil {
		return err
	}

	s.groups = cleanGroups(groups)
	s.items = make([]model.Item, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			s.log.Warn("dropping item with duplicate id", zap.Int64("id", it.ID))
			continue
		}
		seen[it.ID] = true
		it.Group = it.GroupName()
		s.registerGroup(it.Group)
		s.items = append(s.items, it)
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}

	if collapsed == nil {
		collapsed = map[string]bool{}
	}
	s.collapsed = collapsed
	s.log.Debug("todo store loaded",
		zap.Int("items", len(s.items)),
		zap.Int("groups", len(s.groups)))
	return nil
}

// loadKey decodes key, falling back to def when it is absent or corrupt.
func loadKey[T any](s *Store, key string, def T) (T, error) {
	var v T
	found, err := store.LoadJSON(s.kv, key, &v)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		s.log.Warn("corrupt stored value, starting from defaults",
			zap.String("key", key), zap.Error(err))
		return def, nil
	case err != nil:
		return def, fmt.Errorf("load %s: %w", key, err)
	case !found:
		return def, nil
	}
	return v, nil
}

// cleanGroups drops blanks and duplicates, keeping first occurrence order.
func cleanGroups(in []string) []string {
	out := make([]string, 0, len(in))
	for _, g := range in {
		g = strings.TrimSpace(g)
		if g == "" || slices.Contains(out, g) {
			continue
		}
		out = append(out, g)
	}
	if !slices.Contains(out, model.DefaultGroup) {
		out = append([]string{model.DefaultGroup}, out...)
	}
	return out
}

func (s *Store) registerGroup(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(s.groups, name) {
		return false
	}
	s.groups = append(s.groups, name)
	return true
}

func (s *Store) hasGroup(name string) bool {
	return slices.Contains(s.groups, name)
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == id })
}

// nextID returns the creation time in ms, bumped past every id seen so far.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// persist writes the full state. All keys are attempted even if one fails.
func (s *Store) persist() error {
	collapsed := s.collapsed
	if collapsed == nil {
		collapsed = map[string]bool{}
	}
	items := s.items
	if items == nil {
		items = []model.Item{}
	}
	err := errors.Join(
		store.SaveJSON(s.kv, store.KeyTodos, items),
		store.SaveJSON(s.kv, store.KeyGroups, s.groups),
		store.SaveJSON(s.kv, store.KeyCollapsed, collapsed),
	)
	if err != nil {
		s.log.Error("persist todo state", zap.Error(err))
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// Add appends a new item to group. Blank text is ignored and returns nil.
// An empty group means the default group; an unknown group is registered.
func (s *Store) Add(text, group string) (*model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	group = strings.TrimSpace(group)
	if group == "" {
		group = model.DefaultGroup
	}
	s.registerGroup(group)

	it := model.Item{ID: s.nextID(), Text: text, Group: group}
	s.items = append(s.items, it)
	s.log.Debug("item added", zap.Int64("id", it.ID), zap.String("group", group))
	return &it, s.persist()
}

// AddGroup registers name. Blank or existing names are ignored.
func (s *Store) AddGroup(name string) error {
	if !s.registerGroup(name) {
		return nil
	}
	s.log.Debug("group added", zap.String("group", strings.TrimSpace(name)))
	return s.persist()
}

// Submit parses one line of input and dispatches it. Group commands also
// select the group; item commands add to the selected group.
func (s *Store) Submit(raw string) (Command, error) {
	cmd := ParseInput(raw)
	switch cmd.Kind {
	case CommandCreateGroup:
		err := s.AddGroup(cmd.Value)
		s.selected = cmd.Value
		return cmd, err
	case CommandCreateItem:
		_, err := s.Add(cmd.Value, s.selected)
		return cmd, err
	}
	return cmd, nil
}

// Select makes group the target of Submit. Unknown groups are ignored.
func (s *Store) Select(group string) {
	if s.hasGroup(group) {
		s.selected = group
	}
}

func (s *Store) Selected() string { return s.selected }

// ToggleComplete flips the completed flag of item id.
func (s *Store) ToggleComplete(id int64) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items[i].Completed = !s.items[i].Completed
	return s.persist()
}

// Remove deletes item id.
func (s *Store) Remove(id int64) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items = slices.Delete(s.items, i, i+1)
	return s.persist()
}

// MoveItemToGroup appends item id to the end of target, which must exist.
func (s *Store) MoveItemToGroup(id int64, target string) error {
	i := s.indexOf(id)
	if i < 0 || !s.hasGroup(target) || s.items[i].Group == target {
		return nil
	}
	it := s.items[i]
	it.Group = target
	s.items = append(slices.Delete(s.items, i, i+1), it)
	return s.persist()
}

// DeleteGroup removes a group and, depending on the delete policy, its items.
// The default group is never deleted; ok reports whether anything happened.
// Asking the user for confirmation is the caller's job.
func (s *Store) DeleteGroup(name string) (ok bool, err error) {
	if name == model.DefaultGroup {
		return false, nil
	}
	gi := slices.Index(s.groups, name)
	if gi < 0 {
		return false, nil
	}
	s.groups = slices.Delete(s.groups, gi, gi+1)
	delete(s.collapsed, name)

	switch s.policy {
	case Reassign:
		var moved []model.Item
		s.items = slices.DeleteFunc(s.items, func(it model.Item) bool {
			if it.Group == name {
				it.Group = model.DefaultGroup
				moved = append(moved, it)
				return true
			}
			return false
		})
		s.items = append(s.items, moved...)
	default:
		s.items = slices.DeleteFunc(s.items, func(it model.Item) bool { return it.Group == name })
	}

	if s.selected == name {
		s.selected = model.DefaultGroup
		if len(s.groups) > 0 {
			s.selected = s.groups[0]
		}
	}
	s.log.Debug("group deleted", zap.String("group", name), zap.Stringer("policy", s.policy))
	return true, s.persist()
}

// ToggleCollapse flips the display flag of a registered group.
func (s *Store) ToggleCollapse(group string) error {
	if !s.hasGroup(group) {
		return nil
	}
	if s.collapsed[group] {
		delete(s.collapsed, group)
	} else {
		s.collapsed[group] = true
	}
	return s.persist()
}

// Items returns a copy of all items in persisted order.
func (s *Store) Items() []model.Item { return slices.Clone(s.items) }

// Groups returns a copy of the group registry in display order.
func (s *Store) Groups() []string { return slices.Clone(s.groups) }

func (s *Store) Collapsed(group string) bool { return s.collapsed[group] }

// Item looks up one item by id.
func (s *Store) Item(id int64) (model.Item, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// GroupItems is the view reorder indexes refer to: the group's items in
// persisted order, not sorted by id. Reorder rewrites that order and
// MoveItemToGroup appends, so an id-sorted view would undo both.
func (s *Store) GroupItems(group string) []model.Item {
	var out []model.Item
	for _, it := range s.items {
		if it.Group == group {
			out = append(out, it)
		}
	}
	return out
}

// Stats counts completed and pending items.
func (s *Store) Stats() (done, pending int) {
	for _, it := range s.items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// State is a detached copy of everything the store persists.
type State struct {
	Items     []model.Item
	Groups    []string
	Collapsed map[string]bool
}

func (s *Store) Snapshot() State {
	c := make(map[string]bool, len(s.collapsed))
	for k, v := range s.collapsed {
		c[k] = v
	}
	return State{Items: s.Items(), Groups: s.Groups(), Collapsed: c}
}
