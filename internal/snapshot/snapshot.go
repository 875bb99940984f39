// Package snapshot copies every application key into a single JSON file and back.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

const (
	filePrefix = "tada-"
	fileExt    = ".json"
	nameLayout = "20060102T150405.000Z"
)

var (
	// ErrEmpty is returned by Restore when the file holds none of the known keys.
	ErrEmpty = errors.New("snapshot: no known keys")
	// ErrInvalid wraps values that do not decode into their stored type.
	ErrInvalid = errors.New("snapshot: invalid value")
)

type Snapshotter struct {
	kv  store.KV
	dir string
	log *zap.Logger
}

func New(kv store.KV, dir string, log *zap.Logger) *Snapshotter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Snapshotter{kv: kv, dir: dir, log: log}
}

// FileName is the snapshot name for a point in time. Names sort chronologically.
func FileName(t time.Time) string {
	return filePrefix + t.UTC().Format(nameLayout) + fileExt
}

// Write exports all keys into dir and returns the file path.
// Values that are not valid JSON are skipped.
func (s *Snapshotter) Write(now time.Time) (string, error) {
	doc := make(map[string]json.RawMessage, len(store.Keys))
	for _, key := range store.Keys {
		v, ok, err := s.kv.Get(key)
		if err != nil {
			return "", fmt.Errorf("get %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if checkValue(key, []byte(v)) != nil {
			s.log.Warn("skipping corrupt value in snapshot", zap.String("key", key))
			continue
		}
		doc[key] = json.RawMessage(v)
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", s.dir, err)
	}
	p := filepath.Join(s.dir, FileName(now))
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	s.log.Info("snapshot written", zap.String("path", p), zap.Int("keys", len(doc)))
	return p, nil
}

// List returns snapshot paths in dir, oldest first.
func (s *Snapshotter) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasPrefix(n, filePrefix) || !strings.HasSuffix(n, fileExt) {
			continue
		}
		names = append(names, n)
	}
	slices.Sort(names)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(s.dir, n)
	}
	return out, nil
}

// Prune deletes all but the newest keep snapshots. keep <= 0 keeps everything.
func (s *Snapshotter) Prune(keep int) (removed int, err error) {
	if keep <= 0 {
		return 0, nil
	}
	files, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(files) <= keep {
		return 0, nil
	}
	for _, p := range files[:len(files)-keep] {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", p, err)
		}
		removed++
	}
	s.log.Debug("snapshots pruned", zap.Int("removed", removed))
	return removed, nil
}

// Restore writes every known key found in the file back into the store.
// Each value is decoded into its stored type first and the file is rejected
// with ErrInvalid if any of them fails, so nothing is written. Keys are written
// groups first and todos after them; if a Set fails midway the keys written so
// far are returned with the error and the rest keep their old values.
func Restore(kv store.KV, path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	var keys []string
	for _, key := range store.Keys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		if err := checkValue(key, raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, ErrEmpty
	}

	var written []string
	for _, key := range restoreOrder {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		if err := kv.Set(key, string(raw)); err != nil {
			return written, fmt.Errorf("set %s: %w", key, err)
		}
		written = append(written, key)
	}
	return keys, nil
}

// restoreOrder writes the registry before the items that point into it.
var restoreOrder = []string{store.KeyGroups, store.KeyCollapsed, store.KeyTodos, store.KeyEmotionHistory}

// checkValue decodes raw into the type stored under key.
func checkValue(key string, raw []byte) error {
	var dst any
	switch key {
	case store.KeyTodos:
		dst = &[]model.Item{}
	case store.KeyGroups:
		dst = &[]string{}
	case store.KeyCollapsed:
		dst = &map[string]bool{}
	case store.KeyEmotionHistory:
		dst = &[]model.Entry{}
	default:
		return nil
	}
	return json.Unmarshal(raw, dst)
}
