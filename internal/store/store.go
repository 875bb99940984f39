// Package store defines the key-value persistence port that the list and
// mood stores write through. Values are UTF-8 JSON text.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Keys owned by the application.
const (
	KeyTodos          = "todos"
	KeyGroups         = "groups"
	KeyCollapsed      = "collapsedGroups"
	KeyEmotionHistory = "emotionHistory"
)

// Keys lists every key in a stable order (used by backups).
var Keys = []string{KeyTodos, KeyGroups, KeyCollapsed, KeyEmotionHistory}

var (
	// ErrClosed is returned by backends used after Close.
	ErrClosed = errors.New("store: closed")
	// ErrCorrupt wraps values that are present but do not decode.
	ErrCorrupt = errors.New("store: corrupt value")
)

// KV is the persistence port. A missing key is reported with ok=false, not an error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Backend is a KV that holds resources.
type Backend interface {
	KV
	Close() error
}

// LoadJSON reads key and decodes it into dst.
// found is false when the key is absent. A value that does not decode yields
// an error wrapping ErrCorrupt so callers can fall back to defaults.
func LoadJSON(kv KV, key string, dst any) (found bool, err error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json marshal %s: %w", key, err)
	}
	if err := kv.Set(key, string(b)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
