package todo

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DeletePolicy decides what happens to the items of a deleted group.
type DeletePolicy int

const (
	// Cascade deletes the group's items with it.
	Cascade DeletePolicy = iota
	// Reassign moves the group's items to the default group.
	Reassign
)

func (p DeletePolicy) String() string {
	if p == Reassign {
		return "reassign"
	}
	return "cascade"
}

// ParseDeletePolicy accepts "cascade" or "reassign" (case-insensitive).
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cascade":
		return Cascade, nil
	case "reassign":
		return Reassign, nil
	}
	return Cascade, fmt.Errorf("unknown delete policy %q", s)
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now, which drives item ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithDeletePolicy(p DeletePolicy) Option {
	return func(s *Store) { s.policy = p }
}
