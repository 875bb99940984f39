package model

import (
	"fmt"
	"time"
)

// Polarity tells whether an emotion is pleasant or not.
type Polarity string

const (
	Good Polarity = "good"
	Bad  Polarity = "bad"
)

// ParsePolarity accepts "good" or "bad".
func ParsePolarity(s string) (Polarity, error) {
	switch Polarity(s) {
	case Good, Bad:
		return Polarity(s), nil
	}
	return "", fmt.Errorf("unknown polarity %q", s)
}

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t the way entries are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Entry is one emotion recorded in the mood log. Entries submitted together
// share the same Timestamp.
type Entry struct {
	Emotion   string   `json:"emotion"`
	Polarity  Polarity `json:"type"`
	Timestamp string   `json:"timestamp"`
}

// Batch groups entries that share one timestamp.
type Batch struct {
	Timestamp string
	Entries   []Entry
}

// Time parses the batch timestamp. Zero time if it is malformed.
func (b Batch) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, b.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
