// Package mood records emotions in batches.
//
// A selection is built up from the fixed vocabulary, then submitted as one
// batch whose entries all share a timestamp. Batches are identified by that
// timestamp alone, so two submissions that serialize to the same instant are
// one batch for display and deletion.
package mood

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

type Option func(*Log)

func WithLogger(l *zap.Logger) Option {
	return func(m *Log) {
		if l != nil {
			m.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Log) {
		if now != nil {
			m.now = now
		}
	}
}

// Log is the persisted mood history plus the pending selection.
// Not safe for concurrent use.
type Log struct {
	kv  store.KV
	log *zap.Logger
	now func() time.Time

	history   []model.Entry // newest first
	selection []model.Entry // timestamp unset until Submit
}

func New(kv store.KV, opts ...Option) (*Log, error) {
	m := &Log{kv: kv, log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(m)
	}

	var history []model.Entry
	_, err := store.LoadJSON(kv, store.KeyEmotionHistory, &history)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		m.log.Warn("corrupt emotion history, starting empty", zap.Error(err))
		history = nil
	case err != nil:
		return nil, fmt.Errorf("load emotion history: %w", err)
	}
	m.history = history
	return m, nil
}

func (m *Log) isSelected(name string) bool {
	return slices.ContainsFunc(m.selection, func(e model.Entry) bool { return e.Emotion == name })
}

// SelectEmotion adds name to the pending selection. Unknown names, a polarity
// that does not match the vocabulary and repeats are ignored.
func (m *Log) SelectEmotion(name string, p model.Polarity) bool {
	e, ok := model.LookupEmotion(name)
	if !ok || e.Polarity != p || m.isSelected(name) {
		return false
	}
	m.selection = append(m.selection, model.Entry{Emotion: name, Polarity: p})
	return true
}

// DeselectEmotion drops name from the pending selection.
func (m *Log) DeselectEmotion(name string) bool {
	n := len(m.selection)
	m.selection = slices.DeleteFunc(m.selection, func(e model.Entry) bool { return e.Emotion == name })
	return len(m.selection) != n
}

// ToggleEmotion selects or deselects name, taking polarity from the vocabulary.
func (m *Log) ToggleEmotion(name string) bool {
	if m.isSelected(name) {
		return m.DeselectEmotion(name)
	}
	e, ok := model.LookupEmotion(name)
	if !ok {
		return false
	}
	return m.SelectEmotion(name, e.Polarity)
}

// Selection returns the pending, unsubmitted entries in selection order.
func (m *Log) Selection() []model.Entry { return slices.Clone(m.selection) }

func (m *Log) ClearSelection() { m.selection = nil }

// Submit stamps the selection with one timestamp and prepends it to the
// history. An empty selection does nothing and returns nil.
func (m *Log) Submit() ([]model.Entry, error) {
	if len(m.selection) == 0 {
		return nil, nil
	}
	ts := model.FormatTimestamp(m.now())
	batch := make([]model.Entry, len(m.selection))
	for i, e := range m.selection {
		e.Timestamp = ts
		batch[i] = e
	}
	m.history = append(slices.Clone(batch), m.history...)
	m.selection = nil
	m.log.Debug("mood batch submitted", zap.String("timestamp", ts), zap.Int("entries", len(batch)))
	return batch, m.persist()
}

// DeleteBatch removes every entry recorded at timestamp and reports how many.
func (m *Log) DeleteBatch(timestamp string) (int, error) {
	n := len(m.history)
	m.history = slices.DeleteFunc(m.history, func(e model.Entry) bool { return e.Timestamp == timestamp })
	removed := n - len(m.history)
	if removed == 0 {
		return 0, nil
	}
	return removed, m.persist()
}

// History returns all entries, newest batch first.
func (m *Log) History() []model.Entry { return slices.Clone(m.history) }

// Batches groups the history by exact timestamp, in first-seen order.
func (m *Log) Batches() []model.Batch {
	var out []model.Batch
	index := map[string]int{}
	for _, e := range m.history {
		i, ok := index[e.Timestamp]
		if !ok {
			i = len(out)
			index[e.Timestamp] = i
			out = append(out, model.Batch{Timestamp: e.Timestamp})
		}
		out[i].Entries = append(out[i].Entries, e)
	}
	return out
}

func (m *Log) persist() error {
	history := m.history
	if history == nil {
		history = []model.Entry{}
	}
	if err := store.SaveJSON(m.kv, store.KeyEmotionHistory, history); err != nil {
		m.log.Error("persist emotion history", zap.Error(err))
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}
