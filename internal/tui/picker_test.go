package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/mood"
	"github.com/Makepad-fr/tada/internal/store/memstore"
)

func newPickerLog(t *testing.T) *mood.Log {
	t.Helper()
	at := time.Date(2025, 5, 4, 20, 15, 0, 0, time.UTC)
	l, err := mood.New(memstore.New(), mood.WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	return l
}

func pick(t *testing.T, m tea.Model, keys ...string) (Picker, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(keyMsg(k))
	}
	p, ok := m.(Picker)
	require.True(t, ok)
	return p, cmd
}

func TestPickerSelectAndSubmit(t *testing.T) {
	l := newPickerLog(t)
	first := model.AllEmotions()[0]

	p, _ := pick(t, NewPicker(l), " ")
	require.Len(t, l.Selection(), 1)
	assert.Equal(t, first.Name, l.Selection()[0].Emotion)

	p, cmd := pick(t, p, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	require.NoError(t, p.Err)
	require.Len(t, p.Submitted, 1)
	assert.Equal(t, "2025-05-04T20:15:00.000Z", p.Submitted[0].Timestamp)
	assert.Equal(t, first.Polarity, p.Submitted[0].Polarity)
	assert.Len(t, l.History(), 1)
	assert.Empty(t, l.Selection())
}

func TestPickerToggleTwiceDeselects(t *testing.T) {
	l := newPickerLog(t)
	pick(t, NewPicker(l), " ", " ")
	assert.Empty(t, l.Selection())
}

func TestPickerCancelDropsSelection(t *testing.T) {
	l := newPickerLog(t)
	p, cmd := pick(t, NewPicker(l), " ", "esc")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Nil(t, p.Submitted)
	assert.Empty(t, l.Selection())
	assert.Empty(t, l.History())
}

func TestPickerDescribe(t *testing.T) {
	first := model.AllEmotions()[0]
	p, _ := pick(t, NewPicker(newPickerLog(t)), "?")
	assert.Contains(t, p.View(), first.Description)

	p, _ = pick(t, p, "x")
	assert.False(t, p.describe)
	assert.NotContains(t, p.View(), "press any key to close")
}
