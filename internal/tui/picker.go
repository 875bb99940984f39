package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/mood"
	"github.com/Makepad-fr/tada/internal/ui"
)

// emotionItem adapts model.Emotion to bubbles/list.Item
type emotionItem struct {
	model.Emotion
}

func (i emotionItem) Title() string       { return i.Name }
func (i emotionItem) Description() string { return i.Emotion.Description }
func (i emotionItem) FilterValue() string { return i.Name }

// Custom delegate: one line per emotion with a polarity dot and a check box.
type emotionDelegate struct {
	log *mood.Log
}

func (d emotionDelegate) Height() int                               { return 1 }
func (d emotionDelegate) Spacing() int                              { return 0 }
func (d emotionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d emotionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(emotionItem)
	if !ok {
		return
	}
	t := ui.Current()
	style, dot := t.Polarity(it.Polarity == model.Good)

	box := t.Muted.Render(t.BoxUnchecked)
	if isSelected(d.log, it.Name) {
		box = t.Success.Render(t.BoxChecked)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, box, style.Render(dot), it.Name)
}

func isSelected(l *mood.Log, name string) bool {
	for _, e := range l.Selection() {
		if e.Emotion == name {
			return true
		}
	}
	return false
}

// Picker selects emotions and submits them as one batch.
type Picker struct {
	log       *mood.Log
	list      list.Model
	describe  bool
	Submitted []model.Entry
	Err       error
}

var (
	pickToggle   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select"))
	pickSubmit   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	pickDescribe = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "describe"))
)

func NewPicker(l *mood.Log) Picker {
	emotions := model.AllEmotions()
	items := make([]list.Item, 0, len(emotions))
	for _, e := range emotions {
		items = append(items, emotionItem{e})
	}

	lst := list.New(items, emotionDelegate{log: l}, 60, 20)
	lst.Title = "How do you feel?"
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(true)
	lst.Styles.Title = ui.Current().Title
	lst.Styles.HelpStyle = ui.Current().Help
	lst.FilterInput.Prompt = "/ "
	lst.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{pickToggle, pickSubmit, pickDescribe} }
	lst.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{pickToggle, pickSubmit, pickDescribe} }

	return Picker{log: l, list: lst}
}

// RunPicker shows the picker and returns what was submitted (nil if cancelled).
func RunPicker(l *mood.Log) ([]model.Entry, error) {
	p := tea.NewProgram(NewPicker(l), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fp, ok := final.(Picker)
	if !ok {
		return nil, nil
	}
	return fp.Submitted, fp.Err
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.list.SetSize(msg.Width-2, msg.Height-2)
		return p, nil
	case tea.KeyMsg:
		if p.describe {
			p.describe = false
			return p, nil
		}
		if p.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, pickToggle):
			if it, ok := p.list.SelectedItem().(emotionItem); ok {
				p.log.ToggleEmotion(it.Name)
			}
			return p, nil
		case key.Matches(msg, pickSubmit):
			p.Submitted, p.Err = p.log.Submit()
			return p, tea.Quit
		case key.Matches(msg, pickDescribe):
			p.describe = true
			return p, nil
		case msg.String() == "q", msg.String() == "esc":
			p.log.ClearSelection()
			return p, tea.Quit
		}
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p Picker) View() string {
	if p.describe {
		if it, ok := p.list.SelectedItem().(emotionItem); ok {
			t := ui.Current()
			return ui.PanelString([]string{
				t.Title.Render(it.Name),
				"",
				it.Emotion.Description,
				"",
				t.Muted.Render("press any key to close"),
			})
		}
	}
	return p.list.View()
}
