// Package tui holds the interactive Bubble Tea views. Every key press is
// translated into one store call; the views own no list state of their own.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

type boardKeys struct {
	Up, Down, Toggle, Remove, Add key.Binding
	MoveUp, MoveDown              key.Binding
	PrevGroup, NextGroup          key.Binding
	Collapse, DeleteGroup, Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Remove, k.MoveUp, k.MoveDown, k.Collapse, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Toggle, k.Remove},
		{k.MoveUp, k.MoveDown, k.PrevGroup, k.NextGroup},
		{k.Collapse, k.DeleteGroup, k.Quit},
	}
}

var defaultBoardKeys = boardKeys{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Remove:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
	Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add (Name/ = group)")),
	MoveUp:      key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown:    key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
	PrevGroup:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "to prev group")),
	NextGroup:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "to next group")),
	Collapse:    key.NewBinding(key.WithKeys("c", "enter"), key.WithHelp("c", "collapse")),
	DeleteGroup: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete group")),
	Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// row is one rendered line: a group header, or an item with its index in the group view.
type row struct {
	group  string
	item   *model.Item
	offset int
}

type boardMode int

const (
	modeBrowse boardMode = iota
	modeAdd
	modeConfirm
)

// Board is the Bubble Tea model over a todo.Store.
type Board struct {
	store *todo.Store
	keys  boardKeys
	help  help.Model
	ti    textinput.Model

	rows   []row
	cursor int
	mode   boardMode

	confirmGroup string
	status       string
	err          error

	width, height int
}

func NewBoard(s *todo.Store) Board {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item, or Group/ to create a group..."
	ti.CharLimit = 200

	h := help.New()
	h.Width = 76

	b := Board{
		store: s,
		keys:  defaultBoardKeys,
		help:  h,
		ti:    ti,
		width: 80, height: 24,
	}
	b.rebuild()
	return b
}

// RunBoard starts the board full screen. Every change is already persisted
// when it returns.
func RunBoard(s *todo.Store) error {
	p := tea.NewProgram(NewBoard(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (b *Board) rebuild() {
	b.rows = nil
	for _, g := range b.store.Groups() {
		b.rows = append(b.rows, row{group: g})
		if b.store.Collapsed(g) {
			continue
		}
		for i, it := range b.store.GroupItems(g) {
			b.rows = append(b.rows, row{group: g, item: &it, offset: i})
		}
	}
	if b.cursor >= len(b.rows) {
		b.cursor = len(b.rows) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b Board) current() (row, bool) {
	if b.cursor < 0 || b.cursor >= len(b.rows) {
		return row{}, false
	}
	return b.rows[b.cursor], true
}

// focus puts the cursor on the row for item id, or on a group header.
func (b *Board) focus(group string, id int64) {
	for i, r := range b.rows {
		if id != 0 && r.item != nil && r.item.ID == id {
			b.cursor = i
			return
		}
		if id == 0 && r.item == nil && r.group == group {
			b.cursor = i
			return
		}
	}
}

func (b *Board) apply(err error) {
	b.err = err
	b.rebuild()
}

func (b Board) Init() tea.Cmd { return nil }

func (b Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		b.width, b.height = ws.Width, ws.Height
		b.help.Width = ws.Width - 4
		return b, nil
	}

	switch b.mode {
	case modeAdd:
		return b.updateAdd(msg)
	case modeConfirm:
		return b.updateConfirm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	b.status = ""
	r, hasRow := b.current()

	switch {
	case key.Matches(km, b.keys.Quit):
		return b, tea.Quit

	case key.Matches(km, b.keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}

	case key.Matches(km, b.keys.Down):
		if b.cursor < len(b.rows)-1 {
			b.cursor++
		}

	case key.Matches(km, b.keys.Toggle):
		if hasRow && r.item != nil {
			b.apply(b.store.ToggleComplete(r.item.ID))
		}

	case key.Matches(km, b.keys.Remove):
		if hasRow && r.item != nil {
			b.apply(b.store.Remove(r.item.ID))
			b.status = "removed"
		}

	case key.Matches(km, b.keys.Add):
		if hasRow {
			b.store.Select(r.group)
		}
		b.mode = modeAdd
		b.ti.SetValue("")
		b.ti.Focus()
		return b, textinput.Blink

	case key.Matches(km, b.keys.MoveUp), key.Matches(km, b.keys.MoveDown):
		if !hasRow {
			break
		}
		delta := 1
		if key.Matches(km, b.keys.MoveUp) {
			delta = -1
		}
		if r.item != nil {
			b.apply(b.store.Reorder(r.group, r.offset, r.offset+delta))
			b.focus(r.group, r.item.ID)
		} else {
			from := indexOf(b.store.Groups(), r.group)
			b.apply(b.store.ReorderGroups(from, from+delta))
			b.focus(r.group, 0)
		}

	case key.Matches(km, b.keys.PrevGroup), key.Matches(km, b.keys.NextGroup):
		if !hasRow || r.item == nil {
			break
		}
		groups := b.store.Groups()
		delta := 1
		if key.Matches(km, b.keys.PrevGroup) {
			delta = -1
		}
		target := indexOf(groups, r.group) + delta
		if target >= 0 && target < len(groups) {
			b.apply(b.store.MoveItemToGroup(r.item.ID, groups[target]))
			b.focus(groups[target], r.item.ID)
		}

	case key.Matches(km, b.keys.Collapse):
		if hasRow {
			b.apply(b.store.ToggleCollapse(r.group))
			b.focus(r.group, 0)
		}

	case key.Matches(km, b.keys.DeleteGroup):
		if !hasRow {
			break
		}
		if r.group == model.DefaultGroup {
			b.status = "the " + model.DefaultGroup + " group cannot be deleted"
			break
		}
		b.confirmGroup = r.group
		b.mode = modeConfirm
	}
	return b, nil
}

func (b Board) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			cmd, err := b.store.Submit(b.ti.Value())
			b.ti.SetValue("")
			b.apply(err)
			switch cmd.Kind {
			case todo.CommandCreateGroup:
				b.status = "group " + cmd.Value + " selected"
				b.focus(cmd.Value, 0)
			case todo.CommandCreateItem:
				items := b.store.GroupItems(b.store.Selected())
				if n := len(items); n > 0 {
					b.focus(b.store.Selected(), items[n-1].ID)
				}
			}
			// stay in add mode for quick entry; esc leaves
			return b, nil
		case "esc":
			b.mode = modeBrowse
			b.ti.Blur()
			return b, nil
		}
	}
	var cmd tea.Cmd
	b.ti, cmd = b.ti.Update(msg)
	return b, cmd
}

func (b Board) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch km.String() {
	case "y", "Y":
		deleted, err := b.store.DeleteGroup(b.confirmGroup)
		b.apply(err)
		if deleted {
			b.status = "deleted group " + b.confirmGroup
			b.focus(b.store.Selected(), 0)
		}
		b.mode = modeBrowse
		b.confirmGroup = ""
	case "n", "N", "esc", "q":
		b.mode = modeBrowse
		b.confirmGroup = ""
	}
	return b, nil
}

func (b Board) View() string {
	t := ui.Current()
	done, pending := b.store.Stats()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s   %s %d  %s %d  %s %d\n",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending))
	sb.WriteString(t.Muted.Render(ui.ProgressBar(done, done+pending, 28)))
	sb.WriteString("\n\n")

	lines := make([]string, 0, len(b.rows))
	for i, r := range b.rows {
		lines = append(lines, b.renderRow(r, i == b.cursor))
	}
	// keep the cursor on screen
	avail := b.height - 10
	if avail < 3 {
		avail = 3
	}
	start := 0
	if b.cursor >= avail {
		start = b.cursor - avail + 1
	}
	end := start + avail
	if end > len(lines) {
		end = len(lines)
	}
	sb.WriteString(strings.Join(lines[start:end], "\n"))
	sb.WriteString("\n")

	switch b.mode {
	case modeAdd:
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderColor).Padding(0, 1)
		title := "Add to " + b.store.Selected()
		sb.WriteString(bar.Render(title + "\n" + b.ti.View()))
		sb.WriteString("\n")
	case modeConfirm:
		sb.WriteString(t.Error.Render(fmt.Sprintf("Delete group %q and its items? (y/n)", b.confirmGroup)))
		sb.WriteString("\n")
	}

	if b.err != nil {
		sb.WriteString(t.Error.Render("save failed: " + b.err.Error()))
		sb.WriteString("\n")
	} else if b.status != "" {
		sb.WriteString(t.Muted.Render(b.status))
		sb.WriteString("\n")
	}
	sb.WriteString(b.help.View(b.keys))

	w := b.width - 2
	if w < 20 {
		w = 20
	}
	return lipgloss.NewStyle().Width(w).Render(ui.PanelString([]string{strings.TrimRight(sb.String(), "\n")}))
}

func (b Board) renderRow(r row, selected bool) string {
	t := ui.Current()
	prefix := "  "
	if selected {
		prefix = t.Selected.Render("> ")
	}
	if r.item == nil {
		sym := t.SymOpen
		if b.store.Collapsed(r.group) {
			sym = t.SymCollapsed
		}
		count := len(b.store.GroupItems(r.group))
		name := r.group
		if r.group == b.store.Selected() {
			name = t.Accent.Render(name)
		}
		return fmt.Sprintf("%s%s %s %s", prefix, sym, t.Title.Render(name), t.Muted.Render(fmt.Sprintf("(%d)", count)))
	}

	box := t.Muted.Render(t.BoxUnchecked)
	text := r.item.Text
	if r.item.Completed {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	return fmt.Sprintf("%s    %s %s", prefix, box, text)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
