package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

const lsHint = "run `tada ls` to see ids and groups"

func (r *runner) lsCmd() *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items by group",
		Args:    exactArgs(0, "tada ls takes no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return tui.RunBoard(r.app.Todos)
			}
			ui.Panel(r.out, listLines(r.app.Todos))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive board")
	return cmd
}

func listLines(s *todo.Store) []string {
	t := ui.Current()
	done, pending := s.Stats()
	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			t.Title.Render("Todos"),
			t.Success.Render(t.SymDone), done,
			t.Pending.Render(t.SymPending), pending,
			t.Accent.Render("Total"), done+pending),
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}

	for _, g := range s.Groups() {
		items := s.GroupItems(g)
		sym := t.SymOpen
		if s.Collapsed(g) {
			sym = t.SymCollapsed
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", sym, t.Accent.Render(g), t.Muted.Render(fmt.Sprintf("(%d)", len(items)))))
		if s.Collapsed(g) {
			continue
		}
		if len(items) == 0 {
			lines = append(lines, t.Muted.Render("    no items"))
		}
		for _, it := range items {
			lines = append(lines, itemLine(it))
		}
	}
	lines = append(lines, "", t.Muted.Render("Tip: `tada add \"Buy milk\"`, `tada add Groceries/` creates a group"))
	return lines
}

func itemLine(it model.Item) string {
	t := ui.Current()
	text := it.Text
	if r := []rune(text); len(r) > 80 {
		text = string(r[:77]) + "..."
	}
	box := t.Muted.Render(t.BoxUnchecked)
	if it.Completed {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(text)
	}
	return fmt.Sprintf("    %s %s %s", box, text, t.Muted.Render(fmt.Sprintf("#%d", it.ID)))
}

func (r *runner) addCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add an item, or create a group with a trailing /",
		Example: `  tada add Buy milk
  tada add --group Work "Write report"
  tada add Groceries/`,
		Args: minArgs(1, `tada add "Buy milk"`),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			s := r.app.Todos

			if group != "" {
				it, err := s.Add(raw, group)
				if err != nil {
					return err
				}
				if it == nil {
					return usagef(`tada add "Buy milk"`, "add: empty text")
				}
				ui.OK(r.out, fmt.Sprintf("added #%d to %s", it.ID, it.Group))
				return nil
			}

			existed := len(s.Groups())
			c, err := s.Submit(raw)
			if err != nil {
				return err
			}
			switch c.Kind {
			case todo.CommandCreateGroup:
				if len(s.Groups()) == existed {
					ui.Hint(r.out, "group "+c.Value+" already exists")
					return nil
				}
				ui.OK(r.out, "created group "+c.Value)
			case todo.CommandCreateItem:
				items := s.GroupItems(s.Selected())
				ui.OK(r.out, fmt.Sprintf("added #%d to %s", items[len(items)-1].ID, s.Selected()))
			default:
				return usagef(`tada add "Buy milk"`, "add: empty text")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "add to this group (created if missing)")
	return cmd
}

// parseID accepts "123" or "#123".
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, usagef(lsHint, "not an item id: %s", s)
	}
	return id, nil
}

func (r *runner) lookup(arg string) (model.Item, error) {
	id, err := parseID(arg)
	if err != nil {
		return model.Item{}, err
	}
	it, ok := r.app.Todos.Item(id)
	if !ok {
		return model.Item{}, usagef(lsHint, "no item with id %d", id)
	}
	return it, nil
}

func (r *runner) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle an item between done and pending",
		Args:  exactArgs(1, "tada done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := r.lookup(args[0])
			if err != nil {
				return err
			}
			if err := r.app.Todos.ToggleComplete(it.ID); err != nil {
				return err
			}
			if it.Completed {
				ui.OK(r.out, "reopened "+it.Text)
			} else {
				ui.OK(r.out, "done "+it.Text)
			}
			return nil
		},
	}
}

func (r *runner) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item",
		Args:  exactArgs(1, "tada rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := r.lookup(args[0])
			if err != nil {
				return err
			}
			if err := r.app.Todos.Remove(it.ID); err != nil {
				return err
			}
			ui.OK(r.out, "removed "+it.Text)
			return nil
		},
	}
}

// position parses a 1-based index into [0, n).
func position(s string, n int, what string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef(lsHint, "not a position: %s", s)
	}
	if p < 1 || p > n {
		return 0, usagef(lsHint, "%s position out of range: have %d, got %d", what, n, p)
	}
	return p - 1, nil
}

func (r *runner) mvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <group> <from> <to>",
		Short: "Reorder an item within its group (1-based positions)",
		Args:  exactArgs(3, "tada mv General 3 1"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := r.app.Todos
			group := args[0]
			if err := r.requireGroup(group); err != nil {
				return err
			}
			n := len(s.GroupItems(group))
			from, err := position(args[1], n, "from")
			if err != nil {
				return err
			}
			to, err := position(args[2], n, "to")
			if err != nil {
				return err
			}
			if err := s.Reorder(group, from, to); err != nil {
				return err
			}
			ui.OK(r.out, fmt.Sprintf("moved %s item %d to %d", group, from+1, to+1))
			return nil
		},
	}
}

func (r *runner) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <group>",
		Short: "Move an item to the end of another group",
		Args:  exactArgs(2, "tada move <id> <group>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := r.lookup(args[0])
			if err != nil {
				return err
			}
			if err := r.requireGroup(args[1]); err != nil {
				return err
			}
			if it.Group == args[1] {
				ui.Hint(r.out, "already in "+args[1])
				return nil
			}
			if err := r.app.Todos.MoveItemToGroup(it.ID, args[1]); err != nil {
				return err
			}
			ui.OK(r.out, fmt.Sprintf("moved %s to %s", it.Text, args[1]))
			return nil
		},
	}
}

func (r *runner) requireGroup(name string) error {
	for _, g := range r.app.Todos.Groups() {
		if g == name {
			return nil
		}
	}
	return usagef("run `tada group ls` to see groups", "no group named %q", name)
}
