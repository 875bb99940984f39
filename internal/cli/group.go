package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

func (r *runner) groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "group",
		Aliases: []string{"groups"},
		Short:   "Manage groups",
	}
	cmd.AddCommand(
		r.groupLsCmd(),
		r.groupAddCmd(),
		r.groupRmCmd(),
		r.groupMvCmd(),
		r.groupCollapseCmd(),
	)
	return cmd
}

func (r *runner) groupLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List groups in display order",
		Args:  exactArgs(0, "tada group ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := r.app.Todos
			t := ui.Current()
			for i, g := range s.Groups() {
				state := ""
				if s.Collapsed(g) {
					state = " " + t.Muted.Render("(collapsed)")
				}
				fmt.Fprintf(r.out, "%2d. %s %s%s\n", i+1, t.Accent.Render(g),
					t.Muted.Render(fmt.Sprintf("[%d]", len(s.GroupItems(g)))), state)
			}
			return nil
		},
	}
}

func (r *runner) groupAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a group",
		Args:  exactArgs(1, "tada group add Groceries"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return usagef("tada group add Groceries", "group name is empty")
			}
			if r.requireGroup(name) == nil {
				ui.Hint(r.out, "group "+name+" already exists")
				return nil
			}
			if err := r.app.Todos.AddGroup(name); err != nil {
				return err
			}
			ui.OK(r.out, "created group "+name)
			return nil
		},
	}
}

func (r *runner) groupRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a group (asks for confirmation)",
		Long: `Delete a group. With the cascade policy its items are deleted too;
with reassign they move to the ` + model.DefaultGroup + ` group.
The ` + model.DefaultGroup + ` group cannot be deleted.`,
		Args: exactArgs(1, "tada group rm <name>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name == model.DefaultGroup {
				return usagef("", "the %s group cannot be deleted", model.DefaultGroup)
			}
			if err := r.requireGroup(name); err != nil {
				return err
			}
			n := len(r.app.Todos.GroupItems(name))
			if !yes && !r.confirm(deletePrompt(name, n, r.cfg.DeletePolicy)) {
				ui.Hint(r.out, "cancelled")
				return nil
			}
			if _, err := r.app.Todos.DeleteGroup(name); err != nil {
				return err
			}
			ui.OK(r.out, "deleted group "+name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().StringVar(&r.policy, "policy", "", "what happens to the items: cascade or reassign")
	return cmd
}

func deletePrompt(name string, items int, policy string) string {
	if items == 0 {
		return fmt.Sprintf("Delete group %q?", name)
	}
	if p, _ := todo.ParseDeletePolicy(policy); p == todo.Reassign {
		return fmt.Sprintf("Delete group %q and move its %d item(s) to %s?", name, items, model.DefaultGroup)
	}
	return fmt.Sprintf("Delete group %q and its %d item(s)?", name, items)
}

// confirm asks a y/N question on the runner's input.
func (r *runner) confirm(question string) bool {
	fmt.Fprintf(r.out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(r.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (r *runner) groupMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Reorder groups (1-based positions)",
		Args:  exactArgs(2, "tada group mv 3 1"),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := len(r.app.Todos.Groups())
			from, err := position(args[0], n, "from")
			if err != nil {
				return err
			}
			to, err := position(args[1], n, "to")
			if err != nil {
				return err
			}
			if err := r.app.Todos.ReorderGroups(from, to); err != nil {
				return err
			}
			ui.OK(r.out, fmt.Sprintf("moved group %d to %d", from+1, to+1))
			return nil
		},
	}
}

func (r *runner) groupCollapseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collapse <name>",
		Short: "Collapse or expand a group in listings",
		Args:  exactArgs(1, "tada group collapse <name>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.requireGroup(args[0]); err != nil {
				return err
			}
			if err := r.app.Todos.ToggleCollapse(args[0]); err != nil {
				return err
			}
			if r.app.Todos.Collapsed(args[0]) {
				ui.OK(r.out, "collapsed "+args[0])
			} else {
				ui.OK(r.out, "expanded "+args[0])
			}
			return nil
		},
	}
}
