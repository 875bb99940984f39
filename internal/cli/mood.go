package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

const emotionsHint = "run `tada mood emotions` for the vocabulary"

func (r *runner) moodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Record how you feel",
	}
	cmd.AddCommand(
		r.moodLogCmd(),
		r.moodLsCmd(),
		r.moodRmCmd(),
		r.moodEmotionsCmd(),
		r.moodPickCmd(),
	)
	return cmd
}

// findEmotion matches a vocabulary name case-insensitively.
func findEmotion(name string) (model.Emotion, bool) {
	for _, e := range model.AllEmotions() {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return model.Emotion{}, false
}

func (r *runner) moodLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "log <emotion...>",
		Short:   "Record one or more emotions as a single entry",
		Example: "  tada mood log happy tired",
		Args:    minArgs(1, "tada mood log happy tired"),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := r.app.Mood
			l.ClearSelection()
			for _, a := range args {
				e, ok := findEmotion(a)
				if !ok {
					l.ClearSelection()
					return usagef(emotionsHint, "unknown emotion %q", a)
				}
				l.SelectEmotion(e.Name, e.Polarity)
			}
			batch, err := l.Submit()
			if err != nil {
				return err
			}
			ui.OK(r.out, fmt.Sprintf("logged %s", joinEntries(batch)))
			return nil
		},
	}
}

func joinEntries(entries []model.Entry) string {
	t := ui.Current()
	parts := make([]string, len(entries))
	for i, e := range entries {
		style, dot := t.Polarity(e.Polarity == model.Good)
		parts[i] = style.Render(dot) + " " + e.Emotion
	}
	return strings.Join(parts, "  ")
}

func (r *runner) moodLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Show the mood history, newest first",
		Args:  exactArgs(0, "tada mood ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := ui.Current()
			batches := r.app.Mood.Batches()
			if len(batches) == 0 {
				ui.Hint(r.out, "no entries yet; try `tada mood log happy`")
				return nil
			}
			lines := []string{t.Title.Render("Mood"), ""}
			for i, b := range batches {
				when := b.Timestamp
				if at := b.Time(); !at.IsZero() {
					when = at.Local().Format("Mon 02 Jan 2006 15:04")
				}
				lines = append(lines, fmt.Sprintf("%s %s  %s",
					t.Muted.Render(fmt.Sprintf("#%-2d", i+1)), t.Accent.Render(when), joinEntries(b.Entries)))
			}
			ui.Panel(r.out, lines)
			return nil
		},
	}
}

func (r *runner) moodRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <timestamp|#n>",
		Short: "Delete an entry by timestamp or by its number in `mood ls`",
		Args:  exactArgs(1, "tada mood rm '#1'"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := args[0]
			if strings.HasPrefix(ts, "#") {
				batches := r.app.Mood.Batches()
				n, err := strconv.Atoi(ts[1:])
				if err != nil || n < 1 || n > len(batches) {
					return usagef("run `tada mood ls` to see entry numbers", "no mood entry %s", ts)
				}
				ts = batches[n-1].Timestamp
			}
			removed, err := r.app.Mood.DeleteBatch(ts)
			if err != nil {
				return err
			}
			if removed == 0 {
				return usagef("run `tada mood ls` to see entry numbers", "no mood entry at %s", ts)
			}
			ui.OK(r.out, fmt.Sprintf("deleted %d emotion(s) from %s", removed, ts))
			return nil
		},
	}
}

func (r *runner) moodEmotionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "emotions",
		Short:       "List the emotion vocabulary",
		Args:        exactArgs(0, "tada mood emotions"),
		Annotations: map[string]string{annNoStore: "1"},
		RunE: func(cmd *cobra.Command, args []string) error {
			t := ui.Current()
			for _, p := range []model.Polarity{model.Good, model.Bad} {
				style, dot := t.Polarity(p == model.Good)
				fmt.Fprintln(r.out, t.Title.Render(strings.ToUpper(string(p))))
				for _, e := range model.Emotions(p) {
					fmt.Fprintf(r.out, "  %s %-13s %s\n", style.Render(dot), e.Name, t.Muted.Render(e.Description))
				}
			}
			return nil
		},
	}
}

func (r *runner) moodPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick emotions interactively",
		Args:  exactArgs(0, "tada mood pick"),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := tui.RunPicker(r.app.Mood)
			if err != nil {
				return err
			}
			if len(batch) > 0 {
				ui.OK(r.out, "logged "+joinEntries(batch))
			}
			return nil
		},
	}
}
