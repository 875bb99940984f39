package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/snapshot"
	"github.com/Makepad-fr/tada/internal/ui"
)

func (r *runner) backupCmd() *cobra.Command {
	var (
		every string
		dir   string
		keep  int
	)
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a snapshot of all data, once or periodically",
		Example: `  tada backup
  tada backup --every 1h --keep 24`,
		Args: exactArgs(0, "tada backup [--every 1h]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir = r.cfg.Backup.Dir
			}
			if !cmd.Flags().Changed("keep") {
				keep = r.cfg.Backup.Keep
			}
			if !cmd.Flags().Changed("every") {
				every = r.cfg.Backup.Every
			}
			if dir == "" {
				return usagef("pass --dir or set backup.dir in the config", "no backup directory")
			}
			interval, err := parseInterval(every)
			if err != nil {
				return err
			}

			snap := snapshot.New(r.app.KV, dir, r.log.Named("snapshot"))
			if interval == 0 {
				path, err := snap.Write(time.Now())
				if err != nil {
					return err
				}
				if _, err := snap.Prune(keep); err != nil {
					return err
				}
				ui.OK(r.out, "backup written to "+path)
				return nil
			}

			sched := snapshot.NewScheduler(snap, keep, time.Local)
			if _, err := sched.Every(interval); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched.RunOnce()
			sched.Start()
			ui.OK(r.out, fmt.Sprintf("backing up to %s every %s (ctrl+c to stop)", dir, interval))
			r.log.Info("backup scheduler started", zap.Duration("every", interval), zap.String("dir", dir))
			<-ctx.Done()
			sched.Stop()
			ui.Hint(r.out, "backup scheduler stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&every, "every", "", "repeat at this interval (e.g. 30m, 1h)")
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (default ~/.tada/backups)")
	cmd.Flags().IntVar(&keep, "keep", 10, "number of backups to keep, 0 keeps all")
	return cmd
}

func parseInterval(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < time.Second {
		return 0, usagef("use a Go duration of at least 1s, e.g. 30m or 1h", "invalid interval %q", s)
	}
	return d, nil
}

func (r *runner) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Load every key from a backup file, replacing current data",
		Args:  exactArgs(1, "tada restore ~/.tada/backups/tada-....json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := snapshot.Restore(r.app.KV, args[0])
			if errors.Is(err, snapshot.ErrEmpty) || errors.Is(err, snapshot.ErrInvalid) {
				return usagef("pick a file written by `tada backup`", "%s: %v", args[0], err)
			}
			if err != nil {
				return err
			}
			ui.OK(r.out, "restored "+strings.Join(keys, ", "))
			return nil
		},
	}
}
