// Package cli is the tada command tree.
//
// Exit codes: 0 ok, 1 runtime error (storage, I/O), 2 usage error (bad
// arguments, unknown ids or groups).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/ui"
)

const (
	ExitOK      = 0
	ExitRuntime = 1
	ExitUsage   = 2
)

// usageError marks a failure caused by the invocation rather than the system.
type usageError struct {
	msg  string
	hint string
}

func (e *usageError) Error() string { return e.msg }

func usagef(hint, format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...), hint: hint}
}

// annotation on commands that never touch storage
const annNoStore = "tada/no-store"

// runner holds the per-invocation state shared by all commands.
type runner struct {
	in          io.Reader
	out, errOut io.Writer

	configPath string
	backend    string
	dataDir    string
	theme      string
	verbose    bool
	policy     string // group rm --policy

	started        bool
	resolvedConfig string
	cfg            *config.Config
	log            *zap.Logger
	app            *app.App
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	r := &runner{in: in, out: out, errOut: errOut}
	root := r.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if cerr := r.close(); err == nil && cerr != nil {
		err = cerr
	}
	if err == nil {
		return ExitOK
	}

	ui.Fail(errOut, err.Error())
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		if ue.hint != "" {
			ui.Hint(errOut, "Hint: "+ue.hint)
		}
		return ExitUsage
	case !r.started:
		// cobra rejected flags, arguments or the command name
		ui.Hint(errOut, "Run 'tada --help' for usage.")
		return ExitUsage
	}
	return ExitRuntime
}

func (r *runner) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - groupable to-do list and mood log",
		Long: `tada keeps a to-do list organised in groups, plus a log of how you feel.

Everything is stored locally (json files, badger or sqlite; see --backend).
Run 'tada ls -i' for the interactive board and 'tada mood pick' for the picker.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: r.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if r.log != nil {
				_ = r.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&r.configPath, "config", "", "config file (default ~/.tada/config.yaml)")
	pf.StringVar(&r.backend, "backend", "", "storage backend: json, badger, sqlite or memory")
	pf.StringVar(&r.dataDir, "data-dir", "", "directory holding the stored data")
	pf.StringVar(&r.theme, "theme", "", "color theme: classic, neon or mono")
	pf.BoolVarP(&r.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		r.lsCmd(),
		r.addCmd(),
		r.doneCmd(),
		r.rmCmd(),
		r.mvCmd(),
		r.moveCmd(),
		r.groupCmd(),
		r.moodCmd(),
		r.backupCmd(),
		r.restoreCmd(),
		r.configCmd(),
	)
	return root
}

// setup loads config, applies flag overrides and opens storage.
func (r *runner) setup(cmd *cobra.Command, args []string) error {
	r.started = true

	path := r.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	r.resolvedConfig = path
	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrInvalid) {
		return usagef("fix "+path+" or the TADA_* environment", "%v", err)
	}
	if err != nil {
		return err
	}
	if r.backend != "" {
		cfg.Backend = r.backend
	}
	if r.dataDir != "" {
		cfg.DataDir = r.dataDir
	}
	if r.theme != "" {
		cfg.Theme = r.theme
	}
	if r.policy != "" {
		cfg.DeletePolicy = r.policy
	}
	if err := cfg.Validate(); err != nil {
		return usagef("check --backend, --data-dir and --policy", "%v", err)
	}
	r.cfg = cfg
	ui.SetTheme(cfg.Theme)

	log, err := logging.New(cfg.LogLevel, r.verbose)
	if err != nil {
		return err
	}
	r.log = log

	if cmd.Annotations[annNoStore] != "" {
		return nil
	}
	a, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	r.app = a
	return nil
}

func (r *runner) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	if err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// exactArgs is cobra.ExactArgs with a usage error.
func exactArgs(n int, hint string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef(hint, "%s: expected %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func minArgs(n int, hint string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef(hint, "%s: expected at least %d argument(s)", cmd.CommandPath(), n)
		}
		return nil
	}
}
