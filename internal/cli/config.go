package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/ui"
)

func (r *runner) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the config file",
	}
	cmd.AddCommand(r.configInitCmd(), r.configShowCmd())
	return cmd
}

func (r *runner) configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the config file",
		Long: `Write the settings tada is running with (defaults, TADA_* variables and
flags such as --backend) to the config file, so later runs pick them up.`,
		Example:     "  tada --backend sqlite config init",
		Args:        exactArgs(0, "tada config init [--force]"),
		Annotations: map[string]string{annNoStore: "1"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := r.resolvedConfig
			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				return usagef("pass --force to overwrite it", "%s already exists", path)
			case err != nil && !errors.Is(err, os.ErrNotExist):
				return fmt.Errorf("stat config: %w", err)
			}
			if err := r.cfg.Save(path); err != nil {
				return err
			}
			ui.OK(r.out, "wrote "+path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func (r *runner) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the effective settings as YAML",
		Args:        exactArgs(0, "tada config show"),
		Annotations: map[string]string{annNoStore: "1"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(r.cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			ui.Hint(r.out, "# "+r.resolvedConfig)
			_, err = r.out.Write(data)
			return err
		},
	}
}
