package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FroogalTheDragon/devclean/internal/ui"
)

var (
	configShow        bool
	configReset       bool
	configAddIgnore   []string
	configExcludeKind []string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change persistent settings",
	Long: `View or change the settings applied to every scan: ignored project paths,
excluded project kinds, default roots and the maximum depth.

Settings live in a JSON file under the user config directory and can be
overridden with DEVCLEAN_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShow, "show", false, "Print the current configuration")
	configCmd.Flags().BoolVar(&configReset, "reset", false, "Restore the default configuration")
	configCmd.Flags().StringSliceVar(&configAddIgnore, "add-ignore", nil, "Never report the project at this path")
	configCmd.Flags().StringSliceVar(&configExcludeKind, "exclude-kind", nil, "Never report projects of this kind (e.g. Node)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	store, err := openStore()
	if err != nil {
		return err
	}

	if configReset {
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.SuccessStyle().Render(ui.IconCheck+" Configuration reset: "+store.Path()))
	}

	// Edits start from the file alone so env overrides stay out of it.
	cfg, err := store.LoadFile()
	if err != nil {
		return err
	}

	changed := false
	for _, p := range configAddIgnore {
		added, err := cfg.AddIgnorePath(p)
		if err != nil {
			return err
		}
		changed = changed || added
	}
	for _, k := range configExcludeKind {
		added, err := cfg.AddExcludeKind(k)
		if err != nil {
			return err
		}
		changed = changed || added
	}
	if changed {
		if err := store.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.SuccessStyle().Render(ui.IconCheck+" Configuration saved: "+store.Path()))
	}

	mutated := configReset || len(configAddIgnore) > 0 || len(configExcludeKind) > 0
	if configShow || !mutated {
		effective, err := store.Load()
		if err != nil {
			return err
		}
		if !jsonOutput {
			fmt.Fprintln(out, ui.MutedStyle().Render("# "+store.Path()))
		}
		return writeJSON(out, effective)
	}
	return nil
}
