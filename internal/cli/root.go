package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/recipes/internal/tui"
)

func newRootCmd(a *app) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "recipes",
		Short: "Keep a personal recipe collection",
		Long: `recipes keeps titles, ingredients and instructions of your recipes in one
persisted collection (a JSON file by default).

Run it without a subcommand on a terminal for the interactive browser.`,
		Example: `  recipes add --title "Pancakes" --ingredients "flour, eggs, milk" --instructions "Mix and fry."
  recipes ls pasta
  recipes show 1700000000000
  recipes export --format yaml > recipes.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, configFile, !cmd.HasParent())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.opt.Interactive() {
				_ = cmd.Help()
				return &usageError{msg: "no subcommand given", hint: "the interactive browser needs a terminal"}
			}
			return tui.Run(cmd.Context(), a.store, a.log)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error(), hint: "Hint: run `recipes --help` for usage"}
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/recipes/config.yaml)")
	pf.String("driver", "", "store driver: file, memory, sqlite, postgres or s3 (default file)")
	pf.String("data-dir", "", "directory of the file store (default $XDG_DATA_HOME/recipes)")
	pf.String("key", "", "name of the persisted slot (default recipes)")
	pf.String("ids", "", "id scheme for new recipes: clock or uuid (default clock)")
	pf.String("theme", "", "color theme: classic, neon or mono")
	pf.String("color", "", "color output: auto, always or never")
	pf.String("log-level", "", "log level: debug, info, warn or error (default warn)")
	pf.String("log-file", "", "write logs here while the interactive browser runs")
	pf.String("metrics-file", "", "write Prometheus metrics to this textfile on exit")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newVersionCmd(a),
	)
	return root
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: recipes %s", usage)
		}
		return nil
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Args:              exactArgs(0, "version"),
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "recipes version %s\n", a.opt.Version)
		},
	}
}
