// Package cli is the recipes command line: a cobra command tree over one
// *recipes.Store. With no subcommand on a terminal it starts the TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/recipes/internal/config"
	"github.com/idilsaglam/recipes/internal/metrics"
	"github.com/idilsaglam/recipes/internal/model"
	"github.com/idilsaglam/recipes/internal/recipes"
	"github.com/idilsaglam/recipes/internal/store"
	"github.com/idilsaglam/recipes/internal/ui"
)

// Options wire the command to its environment. Zero values mean the real
// process streams, terminal detection and huh prompts.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// Interactive reports whether prompts and the TUI may be used.
	Interactive func() bool
	// Prompt asks the user to complete f. heading is "Add Recipe" or "Edit Recipe".
	Prompt func(heading string, f *model.Fields) error

	Version string
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Interactive == nil {
		o.Interactive = ui.IsTerminal
	}
	if o.Prompt == nil {
		o.Prompt = promptFields
	}
	if o.Version == "" {
		o.Version = "dev"
	}
	return o
}

// app is the state shared by every command of one invocation.
type app struct {
	opt     Options
	cfg     config.Config
	log     *slog.Logger
	logFile *os.File
	metrics *metrics.Metrics
	slot    store.Slot
	store   *recipes.Store
}

// Run executes args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt = opt.withDefaults()
	ui.Stdout, ui.Stderr = opt.Stdout, opt.Stderr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{opt: opt, log: newLogger(opt.Stderr, "warn"), metrics: metrics.New()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		ui.Fail(report(err))
		var ue *usageError
		if errors.As(err, &ue) && ue.hint != "" {
			ui.Hint(ue.hint)
		}
	}
	return exitCode(err)
}

// setup resolves config, logging and the store. tui selects the log sink
// used while the TUI owns the terminal.
func (a *app) setup(cmd *cobra.Command, configFile string, tui bool) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if err := ui.SetColorMode(cfg.UI.Color); err != nil {
		return err
	}
	if err := ui.SetTheme(cfg.UI.Theme); err != nil {
		return err
	}
	if err := a.setupLogging(tui); err != nil {
		return err
	}

	ids, ok := recipes.NewIDGenerator(cfg.IDs)
	if !ok {
		return fmt.Errorf("ids must be clock or uuid, got %q", cfg.IDs)
	}
	ctx := cmd.Context()
	slot, err := OpenSlot(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	a.slot = slot
	a.store = recipes.New(slot,
		recipes.WithLogger(a.log),
		recipes.WithMetrics(a.metrics),
		recipes.WithIDs(ids),
	)
	a.store.Load(ctx)
	a.log.Debug("store ready", "driver", slot.Driver(), "config", cfg.File, "recipes", a.store.Len())
	return nil
}

func (a *app) setupLogging(tui bool) error {
	var w io.Writer = a.opt.Stderr
	switch {
	case tui && a.cfg.Log.File != "":
		f, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile, w = f, f
	case tui:
		w = io.Discard
	}
	a.log = newLogger(w, a.cfg.Log.Level)
	slog.SetDefault(a.log)
	return nil
}

// close releases the slot and writes the metrics textfile when configured.
func (a *app) close() {
	if a.slot != nil {
		if err := a.slot.Close(); err != nil {
			a.log.Warn("close store", "err", err)
		}
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.log.Warn("write metrics textfile", "path", a.cfg.Metrics.Textfile, "err", err)
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
