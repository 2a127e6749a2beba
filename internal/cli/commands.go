package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/recipes/internal/exchange"
	"github.com/idilsaglam/recipes/internal/model"
	"github.com/idilsaglam/recipes/internal/recipes"
	"github.com/idilsaglam/recipes/internal/ui"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [query]",
		Aliases: []string{"list", "search"},
		Short:   "List recipes, optionally filtered by title or ingredients",
		Args:    cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return a.list(strings.Join(args, " "))
		},
	}
}

func (a *app) list(query string) error {
	t := ui.Current()
	var (
		body    []string
		matched int
	)
	for r := range a.store.Search(query) {
		matched++
		body = append(body,
			fmt.Sprintf("%s  %s", t.Muted.Render(r.ID.String()), t.Title.Render(r.Title)),
			"   "+t.Muted.Render(r.Preview(model.PreviewLen)),
		)
	}

	counts := fmt.Sprintf("%d recipes", a.store.Len())
	if query != "" {
		counts = fmt.Sprintf("%d of %d recipes match %q", matched, a.store.Len(), query)
	}
	lines := []string{t.Title.Render("Recipes") + "  " + t.Accent.Render(counts), ""}
	if len(body) == 0 {
		lines = append(lines, t.Muted.Render("No recipes found."))
	} else {
		lines = append(lines, body...)
	}
	if a.store.Len() == 0 {
		lines = append(lines, "", t.Muted.Render(`Tip: add one with recipes add --title "Pancakes" ...`))
	}
	ui.PrintPanel(lines)
	return nil
}

func newShowCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe",
		Args:  exactArgs(1, "show <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.store.View(model.ID(args[0]))
			r, ok := a.store.Selected()
			if !ok {
				return unknownID(args[0])
			}
			md := ui.RecipeMarkdown(r)
			if !raw {
				w, _ := ui.Size()
				md = ui.RenderMarkdown(md, w, ui.DetectMarkdownStyle())
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

// fieldFlags are the --title/--ingredients/--instructions flags of add and edit.
type fieldFlags struct {
	model.Fields
}

func (ff *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ff.Title, "title", "t", "", "recipe title")
	cmd.Flags().StringVarP(&ff.Ingredients, "ingredients", "i", "", "ingredients, comma separated")
	cmd.Flags().StringVarP(&ff.Instructions, "instructions", "s", "", "preparation instructions")
}

// overlay copies the flags the user set onto f.
func (ff *fieldFlags) overlay(cmd *cobra.Command, f model.Fields) model.Fields {
	if cmd.Flags().Changed("title") {
		f.Title = ff.Title
	}
	if cmd.Flags().Changed("ingredients") {
		f.Ingredients = ff.Ingredients
	}
	if cmd.Flags().Changed("instructions") {
		f.Instructions = ff.Instructions
	}
	return f
}

func newAddCmd(a *app) *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Long: `Add a recipe. All three fields are required; on a terminal a form asks
for the ones not given as flags.`,
		Args: exactArgs(0, "add --title ... --ingredients ... --instructions ..."),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.store.BeginCreate()
			f := ff.overlay(cmd, a.store.Form().Fields)
			return a.submit(cmd, f, f.Validate() != nil)
		},
	}
	ff.register(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a recipe",
		Long: `Edit a recipe. Flags replace single fields; on a terminal, running without
flags opens a form pre-filled with the current recipe.`,
		Args: exactArgs(1, "edit <id> [--title ...] [--ingredients ...] [--instructions ...]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.store.BeginEdit(model.ID(args[0])) {
				return unknownID(args[0])
			}
			f := ff.overlay(cmd, a.store.Form().Fields)
			noFlags := !cmd.Flags().Changed("title") && !cmd.Flags().Changed("ingredients") && !cmd.Flags().Changed("instructions")
			return a.submit(cmd, f, noFlags || f.Validate() != nil)
		},
	}
	ff.register(cmd)
	return cmd
}

// submit saves f through the open form, prompting first when ask is set
// and a terminal is available.
func (a *app) submit(cmd *cobra.Command, f model.Fields, ask bool) error {
	form := a.store.Form()
	if ask && a.opt.Interactive() {
		if err := a.opt.Prompt(form.Heading(), &f); err != nil {
			a.store.CancelForm()
			return err
		}
	}
	a.store.SetFormFields(f)
	saved, err := a.store.SubmitForm(cmd.Context())
	if err != nil {
		return err
	}
	verb := "added"
	if form.State == recipes.FormEditing {
		verb = "updated"
	}
	ui.OK(fmt.Sprintf("%s %s (id %s)", verb, saved.Title, saved.ID))
	return nil
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a recipe",
		Args:    exactArgs(1, "rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := a.store.Delete(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return err
			}
			if !deleted {
				return unknownID(args[0])
			}
			ui.OK("removed")
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every recipe as json, yaml or toml",
		Args:  exactArgs(0, "export [--format json|yaml|toml] [--output file]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := exportFormat(format, output)
			if err != nil {
				return err
			}
			if output == "" {
				return exchange.Encode(cmd.OutOrStdout(), f, a.store.All())
			}
			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := exchange.Encode(out, f, a.store.All()); err != nil {
				_ = out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("exported %d recipes to %s", a.store.Len(), output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or toml (default from --output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")
	return cmd
}

func exportFormat(format, output string) (exchange.Format, error) {
	if format != "" {
		f, err := exchange.ParseFormat(format)
		if err != nil {
			return "", &usageError{msg: err.Error()}
		}
		return f, nil
	}
	if output != "" {
		if f, err := exchange.FormatFromPath(output); err == nil {
			return f, nil
		}
	}
	return exchange.JSON, nil
}

func newImportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file|pattern>...",
		Short: "Add every recipe of json, yaml or toml files",
		Long: `Add every recipe of json, yaml or toml files. Patterns such as
"backup/**/*.yaml" are expanded. Imported recipes get new ids; entries with
a missing field are skipped.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: recipes import <file|pattern>... [--format json|yaml|toml]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args)
			if err != nil {
				return err
			}
			added := 0
			for _, path := range paths {
				n, err := a.importFile(cmd, path, format)
				added += n
				if err != nil {
					return err
				}
			}
			ui.OK(fmt.Sprintf("imported %d recipes", added))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or toml (default from the file extension)")
	return cmd
}

// expandInputs resolves glob patterns (with ** support) to files.
func expandInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, usagef("bad pattern %q: %v", arg, err)
		}
		if len(matches) == 0 {
			return nil, usagef("no files match %s", arg)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func (a *app) importFile(cmd *cobra.Command, path, format string) (int, error) {
	f, err := importFormat(format, path)
	if err != nil {
		return 0, err
	}
	in, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()
	rs, err := exchange.Decode(in, f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	res, err := exchange.Import(cmd.Context(), a.store, rs)
	for _, s := range res.Skipped {
		ui.Hint(fmt.Sprintf("%s: skipped entry %d %q: %s", path, s.Index+1, s.Title, report(s.Err)))
	}
	a.log.Info("imported recipes", "file", path, "added", len(res.Added), "skipped", len(res.Skipped))
	return len(res.Added), err
}

func importFormat(format, path string) (exchange.Format, error) {
	var (
		f   exchange.Format
		err error
	)
	if format != "" {
		f, err = exchange.ParseFormat(format)
	} else {
		f, err = exchange.FormatFromPath(path)
	}
	if err != nil {
		return "", &usageError{msg: err.Error(), hint: "Hint: pass --format json, yaml or toml"}
	}
	return f, nil
}
