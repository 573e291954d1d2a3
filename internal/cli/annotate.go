package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottostep/internal/annotate"
	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/recipe"
)

func NewAnnotateCmd(deps *Dependencies) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "annotate <recipe-id | file.yaml | ->",
		Short: "Print the annotated steps of a recipe",
		Long:  "Annotate a recipe and print what was extracted from each instruction. Pass - to read one instruction per line from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveRecipe(cmd.Context(), deps, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			steps := annotate.Build(r.Instructions)
			out := cmd.OutOrStdout()
			if len(steps) == 0 {
				fmt.Fprintln(out, domain.ErrNoSteps)
				return nil
			}

			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(steps); err != nil {
					return fmt.Errorf("encoding steps: %w", err)
				}
				return enc.Close()
			case "text":
				writeStepsText(out, r.Name, steps)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	return cmd
}

// resolveRecipe accepts a recipe id, a path to a YAML recipe, or "-" for
// instructions on stdin.
func resolveRecipe(ctx context.Context, deps *Dependencies, arg string, stdin io.Reader) (*domain.Recipe, error) {
	if arg == "-" {
		return readInstructions(stdin)
	}

	ext := strings.ToLower(filepath.Ext(arg))
	if ext == ".yaml" || ext == ".yml" {
		if _, err := os.Stat(arg); err == nil {
			return recipe.LoadFile(arg)
		}
	}

	r, err := deps.Recipes.Get(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("%w (try 'ottostep list')", err)
	}
	return r, nil
}

func readInstructions(r io.Reader) (*domain.Recipe, error) {
	rec := &domain.Recipe{ID: "stdin", Name: "stdin"}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			rec.Instructions = append(rec.Instructions, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading instructions: %w", err)
	}
	return rec, nil
}

func writeStepsText(w io.Writer, name string, steps []domain.Step) {
	fmt.Fprintf(w, "%s (%d steps)\n", name, len(steps))
	for _, s := range steps {
		fmt.Fprintf(w, "\nStep %d [%s]", s.Index+1, s.Difficulty)
		if s.HasTime() {
			fmt.Fprintf(w, " ~%d min", s.Minutes())
		}
		if s.Temperature != nil {
			fmt.Fprintf(w, " %d°", *s.Temperature)
		}
		fmt.Fprintf(w, "\n  %s\n", s.Instruction)

		list := func(label string, items []string) {
			if len(items) > 0 {
				fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(items, ", "))
			}
		}
		list("techniques", s.Techniques)
		list("equipment", s.Equipment)
		for _, tip := range s.Tips {
			fmt.Fprintf(w, "  tip: %s\n", tip)
		}
		for _, warn := range s.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
		if s.NextStepPrep != "" {
			fmt.Fprintf(w, "  next: %s\n", s.NextStepPrep)
		}
	}
}
