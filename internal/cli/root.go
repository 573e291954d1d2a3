// Package cli defines the ottostep command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottostep/internal/config"
	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
	"github.com/hammamikhairi/ottostep/internal/recipe"
	"github.com/hammamikhairi/ottostep/internal/speech"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// Dependencies are shared by every command. Log and Recipes are built in
// the root pre-run unless already set.
type Dependencies struct {
	Config  *config.Config
	Log     *logger.Logger
	Recipes domain.RecipeSource

	// OpenAudio opens the sound device for cook. Nil uses the system
	// device; returning nil means no audio.
	OpenAudio func(log *logger.Logger) *speech.Player

	logFile io.Closer
}

// NewRootCmd builds the command tree.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var (
		verbose   bool
		quiet     bool
		logFile   string
		recipeDir string
	)

	rootCmd := &cobra.Command{
		Use:           "ottostep",
		Short:         "Step-by-step cooking sessions in the terminal",
		Long:          "OttoStep annotates recipe instructions with timing, temperature, technique and safety hints, then walks you through them one step at a time with timers.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if deps.Log == nil {
				level := logger.ParseLevel(deps.Config.LogLevel)
				if verbose {
					level = logger.LevelVerbose
				}
				if quiet {
					level = logger.LevelOff
				}
				if logFile == "" {
					logFile = deps.Config.LogFile
				}
				deps.Log = deps.openLog(level, logFile, cmd.ErrOrStderr())
			}

			if deps.OpenAudio == nil {
				deps.OpenAudio = openAudio
			}
			if deps.Recipes == nil {
				if recipeDir == "" {
					recipeDir = deps.Config.RecipeDir
				}
				deps.Recipes = loadRecipes(recipeDir, deps.Log.Named("recipes"))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if deps.logFile != nil {
				deps.logFile.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&verbose, "verbose", false, "enable verbose/debug logging")
	flags.BoolVar(&quiet, "quiet", false, "disable all logging")
	flags.StringVar(&logFile, "log-file", "", `file to write logs to (use "stderr" to log to console)`)
	flags.StringVar(&recipeDir, "recipe-dir", "", "directory of YAML recipes to add to the built-in ones")

	rootCmd.AddCommand(NewCookCmd(deps))
	rootCmd.AddCommand(NewAnnotateCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))

	return rootCmd
}

// openLog directs logs to a file by default so the TUI stays clean.
func (d *Dependencies) openLog(level logger.Level, path string, stderr io.Writer) *logger.Logger {
	if path == "" || path == "stderr" || level == logger.LevelOff {
		return logger.New(level, stderr)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return logger.New(level, stderr)
	}
	d.logFile = f
	return logger.New(level, f)
}

// loadRecipes puts user recipes ahead of the built-in ones.
func loadRecipes(dir string, log *logger.Logger) domain.RecipeSource {
	builtin := recipe.NewBuiltinSource(log)
	if dir == "" {
		return builtin
	}
	user, err := recipe.LoadDir(dir, log)
	if err != nil {
		log.Warn("recipe dir %s: %v", dir, err)
	}
	return recipe.Chain{user, builtin}
}
