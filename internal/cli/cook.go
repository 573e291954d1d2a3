package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hammamikhairi/ottostep/internal/annotate"
	"github.com/hammamikhairi/ottostep/internal/config"
	"github.com/hammamikhairi/ottostep/internal/display"
	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/engine"
	"github.com/hammamikhairi/ottostep/internal/input"
	"github.com/hammamikhairi/ottostep/internal/logger"
	"github.com/hammamikhairi/ottostep/internal/speech"
)

type cookOptions struct {
	noSpeech    bool
	voice       bool
	autoAdvance bool
	compact     bool
	plain       bool
	diskCache   bool
	set         []string
}

func NewCookCmd(deps *Dependencies) *cobra.Command {
	var opts cookOptions

	cmd := &cobra.Command{
		Use:   "cook <recipe-id | file.yaml | ->",
		Short: "Start a guided cooking session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveRecipe(cmd.Context(), deps, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			steps := annotate.Build(r.Instructions)
			if len(steps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), domain.ErrNoSteps)
				return nil
			}

			settings, err := opts.settings(deps.Config.Settings, cmd.Flags())
			if err != nil {
				return err
			}
			return runCook(cmd, deps, r, steps, settings, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.noSpeech, "no-speech", false, "disable text-to-speech even if Azure keys are set")
	f.BoolVar(&opts.voice, "voice", false, "read each step aloud")
	f.BoolVar(&opts.autoAdvance, "auto-advance", false, "move on automatically after marking a step done")
	f.BoolVar(&opts.compact, "compact", false, "hide tips, equipment and techniques")
	f.BoolVar(&opts.plain, "plain", false, "line mode: type commands instead of using the full-screen UI")
	f.BoolVar(&opts.diskCache, "disk-cache", true, "persist TTS audio to the cache dir (existing files are read either way)")
	f.StringArrayVar(&opts.set, "set", nil, "override a setting, e.g. --set show_tips=false (repeatable)")
	return cmd
}

// settings layers --set pairs and explicit flags over the configured
// settings. Flags win.
func (o cookOptions) settings(base domain.Settings, flags *pflag.FlagSet) (domain.Settings, error) {
	patch, err := config.ParsePatch(o.set)
	if err != nil {
		return base, err
	}
	if flags.Changed("voice") {
		patch.VoiceEnabled = domain.Bool(o.voice)
	}
	if flags.Changed("auto-advance") {
		patch.AutoAdvance = domain.Bool(o.autoAdvance)
	}
	if flags.Changed("compact") {
		patch.CompactMode = domain.Bool(o.compact)
	}
	return patch.Apply(base), nil
}

func runCook(cmd *cobra.Command, deps *Dependencies, r *domain.Recipe, steps []domain.Step, settings domain.Settings, opts cookOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	log := deps.Log
	cfg := deps.Config
	out := cmd.OutOrStdout()

	player := deps.OpenAudio(log.Named("audio"))
	narrator, speaker := buildNarrator(ctx, cfg, opts, player, log)

	var chimePlayer speech.AudioPlayer
	if player != nil {
		chimePlayer = player.Channel()
	}
	chime := speech.NewChime(chimePlayer, log.Named("chime"),
		speech.WithSoundAsset(cfg.SoundAsset),
		speech.WithBell(out),
	)
	log.Info("timer alerts via %s", chime)

	// ui is assigned before the session starts ticking.
	var ui *display.UI
	notifierOpts := []speech.NotifierOption{}
	if opts.plain {
		notifierOpts = append(notifierOpts, speech.WithOutput(out))
	} else {
		notifierOpts = append(notifierOpts, speech.WithAlertHandler(func(text string) {
			if ui != nil {
				ui.Alert(text)
			}
		}))
	}
	if speaker != nil {
		notifierOpts = append(notifierOpts, speech.WithSpeaker(speaker.Say))
	}
	notifier := speech.NewAlertNotifier(chime, log.Named("alerts"), notifierOpts...)

	eng := engine.New(log.Named("engine"),
		engine.WithSettings(settings),
		engine.WithNarrator(narrator),
		engine.WithNotifier(notifier),
		engine.WithAdvanceDelay(cfg.AdvanceDelay),
		engine.WithTickInterval(cfg.TickInterval),
		engine.WithOnComplete(func() { log.Info("recipe %s complete", r.ID) }),
		engine.WithOnExit(func() { log.Info("session for %s closed", r.ID) }),
	)
	bindings := input.DefaultBindings
	adapter := input.NewAdapter(eng, bindings, log.Named("input"))
	if !opts.plain {
		ui = display.NewUI(eng, adapter, display.WithBindings(bindings))
	}

	fmt.Fprint(out, display.RenderBanner(0, speech.LineCookingStart(r.Name, len(steps))))
	fmt.Fprintln(out)

	if speaker != nil && settings.VoiceEnabled {
		go speaker.Prefetch(ctx, stepLines(steps)...)
	}

	if err := eng.Start(ctx, steps); err != nil {
		return err
	}

	if opts.plain {
		runPlain(eng, adapter, cmd.InOrStdin(), out)
	} else if _, err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}

	final := eng.State()
	if final == domain.SessionActive {
		eng.Exit()
	}
	summarize(out, eng.Snapshot(), final)
	return nil
}

// openAudio returns nil when there is no usable audio device; alerts then
// fall back to the terminal bell and narration is disabled.
func openAudio(log *logger.Logger) *speech.Player {
	p, err := speech.NewPlayer(log)
	if err != nil {
		log.Warn("audio unavailable: %v", err)
		return nil
	}
	return p
}

// buildNarrator returns the Azure-backed narrator when credentials and an
// audio device are available, otherwise a silent one. The second result is
// nil for the silent narrator.
func buildNarrator(ctx context.Context, cfg *config.Config, opts cookOptions, player *speech.Player, log *logger.Logger) (domain.Narrator, *speech.Narrator) {
	switch {
	case opts.noSpeech:
		return speech.NewNoOp(log.Named("speech")), nil
	case cfg.AzureKey == "" || cfg.AzureRegion == "":
		log.Info("TTS disabled: set %s and %s to enable", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
		return speech.NewNoOp(log.Named("speech")), nil
	case player == nil:
		log.Warn("TTS disabled: no audio device")
		return speech.NewNoOp(log.Named("speech")), nil
	}

	tts := speech.NewAzureClient(cfg.AzureKey, cfg.AzureRegion, log.Named("azure"), speech.WithVoice(cfg.Voice))
	cache := speech.NewAudioCache(tts.Voice(), log.Named("cache"), speech.WithCacheDir(cfg.CacheDir, opts.diskCache))
	n := speech.NewNarrator(tts, player.Channel(), log.Named("narrator"), speech.WithCache(cache))
	n.Start(ctx)
	log.Info("TTS enabled (voice=%s, region=%s)", tts.Voice(), cfg.AzureRegion)
	return n, n
}

func stepLines(steps []domain.Step) []string {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = speech.LineStep(i+1, s.Instruction)
	}
	return lines
}

// runPlain drives the session from typed lines until it ends or input runs
// out.
func runPlain(eng *engine.Engine, adapter *input.Adapter, in io.Reader, out io.Writer) {
	sc := bufio.NewScanner(in)
	last := -1
	for eng.State() == domain.SessionActive {
		snap := eng.Snapshot()
		if snap.Current != last {
			fmt.Fprintln(out, display.RenderStep(snap, 80))
			last = snap.Current
		}

		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return
		}

		action, ok := adapter.HandleCommand(sc.Text())
		switch {
		case action == input.ActionNone:
			fmt.Fprintln(out, "commands: next, back, done (or Enter), timer, pause, dismiss, voice, auto, sound, compact, tips, quit")
		case action == input.ActionStartTimer && !ok:
			fmt.Fprintln(out, "this step has no time to count down")
		case action == input.ActionStartTimer, action == input.ActionToggleTimer, action == input.ActionRemoveTimer:
			if bar := display.RenderTimers(eng.Timers(), 80); bar != "" {
				fmt.Fprintln(out, bar)
			}
		case action == input.ActionToggleCompact, action == input.ActionToggleTips:
			// Redraw the card with the new setting.
			last = -1
		}
	}
}

func summarize(out io.Writer, snap engine.Snapshot, final domain.SessionState) {
	done, total := snap.Progress()
	if final == domain.SessionCompleted {
		fmt.Fprintln(out, speech.LineSessionDone())
		return
	}
	fmt.Fprintf(out, "%s %d of %d steps done.\n", speech.LineExited(), done, total)
}
