package speech

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
)

// Synthesizer turns text into WAV audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Voice() string
}

// NarratorOption configures the Narrator.
type NarratorOption func(*Narrator)

// WithCache replaces the default in-memory audio cache.
func WithCache(c *AudioCache) NarratorOption {
	return func(n *Narrator) {
		n.cache = c
	}
}

// Compile-time interface check.
var _ domain.Narrator = (*Narrator)(nil)

// Narrator speaks step text. There is at most one pending utterance: a new
// request cancels whatever is being synthesized or played and replaces
// anything not yet started, so rapid navigation only speaks the last step.
type Narrator struct {
	tts    Synthesizer
	player AudioPlayer
	cache  *AudioCache
	log    *logger.Logger

	mu      sync.Mutex
	pending *utterance
	cancel  context.CancelFunc // cancels the utterance in flight
	notify  chan struct{}
	spoken  int64
}

type utterance struct {
	text string
}

// NewNarrator creates a narrator. Call Start before narrating.
func NewNarrator(tts Synthesizer, player AudioPlayer, log *logger.Logger, opts ...NarratorOption) *Narrator {
	n := &Narrator{
		tts:    tts,
		player: player,
		log:    log,
		notify: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.cache == nil {
		n.cache = NewAudioCache(tts.Voice(), log)
	}
	return n
}

// Start runs the speech loop until ctx is cancelled. Non-blocking.
func (n *Narrator) Start(ctx context.Context) {
	go n.loop(ctx)
	n.log.Debug("narrator started (voice=%s)", n.tts.Voice())
}

// Narrate speaks the instruction for the given step, cancelling anything
// currently being spoken.
func (n *Narrator) Narrate(ctx context.Context, stepIndex int, text string) error {
	n.Say(LineStep(stepIndex+1, text))
	return nil
}

// Say replaces whatever is queued or playing with text.
func (n *Narrator) Say(text string) {
	n.mu.Lock()
	n.pending = &utterance{text: text}
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.mu.Unlock()

	n.player.Stop()
	select {
	case n.notify <- struct{}{}:
	default:
	}
}

// Stop silences the narrator and drops anything pending.
func (n *Narrator) Stop() {
	n.mu.Lock()
	n.pending = nil
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.mu.Unlock()
	n.player.Stop()
}

// Prefetch synthesizes texts into the cache without speaking them.
func (n *Narrator) Prefetch(ctx context.Context, texts ...string) {
	for _, text := range texts {
		if ctx.Err() != nil {
			return
		}
		if _, err := n.audio(ctx, text); err != nil {
			n.log.Warn("narrator: prefetch failed: %v", err)
		}
	}
}

// Spoken returns how many utterances played to the end.
func (n *Narrator) Spoken() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.spoken
}

func (n *Narrator) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			n.Stop()
			return
		case <-n.notify:
		}

		u, uctx, cancel := n.take(ctx)
		if u == nil {
			continue
		}
		n.speak(uctx, u.text)
		cancel()
	}
}

// take claims the pending utterance and arms a cancel func for it.
func (n *Narrator) take(ctx context.Context) (*utterance, context.Context, context.CancelFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()

	u := n.pending
	n.pending = nil
	if u == nil {
		return nil, nil, nil
	}
	uctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	return u, uctx, cancel
}

func (n *Narrator) speak(ctx context.Context, text string) {
	audio, err := n.audio(ctx, text)
	if err != nil {
		if ctx.Err() == nil {
			n.log.Error("narrator: %v", err)
		}
		return
	}
	if ctx.Err() != nil {
		n.log.Debug("narrator: superseded before playback: %s", clip(text, 40))
		return
	}
	if err := n.player.Play(ctx, audio); err != nil {
		n.log.Error("narrator: playback failed: %v", err)
		return
	}
	if ctx.Err() == nil {
		n.mu.Lock()
		n.spoken++
		n.mu.Unlock()
	}
}

func (n *Narrator) audio(ctx context.Context, text string) ([]byte, error) {
	if data, ok := n.cache.Get(text); ok {
		return data, nil
	}
	data, err := n.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("synthesizing %q: %w", clip(text, 40), err)
	}
	n.cache.Put(text, data)
	return data, nil
}
