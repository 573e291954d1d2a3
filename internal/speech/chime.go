package speech

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/hammamikhairi/ottostep/internal/logger"
)

// Fallback tone used when no custom sound asset is configured: three short
// 880 Hz beeps.
const (
	ToneFrequency = 880.0
	ToneBeep      = 150 * time.Millisecond
	ToneGap       = 90 * time.Millisecond
	ToneBeeps     = 3
)

// Ringer sounds an audible alert.
type Ringer interface {
	Ring() error
}

// ChimeOption configures the Chime.
type ChimeOption func(*Chime)

// WithSoundAsset uses a WAV file instead of the generated tone. The file
// must be 16-bit mono PCM at SampleRate.
func WithSoundAsset(path string) ChimeOption {
	return func(c *Chime) {
		c.assetPath = path
	}
}

// WithBell sets where the terminal bell is written when there is no audio
// device. Defaults to stdout.
func WithBell(w io.Writer) ChimeOption {
	return func(c *Chime) {
		c.bell = w
	}
}

// Compile-time interface check.
var _ Ringer = (*Chime)(nil)

// Chime plays the timer alert. With a nil player it rings the terminal bell.
// Rings are asynchronous; a ring while one is already playing is dropped.
type Chime struct {
	player    AudioPlayer
	assetPath string
	sound     []byte
	bell      io.Writer
	log       *logger.Logger

	mu      sync.Mutex
	ringing bool
	wg      sync.WaitGroup
}

// NewChime creates a chime. player may be nil.
func NewChime(player AudioPlayer, log *logger.Logger, opts ...ChimeOption) *Chime {
	c := &Chime{
		player: player,
		bell:   os.Stdout,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sound = c.loadSound()
	return c
}

// Ring starts the alert and returns immediately.
func (c *Chime) Ring() error {
	if c.player == nil {
		_, err := io.WriteString(c.bell, "\a")
		return err
	}

	c.mu.Lock()
	if c.ringing {
		c.mu.Unlock()
		c.log.Debug("chime: already ringing")
		return nil
	}
	c.ringing = true
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.player.Play(context.Background(), c.sound); err != nil {
			c.log.Warn("chime: playback failed, ringing bell: %v", err)
			io.WriteString(c.bell, "\a")
		}
		c.mu.Lock()
		c.ringing = false
		c.mu.Unlock()
	}()
	return nil
}

// Wait blocks until any ring in progress finishes.
func (c *Chime) Wait() {
	c.wg.Wait()
}

func (c *Chime) loadSound() []byte {
	if c.assetPath == "" {
		return ToneWAV(ToneFrequency, ToneBeep, ToneGap, ToneBeeps)
	}
	data, err := os.ReadFile(c.assetPath)
	if err == nil {
		_, err = extractPCM(data)
	}
	if err != nil {
		c.log.Warn("chime: sound asset %s unusable, using tone: %v", c.assetPath, err)
		return ToneWAV(ToneFrequency, ToneBeep, ToneGap, ToneBeeps)
	}
	c.log.Debug("chime: loaded %s (%d bytes)", c.assetPath, len(data))
	return data
}

// ToneWAV renders count sine beeps separated by gap as a WAV file.
func ToneWAV(freq float64, beep, gap time.Duration, count int) []byte {
	beepSamples := int(beep.Seconds() * SampleRate)
	gapSamples := int(gap.Seconds() * SampleRate)
	total := count*beepSamples + max(count-1, 0)*gapSamples

	pcm := make([]byte, 0, total*2)
	sample := make([]byte, 2)
	for b := range count {
		for i := range beepSamples {
			// Short linear fade at both ends avoids clicks.
			env := 1.0
			if fade := SampleRate / 200; i < fade {
				env = float64(i) / float64(fade)
			} else if i > beepSamples-fade {
				env = float64(beepSamples-i) / float64(fade)
			}
			v := 0.4 * env * math.Sin(2*math.Pi*freq*float64(i)/SampleRate)
			binary.LittleEndian.PutUint16(sample, uint16(int16(v*math.MaxInt16)))
			pcm = append(pcm, sample...)
		}
		if b < count-1 {
			pcm = append(pcm, make([]byte, gapSamples*2)...)
		}
	}
	return encodeWAV(pcm)
}

// String implements fmt.Stringer for log lines.
func (c *Chime) String() string {
	if c.player == nil {
		return "chime(bell)"
	}
	if c.assetPath != "" {
		return fmt.Sprintf("chime(%s)", c.assetPath)
	}
	return "chime(tone)"
}
