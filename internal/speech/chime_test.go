package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/ottostep/internal/logger"
)

type recordingPlayer struct {
	mu    sync.Mutex
	wavs  [][]byte
	err   error
	delay time.Duration
}

func (p *recordingPlayer) Play(ctx context.Context, wav []byte) error {
	time.Sleep(p.delay)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wavs = append(p.wavs, wav)
	return p.err
}

func (p *recordingPlayer) Stop() {}

func (p *recordingPlayer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.wavs)
}

func TestToneWAV(t *testing.T) {
	wav := ToneWAV(ToneFrequency, 100*time.Millisecond, 50*time.Millisecond, 2)

	pcm, err := extractPCM(wav)
	if err != nil {
		t.Fatalf("extractPCM: %v", err)
	}
	wantSamples := 2*SampleRate/10 + SampleRate/20
	if len(pcm) != wantSamples*2 {
		t.Errorf("pcm bytes = %d, want %d", len(pcm), wantSamples*2)
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != SampleRate {
		t.Errorf("sample rate = %d", rate)
	}

	// The gap between beeps is silent.
	gapStart := (SampleRate / 10) * 2
	for i := gapStart; i < gapStart+SampleRate/20*2; i++ {
		if pcm[i] != 0 {
			t.Fatalf("gap byte %d = %d, want 0", i, pcm[i])
		}
	}
}

func TestChimeBellWithoutPlayer(t *testing.T) {
	var bell bytes.Buffer
	c := NewChime(nil, logger.New(logger.LevelOff, nil), WithBell(&bell))

	if err := c.Ring(); err != nil {
		t.Fatalf("Ring: %v", err)
	}
	if bell.String() != "\a" {
		t.Errorf("bell = %q", bell.String())
	}
}

func TestChimePlaysTone(t *testing.T) {
	p := &recordingPlayer{}
	c := NewChime(p, logger.New(logger.LevelOff, nil))

	c.Ring()
	c.Wait()

	if p.count() != 1 {
		t.Fatalf("played %d, want 1", p.count())
	}
	if !bytes.Equal(p.wavs[0], ToneWAV(ToneFrequency, ToneBeep, ToneGap, ToneBeeps)) {
		t.Error("expected the fallback tone")
	}
}

func TestChimeDropsOverlappingRings(t *testing.T) {
	p := &recordingPlayer{delay: 50 * time.Millisecond}
	c := NewChime(p, logger.New(logger.LevelOff, nil))

	c.Ring()
	c.Ring()
	c.Wait()

	if p.count() != 1 {
		t.Errorf("played %d, want 1", p.count())
	}
}

func TestChimePlaybackErrorRingsBell(t *testing.T) {
	var bell bytes.Buffer
	p := &recordingPlayer{err: errors.New("device gone")}
	c := NewChime(p, logger.New(logger.LevelOff, nil), WithBell(&bell))

	c.Ring()
	c.Wait()

	if bell.String() != "\a" {
		t.Errorf("bell = %q", bell.String())
	}
}

func TestChimeSoundAsset(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(logger.LevelOff, nil)

	custom := encodeWAV([]byte{1, 0, 2, 0})
	good := filepath.Join(dir, "ding.wav")
	if err := os.WriteFile(good, custom, 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(bad, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	tone := ToneWAV(ToneFrequency, ToneBeep, ToneGap, ToneBeeps)

	tests := []struct {
		name string
		path string
		want []byte
	}{
		{"custom asset", good, custom},
		{"invalid asset falls back", bad, tone},
		{"missing asset falls back", filepath.Join(dir, "nope.wav"), tone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChime(&recordingPlayer{}, log, WithSoundAsset(tt.path))
			if !bytes.Equal(c.sound, tt.want) {
				t.Errorf("loaded %d bytes, want %d", len(c.sound), len(tt.want))
			}
		})
	}
}
