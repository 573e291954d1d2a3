package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrNoSteps       = errors.New("no instructions available")
	ErrNoAudioDevice = errors.New("no audio device")
)
