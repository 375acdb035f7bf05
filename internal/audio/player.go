// Package audio plays back recorded takes through the system output
// device.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Playback errors.
var (
	ErrNoAudio = errors.New("no audio data to play")
	ErrClosed  = errors.New("player has been closed")
)

// Player is the take playback interface the UI depends on.
type Player interface {
	Play(pcm []byte) error
	Stop()
	IsPlaying() bool
	Close() error
}

// OtoPlayer implements Player on top of an oto context. The context is
// created once; each Play stops the previous take first, so at most one
// take is audible at a time.
type OtoPlayer struct {
	context *oto.Context

	mu      sync.Mutex
	current *oto.Player
	// active keeps the playing PCM reachable; oto reads it
	// incrementally and the GC must not collect it mid-playback.
	active []byte
	closed bool
}

// Config holds playback parameters. Capture and playback share the same
// PCM framing.
type Config struct {
	SampleRate int `yaml:"sample_rate" env:"VOXBOOTH_AUDIO_SAMPLE_RATE" envDefault:"44100"`
	Channels   int `yaml:"channels" env:"VOXBOOTH_AUDIO_CHANNELS" envDefault:"1"`
}

// DefaultConfig returns 44.1kHz mono, the booth's capture format.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, Channels: 1}
}

// NewOtoPlayer creates the playback context. Failure here means the
// machine has no usable output device; callers treat playback as an
// unsupported capability rather than an error.
func NewOtoPlayer(cfg Config) (*OtoPlayer, error) {
	if cfg.SampleRate != 44100 && cfg.SampleRate != 48000 {
		return nil, fmt.Errorf("sample rate must be 44100 or 48000 Hz, got %d", cfg.SampleRate)
	}
	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, fmt.Errorf("channels must be 1 or 2, got %d", cfg.Channels)
	}

	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		return nil, errors.New("audio context did not become ready")
	}

	return &OtoPlayer{context: ctx}, nil
}

// Play starts playback of raw PCM, superseding any take already
// playing.
func (p *OtoPlayer) Play(pcm []byte) error {
	if len(pcm) == 0 {
		return ErrNoAudio
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	p.stopLocked()

	p.active = pcm
	p.current = p.context.NewPlayer(bytes.NewReader(pcm))
	p.current.Play()
	return nil
}

// Stop halts playback. Safe to call when nothing is playing.
func (p *OtoPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *OtoPlayer) stopLocked() {
	if p.current != nil {
		p.current.Pause()
		_ = p.current.Close()
		p.current = nil
		p.active = nil
	}
}

// IsPlaying reports whether a take is currently audible.
func (p *OtoPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && p.current.IsPlaying()
}

// Close stops playback and marks the player unusable. The oto context
// itself has no close; it lives for the process.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.closed = true
	return nil
}
