package audio

import "sync"

// MockPlayer implements Player for tests and for machines without an
// output device.
type MockPlayer struct {
	mu      sync.Mutex
	playing bool
	closed  bool

	playCalls int
	stopCalls int
	lastPCM   []byte
}

// NewMockPlayer creates an idle mock player.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records the PCM and flips the playing flag.
func (p *MockPlayer) Play(pcm []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if len(pcm) == 0 {
		return ErrNoAudio
	}
	p.playCalls++
	p.lastPCM = pcm
	p.playing = true
	return nil
}

// Stop clears the playing flag.
func (p *MockPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCalls++
	p.playing = false
}

// IsPlaying reports the mock playing flag.
func (p *MockPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Close marks the player closed.
func (p *MockPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	p.closed = true
	return nil
}

// PlayCalls returns the number of Play invocations.
func (p *MockPlayer) PlayCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playCalls
}

// LastPCM returns the most recent payload passed to Play.
func (p *MockPlayer) LastPCM() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPCM
}
