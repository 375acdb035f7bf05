package audio

import (
	"errors"
	"testing"
)

// TestMockPlayerLifecycle tests the play/stop/close flags.
func TestMockPlayerLifecycle(t *testing.T) {
	p := NewMockPlayer()

	if p.IsPlaying() {
		t.Fatal("new player should be idle")
	}

	if err := p.Play([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Play() = %v", err)
	}
	if !p.IsPlaying() {
		t.Error("IsPlaying() = false after Play")
	}

	p.Stop()
	if p.IsPlaying() {
		t.Error("IsPlaying() = true after Stop")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := p.Play([]byte{1}); !errors.Is(err, ErrClosed) {
		t.Errorf("Play() after Close = %v, want ErrClosed", err)
	}
}

// TestMockPlayerRejectsEmpty tests the empty-payload guard.
func TestMockPlayerRejectsEmpty(t *testing.T) {
	p := NewMockPlayer()
	if err := p.Play(nil); !errors.Is(err, ErrNoAudio) {
		t.Errorf("Play(nil) = %v, want ErrNoAudio", err)
	}
	if p.IsPlaying() {
		t.Error("rejected Play left the player playing")
	}
}
