package speech_test

import (
	"errors"
	"testing"

	"github.com/voxlabs/voxbooth/speech"
	"github.com/voxlabs/voxbooth/speech/engines/mock"
)

func newController(t *testing.T, synth speech.Synthesizer) *speech.Controller {
	t.Helper()
	c := speech.NewController(synth, speech.DefaultConfig(), nil)
	t.Cleanup(c.Close)
	return c
}

// TestUnsupportedControllerIsInert tests that a nil synthesizer disables
// every operation without errors.
func TestUnsupportedControllerIsInert(t *testing.T) {
	c := newController(t, nil)

	if c.Supported() {
		t.Fatal("controller with nil synthesizer should report unsupported")
	}

	// None of these should panic or change anything.
	c.LoadVoices()
	c.Preview("Hello world")
	c.StopPreview()

	if c.Speaking() {
		t.Error("unsupported controller should never report speaking")
	}
	if len(c.Voices()) != 0 {
		t.Error("unsupported controller should have no voices")
	}
}

// TestAutoSelectPreferredLocale tests that the first voice matching a
// preferred locale wins the default selection.
func TestAutoSelectPreferredLocale(t *testing.T) {
	synth := mock.New()
	synth.SetVoices([]speech.Voice{
		{Name: "Voix Un", Language: "fr-FR"},
		{Name: "Plain English", Language: "en-US"},
		{Name: "Another", Language: "de-DE"},
	})

	c := newController(t, synth)

	if got := c.SelectedVoice(); got != "Plain English" {
		t.Errorf("SelectedVoice() = %q, want %q", got, "Plain English")
	}
}

// TestAutoSelectFallsBackToFirstVoice tests the fallback when no voice
// matches the preferred locales.
func TestAutoSelectFallsBackToFirstVoice(t *testing.T) {
	synth := mock.New()
	synth.SetVoices([]speech.Voice{
		{Name: "Voix Un", Language: "fr-FR"},
		{Name: "Stimme Zwei", Language: "de-DE"},
	})

	c := newController(t, synth)

	if got := c.SelectedVoice(); got != "Voix Un" {
		t.Errorf("SelectedVoice() = %q, want first voice %q", got, "Voix Un")
	}
}

// TestEmptyVoiceListTolerated tests that an initially empty voice set is
// not an error and that a later voices-changed notification fills it in.
func TestEmptyVoiceListTolerated(t *testing.T) {
	synth := mock.New()
	synth.SetVoices(nil)

	c := newController(t, synth)

	if got := c.SelectedVoice(); got != "" {
		t.Errorf("SelectedVoice() = %q before any voices load, want empty", got)
	}

	// Platform finishes loading voices and signals the change.
	synth.SetVoices([]speech.Voice{{Name: "Late Voice", Language: "en-US"}})

	if got := c.SelectedVoice(); got != "Late Voice" {
		t.Errorf("SelectedVoice() = %q after voices arrive, want %q", got, "Late Voice")
	}
}

// TestSelectVoice tests explicit selection, including unknown names.
func TestSelectVoice(t *testing.T) {
	synth := mock.New()
	c := newController(t, synth)

	if err := c.SelectVoice("Mock Brian"); err != nil {
		t.Fatalf("SelectVoice(Mock Brian) = %v", err)
	}
	if got := c.SelectedVoice(); got != "Mock Brian" {
		t.Errorf("SelectedVoice() = %q, want Mock Brian", got)
	}

	if err := c.SelectVoice("Nobody"); !errors.Is(err, speech.ErrVoiceNotFound) {
		t.Errorf("SelectVoice(Nobody) = %v, want ErrVoiceNotFound", err)
	}
}

// TestPitchRateClamping tests that pitch and rate stay inside bounds.
func TestPitchRateClamping(t *testing.T) {
	tests := []struct {
		name  string
		set   float64
		want  float64
		pitch bool
	}{
		{name: "pitch below minimum", set: 0.1, want: speech.MinPitch, pitch: true},
		{name: "pitch above maximum", set: 5.0, want: speech.MaxPitch, pitch: true},
		{name: "pitch in range", set: 1.3, want: 1.3, pitch: true},
		{name: "rate below minimum", set: 0.0, want: speech.MinRate},
		{name: "rate above maximum", set: 9.9, want: speech.MaxRate},
		{name: "rate in range", set: 1.8, want: 1.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, mock.New())
			if tt.pitch {
				c.SetPitch(tt.set)
				if got := c.Pitch(); got != tt.want {
					t.Errorf("Pitch() = %v, want %v", got, tt.want)
				}
			} else {
				c.SetRate(tt.set)
				if got := c.Rate(); got != tt.want {
					t.Errorf("Rate() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// TestPreviewBlankScriptIsNoop tests that blank scripts never reach the
// synthesizer.
func TestPreviewBlankScriptIsNoop(t *testing.T) {
	synth := mock.New()
	c := newController(t, synth)

	c.Preview("")
	c.Preview("   \n\t ")

	if synth.SpeakCalls() != 0 {
		t.Errorf("Speak called %d times for blank scripts, want 0", synth.SpeakCalls())
	}
}

// TestPreviewLifecycle tests the speaking flag across start and end.
func TestPreviewLifecycle(t *testing.T) {
	synth := mock.New()
	c := newController(t, synth)

	c.Preview("Hello world")

	if !c.Speaking() {
		t.Fatal("speaking flag should be true after the start event")
	}

	u := synth.LastUtterance()
	if u.Text != "Hello world" {
		t.Errorf("utterance text = %q, want Hello world", u.Text)
	}
	if u.Voice != "Mock Aria" {
		t.Errorf("utterance voice = %q, want auto-selected Mock Aria", u.Voice)
	}

	synth.FinishCurrent()
	if c.Speaking() {
		t.Error("speaking flag should be false after the end event")
	}
}

// TestPreviewSupersedesPrior tests that a second preview cancels the
// first and leaves exactly one utterance in flight.
func TestPreviewSupersedesPrior(t *testing.T) {
	synth := mock.New()
	c := newController(t, synth)

	c.Preview("take one")
	c.Preview("take two")

	if synth.CancelCalls() < 2 { // one per preview
		t.Errorf("Cancel called %d times, want one per preview", synth.CancelCalls())
	}
	if got := synth.LastUtterance().Text; got != "take two" {
		t.Errorf("in-flight utterance = %q, want take two", got)
	}
	if !c.Speaking() {
		t.Error("speaking flag should reflect the superseding utterance")
	}

	synth.FinishCurrent()
	if c.Speaking() {
		t.Error("speaking flag should clear when the second utterance ends")
	}
}

// TestStopPreviewIdempotent tests that stopping is safe when idle and
// that stale end events are ignored afterwards.
func TestStopPreviewIdempotent(t *testing.T) {
	synth := mock.New()
	c := newController(t, synth)

	c.StopPreview() // nothing playing
	if c.Speaking() {
		t.Fatal("StopPreview on idle controller should leave speaking false")
	}

	c.Preview("Hello")
	c.StopPreview()
	c.StopPreview()

	if c.Speaking() {
		t.Error("speaking flag should be false after StopPreview")
	}

	// A straggler event from the cancelled utterance must not resurrect
	// the flag.
	synth.FinishCurrent()
	if c.Speaking() {
		t.Error("stale end event flipped the speaking flag")
	}
}

// TestPreviewErrorClearsSpeaking tests error events reset the flag and
// reach the error callback.
func TestPreviewErrorClearsSpeaking(t *testing.T) {
	synth := mock.New()
	c := newController(t, synth)

	var reported error
	c.OnError(func(err error) { reported = err })

	c.Preview("Hello")
	boom := errors.New("device busy")
	synth.FailCurrent(boom)

	if c.Speaking() {
		t.Error("speaking flag should clear on error")
	}
	if !errors.Is(reported, boom) {
		t.Errorf("error callback got %v, want %v", reported, boom)
	}
}

// TestSpeakFailureReportsError tests synchronous Speak failures.
func TestSpeakFailureReportsError(t *testing.T) {
	synth := mock.New()
	c := newController(t, synth)

	boom := errors.New("no audio device")
	synth.SetSpeakError(boom)

	var reported error
	c.OnError(func(err error) { reported = err })

	c.Preview("Hello")

	if c.Speaking() {
		t.Error("speaking flag should stay false when Speak fails")
	}
	if !errors.Is(reported, boom) {
		t.Errorf("error callback got %v, want %v", reported, boom)
	}
}

// TestCloseDetachesSubscription tests teardown: the voices-changed
// subscription is removed and playback cancelled.
func TestCloseDetachesSubscription(t *testing.T) {
	synth := mock.New()
	c := speech.NewController(synth, speech.DefaultConfig(), nil)

	if synth.ListenerCount() != 1 {
		t.Fatalf("listener count = %d after construction, want 1", synth.ListenerCount())
	}

	c.Preview("Hello")
	c.Close()

	if synth.ListenerCount() != 0 {
		t.Errorf("listener count = %d after Close, want 0", synth.ListenerCount())
	}
	if c.Speaking() {
		t.Error("speaking flag should be false after Close")
	}

	// Close twice is safe.
	c.Close()
}
