// Package speech drives a platform speech-synthesis capability to render
// a spoken preview of the current script.
package speech

// Voice describes a synthesis voice as reported by the platform. Voices
// are selected by Name; uniqueness is best effort, not guaranteed.
type Voice struct {
	Name     string // Display name, used for selection
	Language string // BCP 47 language tag, best effort
}

// Utterance is one request to vocalize a given text with given
// pitch/rate/voice.
type Utterance struct {
	Text  string  // Text to speak
	Pitch float64 // Pitch multiplier (MinPitch to MaxPitch)
	Rate  float64 // Rate multiplier (MinRate to MaxRate)
	Voice string  // Selected voice name, empty for platform default
}

// Events carries the lifecycle callbacks for a single utterance. Any
// callback may be nil.
type Events struct {
	// OnStart fires once when audible playback begins.
	OnStart func()

	// OnEnd fires once when the utterance finishes naturally. It does
	// not fire for cancelled utterances.
	OnEnd func()

	// OnError fires when the utterance fails to play or aborts.
	OnError func(error)
}

// Synthesizer is the external speech capability. Implementations live
// under speech/engines.
type Synthesizer interface {
	// Voices returns the currently available voices. The set may be
	// empty right after startup and may change later; callers subscribe
	// via NotifyVoicesChanged.
	Voices() ([]Voice, error)

	// NotifyVoicesChanged registers fn to be called whenever the voice
	// set changes. The returned function removes the registration; it is
	// safe to call more than once.
	NotifyVoicesChanged(fn func()) (unsubscribe func())

	// Speak starts vocalizing the utterance and returns without waiting
	// for completion. Lifecycle is reported through ev.
	Speak(u Utterance, ev Events) error

	// Cancel aborts any in-flight utterance. Safe to call when nothing
	// is playing.
	Cancel()
}
