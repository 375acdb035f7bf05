// Package mock provides a scriptable synthesizer for testing.
package mock

import (
	"sync"

	"github.com/voxlabs/voxbooth/speech"
)

// Synthesizer implements speech.Synthesizer with manual event control.
// Tests drive the utterance lifecycle by calling FinishCurrent or
// FailCurrent; nothing fires on its own.
type Synthesizer struct {
	mu sync.Mutex

	voices    []speech.Voice
	voicesErr error
	speakErr  error

	listeners map[int]func()
	nextID    int

	current     *speech.Events
	speakCalls  int
	cancelCalls int
	lastSpoken  speech.Utterance
}

// New creates a mock synthesizer with a small default voice set.
func New() *Synthesizer {
	return &Synthesizer{
		voices: []speech.Voice{
			{Name: "Mock Aria", Language: "en-US"},
			{Name: "Mock Brian", Language: "en-GB"},
			{Name: "Mock Chantal", Language: "fr-CA"},
		},
		listeners: make(map[int]func()),
	}
}

// Voices returns the configured voice set.
func (s *Synthesizer) Voices() ([]speech.Voice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.voicesErr != nil {
		return nil, s.voicesErr
	}
	return append([]speech.Voice(nil), s.voices...), nil
}

// NotifyVoicesChanged registers a voices-changed listener.
func (s *Synthesizer) NotifyVoicesChanged(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Speak records the utterance and immediately fires OnStart. The
// utterance stays in flight until FinishCurrent or FailCurrent.
func (s *Synthesizer) Speak(u speech.Utterance, ev speech.Events) error {
	s.mu.Lock()
	s.speakCalls++
	if s.speakErr != nil {
		err := s.speakErr
		s.mu.Unlock()
		return err
	}
	s.lastSpoken = u
	s.current = &ev
	start := ev.OnStart
	s.mu.Unlock()

	if start != nil {
		start()
	}
	return nil
}

// Cancel drops the in-flight utterance without firing events, matching a
// platform that reports nothing for cancelled utterances.
func (s *Synthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelCalls++
	s.current = nil
}

// Test control methods

// SetVoices replaces the voice set and notifies listeners.
func (s *Synthesizer) SetVoices(voices []speech.Voice) {
	s.mu.Lock()
	s.voices = append([]speech.Voice(nil), voices...)
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// SetVoicesError makes Voices fail with err.
func (s *Synthesizer) SetVoicesError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voicesErr = err
}

// SetSpeakError makes Speak fail synchronously with err.
func (s *Synthesizer) SetSpeakError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speakErr = err
}

// FinishCurrent completes the in-flight utterance naturally.
func (s *Synthesizer) FinishCurrent() {
	s.mu.Lock()
	cur := s.current
	s.current = nil
	s.mu.Unlock()

	if cur != nil && cur.OnEnd != nil {
		cur.OnEnd()
	}
}

// FailCurrent aborts the in-flight utterance with err.
func (s *Synthesizer) FailCurrent(err error) {
	s.mu.Lock()
	cur := s.current
	s.current = nil
	s.mu.Unlock()

	if cur != nil && cur.OnError != nil {
		cur.OnError(err)
	}
}

// InFlight reports whether an utterance is awaiting completion.
func (s *Synthesizer) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// SpeakCalls returns the number of Speak invocations.
func (s *Synthesizer) SpeakCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speakCalls
}

// CancelCalls returns the number of Cancel invocations.
func (s *Synthesizer) CancelCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelCalls
}

// LastUtterance returns the most recent utterance passed to Speak.
func (s *Synthesizer) LastUtterance() speech.Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSpoken
}

// ListenerCount returns the number of registered voices-changed
// listeners.
func (s *Synthesizer) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
