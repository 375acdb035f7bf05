package speech

import "errors"

// Common errors for the speech preview system.
var (
	ErrUnsupported   = errors.New("speech synthesis is not available")
	ErrVoiceNotFound = errors.New("requested voice not found")
	ErrSpeakFailed   = errors.New("utterance playback failed")
)
