package booth

import "errors"

// Common errors for the recording booth.
var (
	ErrUnsupported    = errors.New("audio capture is not available")
	ErrMicrophone     = errors.New("microphone request failed")
	ErrControllerDown = errors.New("booth controller has been closed")
)
