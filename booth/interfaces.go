// Package booth captures microphone audio into discrete, replayable
// takes.
package booth

import (
	"context"
	"time"
)

// Stream is an open microphone capture session. Chunks delivers raw PCM
// as it arrives; Stop ends the capture and releases the device, closing
// the chunk channel once the final chunk has been delivered.
type Stream interface {
	Chunks() <-chan []byte
	Stop()
}

// CaptureDevice is the external microphone capability. RequestMicrophone
// may fail (permission denied, no device); failures leave no capture
// running.
type CaptureDevice interface {
	RequestMicrophone(ctx context.Context) (Stream, error)
}

// Clip is an opaque playable-audio handle. Bytes returns the underlying
// PCM for playback or saving; it fails once the clip has been released.
type Clip interface {
	Bytes() ([]byte, error)
}

// ClipStore allocates and releases playable clips. Each created clip
// must be released exactly once; releasing twice is an error the store
// reports.
type ClipStore interface {
	Create(data []byte) (Clip, error)
	Release(c Clip) error
}

// Saver persists a clip to disk under the given filename.
type Saver interface {
	Save(c Clip, filename string) error
}

// Take is a single completed recording. The containing controller
// exclusively owns the clip handle and releases it exactly once, on
// delete or on teardown.
type Take struct {
	ID        string        // Time-based, unique across the session
	Clip      Clip          // Playable audio handle
	CreatedAt time.Time     // When capture stopped
	Duration  time.Duration // Wall-clock capture length
}
