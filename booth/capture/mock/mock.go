// Package mock provides a scripted capture device for tests and for
// demo runs on machines without a microphone.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/voxlabs/voxbooth/booth"
)

// Device implements booth.CaptureDevice with configurable behavior.
type Device struct {
	mu sync.Mutex

	requestErr   error
	chunk        []byte
	chunkEvery   time.Duration
	requestCalls int
	streams      []*Stream
}

// NewDevice creates a mock device that emits 1 KiB chunks every 20ms
// while a stream is open.
func NewDevice() *Device {
	return &Device{
		chunk:      make([]byte, 1024),
		chunkEvery: 20 * time.Millisecond,
	}
}

// RequestMicrophone opens a new scripted stream, or fails when a request
// error has been injected.
func (d *Device) RequestMicrophone(ctx context.Context) (booth.Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requestCalls++
	if d.requestErr != nil {
		return nil, d.requestErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := newStream(d.chunk, d.chunkEvery)
	d.streams = append(d.streams, s)
	return s, nil
}

// Test control methods

// SetRequestError makes the next microphone requests fail with err.
func (d *Device) SetRequestError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requestErr = err
}

// SetChunk sets the payload emitted on each tick.
func (d *Device) SetChunk(chunk []byte, every time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chunk = chunk
	d.chunkEvery = every
}

// RequestCalls returns the number of microphone requests seen.
func (d *Device) RequestCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requestCalls
}

// OpenStreams returns how many streams are still capturing.
func (d *Device) OpenStreams() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	open := 0
	for _, s := range d.streams {
		if !s.stopped() {
			open++
		}
	}
	return open
}

// Stream emits a chunk per tick until stopped.
type Stream struct {
	ch   chan []byte
	done chan struct{}
	once sync.Once

	mu       sync.Mutex
	isClosed bool
}

func newStream(chunk []byte, every time.Duration) *Stream {
	s := &Stream{
		ch:   make(chan []byte, 16),
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.ch)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				// Final chunk before the channel closes, matching a
				// device that flushes its buffer on stop.
				s.ch <- append([]byte(nil), chunk...)
				return
			case <-ticker.C:
				payload := append([]byte(nil), chunk...)
				select {
				case s.ch <- payload:
				case <-s.done:
					return
				}
			}
		}
	}()

	return s
}

// Chunks returns the chunk channel.
func (s *Stream) Chunks() <-chan []byte {
	return s.ch
}

// Stop ends the capture; the chunk channel closes after the final chunk.
func (s *Stream) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		s.isClosed = true
		s.mu.Unlock()
	})
}

func (s *Stream) stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isClosed
}
