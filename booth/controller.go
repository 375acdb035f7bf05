package booth

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Controller owns the booth state: the recording flag, the take list
// (newest first), the transient capture buffer and the capture start
// timestamp. It exclusively owns the microphone stream and every take's
// clip handle.
type Controller struct {
	device CaptureDevice
	store  ClipStore
	saver  Saver

	mu        sync.Mutex
	machine   *StateMachine
	takes     []Take
	chunks    [][]byte
	startedAt time.Time
	stream    Stream
	drained   chan struct{}
	lastID    int64
	closed    bool

	onTakesChange func()
	onError       func(error)

	logger *log.Logger
}

// NewController creates a booth controller. A nil device means the
// capture capability is unsupported: StartRecording becomes a no-op and
// the UI disables the controls. Store must be non-nil; saver may be nil
// when saving to disk is unavailable.
func NewController(device CaptureDevice, store ClipStore, saver Saver, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		device:  device,
		store:   store,
		saver:   saver,
		machine: NewStateMachine(),
		logger:  logger.With("component", "booth"),
	}
}

// Supported reports whether a capture device is available.
func (c *Controller) Supported() bool {
	return c.device != nil
}

// State returns the current booth state.
func (c *Controller) State() StateType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Current()
}

// Recording reports whether audio is currently being captured.
func (c *Controller) Recording() bool {
	return c.State() == StateCapturing
}

// OnTakesChange registers a callback fired whenever the take list
// changes.
func (c *Controller) OnTakesChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTakesChange = fn
}

// OnError registers a callback for capture failures.
func (c *Controller) OnError(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// StartRecording requests the microphone and begins buffering chunks.
// It is a no-op when the capability is unsupported or a capture is
// already active. A failed microphone request is reported and leaves the
// booth Idle with no partial take.
func (c *Controller) StartRecording(ctx context.Context) error {
	if c.device == nil {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerDown
	}
	if !c.machine.Transition(StateRequesting) {
		c.mu.Unlock()
		return nil // already requesting or capturing
	}
	c.mu.Unlock()

	stream, err := c.device.RequestMicrophone(ctx)
	if err != nil {
		c.mu.Lock()
		c.machine.Transition(StateIdle)
		c.mu.Unlock()

		wrapped := fmt.Errorf("%w: %v", ErrMicrophone, err)
		c.logger.Warn("microphone request failed", "err", err)
		c.report(wrapped)
		return wrapped
	}

	drained := make(chan struct{})

	c.mu.Lock()
	if c.closed {
		// Closed while the request was in flight; give the device back.
		c.mu.Unlock()
		stream.Stop()
		return ErrControllerDown
	}
	c.stream = stream
	c.drained = drained
	c.chunks = nil
	c.startedAt = time.Now()
	c.machine.Transition(StateCapturing)
	c.mu.Unlock()

	go c.drain(stream, drained)

	c.logger.Debug("capture started")
	return nil
}

// drain buffers capture chunks until the stream closes its channel.
func (c *Controller) drain(stream Stream, done chan struct{}) {
	defer close(done)
	for chunk := range stream.Chunks() {
		c.mu.Lock()
		c.chunks = append(c.chunks, chunk)
		c.mu.Unlock()
	}
}

// StopRecording stops the capture, assembles the buffered chunks into a
// playable clip and prepends a new take to the list. Calling it when not
// recording is a no-op.
func (c *Controller) StopRecording() error {
	c.mu.Lock()
	if !c.machine.Transition(StateStopping) {
		c.mu.Unlock()
		return nil // not capturing
	}
	stream := c.stream
	drained := c.drained
	c.stream = nil
	c.drained = nil
	c.mu.Unlock()

	// Stop the device and wait for the final chunk to land.
	stream.Stop()
	<-drained

	c.mu.Lock()
	var duration time.Duration
	if !c.startedAt.IsZero() {
		duration = time.Since(c.startedAt)
	}
	data := bytes.Join(c.chunks, nil)
	c.chunks = nil
	c.startedAt = time.Time{}
	c.machine.Transition(StateIdle)
	c.mu.Unlock()

	clip, err := c.store.Create(data)
	if err != nil {
		wrapped := fmt.Errorf("assembling take: %w", err)
		c.logger.Error("take assembly failed", "err", err)
		c.report(wrapped)
		return wrapped
	}

	take := Take{
		ID:        c.newTakeID(),
		Clip:      clip,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	c.mu.Lock()
	if c.closed {
		// Close landed while we were waiting on the drain; the take
		// list is already torn down, so the clip must not outlive it.
		c.mu.Unlock()
		if err := c.store.Release(clip); err != nil {
			c.logger.Error("clip release failed", "id", take.ID, "err", err)
		}
		return ErrControllerDown
	}
	c.takes = append([]Take{take}, c.takes...)
	notify := c.onTakesChange
	c.mu.Unlock()

	c.logger.Info("take recorded", "id", take.ID, "duration", duration, "bytes", len(data))
	if notify != nil {
		notify()
	}
	return nil
}

// newTakeID returns a time-based identifier unique across the session.
// Clock ties (or a clock stepping backwards) fall back to a strictly
// increasing counter.
func (c *Controller) newTakeID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := time.Now().UnixNano()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return fmt.Sprintf("%d", id)
}

// Takes returns a snapshot of the take list, newest first.
func (c *Controller) Takes() []Take {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Take(nil), c.takes...)
}

// Take returns the take with the given identifier.
func (c *Controller) Take(id string) (Take, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.takes {
		if t.ID == id {
			return t, true
		}
	}
	return Take{}, false
}

// DeleteTake removes the identified take and releases its clip. An
// unknown identifier is treated as already satisfied, not an error.
func (c *Controller) DeleteTake(id string) {
	c.mu.Lock()
	var clip Clip
	for i, t := range c.takes {
		if t.ID == id {
			clip = t.Clip
			c.takes = append(c.takes[:i], c.takes[i+1:]...)
			break
		}
	}
	notify := c.onTakesChange
	c.mu.Unlock()

	if clip == nil {
		return
	}
	if err := c.store.Release(clip); err != nil {
		c.logger.Error("clip release failed", "id", id, "err", err)
	}
	if notify != nil {
		notify()
	}
}

// SaveTake writes the identified take to disk as take-<id>.wav. An
// unknown identifier is a no-op.
func (c *Controller) SaveTake(id string) error {
	if c.saver == nil {
		return nil
	}
	take, ok := c.Take(id)
	if !ok {
		return nil
	}
	if err := c.saver.Save(take.Clip, fmt.Sprintf("take-%s.wav", id)); err != nil {
		wrapped := fmt.Errorf("saving take %s: %w", id, err)
		c.logger.Error("take save failed", "id", id, "err", err)
		c.report(wrapped)
		return wrapped
	}
	c.logger.Info("take saved", "id", id)
	return nil
}

// Close stops any in-flight capture and releases every remaining clip
// exactly once. Safe to call twice.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	stream := c.stream
	drained := c.drained
	c.stream = nil
	c.drained = nil
	takes := c.takes
	c.takes = nil
	c.chunks = nil
	if c.machine.Transition(StateStopping) {
		c.machine.Transition(StateIdle)
	}
	c.mu.Unlock()

	if stream != nil {
		stream.Stop()
		<-drained
	}
	for _, t := range takes {
		if err := c.store.Release(t.Clip); err != nil {
			c.logger.Error("clip release failed during teardown", "id", t.ID, "err", err)
		}
	}
}

func (c *Controller) report(err error) {
	c.mu.Lock()
	notify := c.onError
	c.mu.Unlock()
	if notify != nil {
		notify(err)
	}
}
