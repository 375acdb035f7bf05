// Package arecord implements the booth.CaptureDevice capability on top
// of the ALSA arecord command line tool.
package arecord

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/voxlabs/voxbooth/booth"
)

const chunkSize = 4096

// Device captures raw signed 16-bit little-endian PCM from the default
// microphone by streaming arecord's stdout.
type Device struct {
	binary     string
	sampleRate int
	channels   int
	logger     *log.Logger
}

// New locates the arecord binary. Absence means the capture capability
// is unsupported on this system.
func New(sampleRate, channels int, logger *log.Logger) (*Device, error) {
	if logger == nil {
		logger = log.Default()
	}
	path, err := exec.LookPath("arecord")
	if err != nil {
		return nil, fmt.Errorf("%w: arecord not found", booth.ErrUnsupported)
	}
	return &Device{
		binary:     path,
		sampleRate: sampleRate,
		channels:   channels,
		logger:     logger.With("component", "arecord"),
	}, nil
}

// RequestMicrophone starts an arecord process. Failure to start (no
// device, busy device) is returned to the caller; nothing is captured.
func (d *Device) RequestMicrophone(ctx context.Context) (booth.Stream, error) {
	cmd := exec.CommandContext(ctx, d.binary,
		"-q",
		"-f", "S16_LE",
		"-r", strconv.Itoa(d.sampleRate),
		"-c", strconv.Itoa(d.channels),
		"-t", "raw",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening capture pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting arecord: %w", err)
	}

	s := &stream{
		cmd: cmd,
		ch:  make(chan []byte, 16),
	}
	go s.pump(stdout, d.logger)
	return s, nil
}

type stream struct {
	cmd  *exec.Cmd
	ch   chan []byte
	once sync.Once
}

// pump reads fixed-size chunks from the process until it exits, then
// closes the chunk channel. Stop kills the process, which surfaces here
// as EOF.
func (s *stream) pump(r io.Reader, logger *log.Logger) {
	defer close(s.ch)
	for {
		buf := make([]byte, chunkSize)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			s.ch <- buf[:n]
		}
		if err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				logger.Warn("capture read failed", "err", err)
			}
			_ = s.cmd.Wait()
			return
		}
	}
}

// Chunks returns the capture chunk channel.
func (s *stream) Chunks() <-chan []byte {
	return s.ch
}

// Stop kills the arecord process and releases the microphone. The chunk
// channel closes once the pipe drains.
func (s *stream) Stop() {
	s.once.Do(func() {
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
	})
}
