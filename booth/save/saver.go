// Package save writes takes to disk as WAV files.
package save

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/voxlabs/voxbooth/booth"
	"github.com/voxlabs/voxbooth/internal/wav"
)

// WAVSaver implements booth.Saver by framing clip PCM as WAV under a
// fixed output directory.
type WAVSaver struct {
	dir        string
	sampleRate int
	channels   int
}

// New creates a saver writing into dir (homedir-expanded, created on
// first use).
func New(dir string, sampleRate, channels int) (*WAVSaver, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("expanding output dir: %w", err)
	}
	return &WAVSaver{
		dir:        expanded,
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

// Dir returns the expanded output directory.
func (s *WAVSaver) Dir() string {
	return s.dir
}

// Save writes the clip as a WAV file named filename inside the output
// directory.
func (s *WAVSaver) Save(c booth.Clip, filename string) error {
	pcm, err := c.Bytes()
	if err != nil {
		return fmt.Errorf("reading clip: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, wav.Encode(pcm, s.sampleRate, s.channels), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
