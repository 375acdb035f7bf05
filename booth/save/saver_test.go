package save

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/voxlabs/voxbooth/booth/clip"
	"github.com/voxlabs/voxbooth/internal/wav"
)

// TestSaveWritesWAV tests that a clip lands on disk as a well-formed
// WAV file.
func TestSaveWritesWAV(t *testing.T) {
	dir := t.TempDir()
	saver, err := New(dir, 44100, 1)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	store, err := clip.NewStore()
	if err != nil {
		t.Fatalf("NewStore() = %v", err)
	}
	pcm := bytes.Repeat([]byte{0x7F, 0x00}, 1000)
	c, err := store.Create(pcm)
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	if err := saver.Save(c, "take-123.wav"); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "take-123.wav"))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}

	info, err := wav.Probe(data)
	if err != nil {
		t.Fatalf("Probe() = %v", err)
	}
	if info.SampleRate != 44100 || info.Channels != 1 {
		t.Errorf("saved header = %+v, want 44100 Hz mono", info)
	}
	if info.DataSize != len(pcm) {
		t.Errorf("saved payload size = %d, want %d", info.DataSize, len(pcm))
	}
}

// TestSaveReleasedClipFails tests that released handles cannot be saved.
func TestSaveReleasedClipFails(t *testing.T) {
	saver, err := New(t.TempDir(), 44100, 1)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	store, err := clip.NewStore()
	if err != nil {
		t.Fatalf("NewStore() = %v", err)
	}
	c, err := store.Create([]byte("pcm"))
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if err := store.Release(c); err != nil {
		t.Fatalf("Release() = %v", err)
	}

	if err := saver.Save(c, "take-1.wav"); err == nil {
		t.Error("Save() accepted a released clip")
	}
}
