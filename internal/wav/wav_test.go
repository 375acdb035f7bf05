package wav

import (
	"bytes"
	"testing"
)

// TestEncodeProbe tests header fields survive an encode/probe cycle.
func TestEncodeProbe(t *testing.T) {
	pcm := bytes.Repeat([]byte{0x10, 0x20}, 441)

	data := Encode(pcm, 44100, 1)
	info, err := Probe(data)
	if err != nil {
		t.Fatalf("Probe() = %v", err)
	}

	if info.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("Channels = %d, want 1", info.Channels)
	}
	if info.BitDepth != 16 {
		t.Errorf("BitDepth = %d, want 16", info.BitDepth)
	}
	if info.DataSize != len(pcm) {
		t.Errorf("DataSize = %d, want %d", info.DataSize, len(pcm))
	}
	if !bytes.Equal(data[44:], pcm) {
		t.Error("payload does not follow the header intact")
	}
}

// TestProbeRejectsGarbage tests malformed inputs.
func TestProbeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "too short", data: []byte("RIFF")},
		{name: "wrong magic", data: bytes.Repeat([]byte{0xAB}, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Probe(tt.data); err == nil {
				t.Error("Probe() accepted malformed data")
			}
		})
	}
}
