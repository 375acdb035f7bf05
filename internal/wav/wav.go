// Package wav frames raw 16-bit PCM as RIFF/WAVE for saving takes to
// disk.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const headerSize = 44

// Info describes a parsed WAV header.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	DataSize   int
}

// Encode wraps pcm in a canonical 44-byte RIFF/WAVE header for 16-bit
// little-endian samples.
func Encode(pcm []byte, sampleRate, channels int) []byte {
	const bitDepth = 16
	blockAlign := channels * bitDepth / 8
	byteRate := sampleRate * blockAlign

	buf := make([]byte, headerSize+len(pcm))
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(pcm)))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], bitDepth)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(pcm)))
	copy(buf[headerSize:], pcm)
	return buf
}

// Probe parses the header of a canonical WAV file produced by Encode.
func Probe(data []byte) (Info, error) {
	if len(data) < headerSize {
		return Info{}, errors.New("data too short for a WAV header")
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Info{}, errors.New("not a RIFF/WAVE file")
	}
	if format := binary.LittleEndian.Uint16(data[20:22]); format != 1 {
		return Info{}, fmt.Errorf("unsupported audio format %d, want PCM", format)
	}

	return Info{
		SampleRate: int(binary.LittleEndian.Uint32(data[24:28])),
		Channels:   int(binary.LittleEndian.Uint16(data[22:24])),
		BitDepth:   int(binary.LittleEndian.Uint16(data[34:36])),
		DataSize:   int(binary.LittleEndian.Uint32(data[40:44])),
	}, nil
}
