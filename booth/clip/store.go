// Package clip provides the in-memory playable-audio-handle allocator.
// Clip payloads are held zstd-compressed to keep long sessions with many
// takes from ballooning resident memory.
package clip

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/voxlabs/voxbooth/booth"
)

// Store errors.
var (
	ErrReleased    = errors.New("clip has already been released")
	ErrForeignClip = errors.New("clip does not belong to this store")
)

// Handle is a playable clip backed by the store. It stays valid until
// released exactly once.
type Handle struct {
	store *Store
	id    uint64
}

// Bytes decompresses and returns the clip payload. It fails after the
// handle has been released.
func (h *Handle) Bytes() ([]byte, error) {
	return h.store.bytes(h.id)
}

// Store is an in-memory booth.ClipStore.
type Store struct {
	mu     sync.Mutex
	clips  map[uint64][]byte
	nextID uint64

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewStore creates an empty clip store.
func NewStore() (*Store, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return &Store{
		clips: make(map[uint64][]byte),
		enc:   enc,
		dec:   dec,
	}, nil
}

// Create compresses data into a new clip handle.
func (s *Store) Create(data []byte) (booth.Clip, error) {
	compressed := s.enc.EncodeAll(data, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.clips[s.nextID] = compressed
	return &Handle{store: s, id: s.nextID}, nil
}

// Release frees the clip's payload. Releasing a clip twice, or a clip
// from another store, is an error.
func (s *Store) Release(c booth.Clip) error {
	h, ok := c.(*Handle)
	if !ok || h.store != s {
		return ErrForeignClip
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clips[h.id]; !ok {
		return ErrReleased
	}
	delete(s.clips, h.id)
	return nil
}

// Live returns the number of unreleased clips.
func (s *Store) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clips)
}

func (s *Store) bytes(id uint64) ([]byte, error) {
	s.mu.Lock()
	compressed, ok := s.clips[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrReleased
	}

	data, err := s.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing clip: %w", err)
	}
	return data, nil
}
