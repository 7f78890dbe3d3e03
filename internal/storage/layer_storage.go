package storage

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/cx-luo/molstack/internal/layer"
)

// LayerStorage is the monotonic, insert-only table of Layer values a
// workflow accumulates as it runs. Ids are assigned in contiguous blocks
// in insertion order and never reused while a stack still references
// them.
type LayerStorage struct {
	mu     sync.RWMutex
	layers map[int]layer.Layer
	nextID int
}

// New returns an empty LayerStorage.
func New() *LayerStorage {
	return &LayerStorage{layers: map[int]layer.Layer{}}
}

// CreateLayers inserts layers and returns the contiguous block of ids
// assigned to them, in order.
func (s *LayerStorage) CreateLayers(layers []layer.Layer) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, len(layers))
	for i, l := range layers {
		id := s.nextID
		s.nextID++
		s.layers[id] = l
		ids[i] = id
	}
	return ids
}

// ReadLayer returns the layer stored at id, or NoSuchLayer.
func (s *LayerStorage) ReadLayer(id int) (layer.Layer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.layers[id]
	if !ok {
		return layer.Layer{}, errNoSuchLayer(id)
	}
	return l, nil
}

// RemoveUnused deletes every stored layer whose id does not appear in
// referenced. Removal is the caller's responsibility to scope correctly:
// LayerStorage itself has no notion of which stacks are still live.
func (s *LayerStorage) RemoveUnused(referenced map[int]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.layers {
		if _, ok := referenced[id]; !ok {
			delete(s.layers, id)
		}
	}
}

// Len reports how many layers are currently stored.
func (s *LayerStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers)
}

// layerStorageGob is the checkpoint-friendly shape of a LayerStorage: its
// mutex does not (and must not) survive a round trip.
type layerStorageGob struct {
	Layers map[int]layer.Layer
	NextID int
}

// GobEncode/GobDecode let LayerStorage flow through checkpoint's
// gob-encoded WorkflowData snapshots; the mutex is reset to its zero
// value on decode, which is correct since a resumed run has no
// concurrent readers yet.
func (s *LayerStorage) GobEncode() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(layerStorageGob{Layers: s.layers, NextID: s.nextID}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *LayerStorage) GobDecode(data []byte) error {
	var form layerStorageGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&form); err != nil {
		return err
	}
	s.layers = form.Layers
	s.nextID = form.NextID
	return nil
}
