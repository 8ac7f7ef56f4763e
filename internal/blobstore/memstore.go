package blobstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in tests and in development mode
// when no blob endpoint is configured. Contents do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	payload    []byte
	uploadedAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memObject)}
}

func (s *MemoryStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ObjectInfo
	for key, obj := range s.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, s.info(key, obj))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Read(_ context.Context, obj ObjectInfo) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.objects[obj.Key]
	if !ok {
		return nil, ErrNotFound
	}
	payload := make([]byte, len(stored.payload))
	copy(payload, stored.payload)
	return payload, nil
}

func (s *MemoryStore) Write(_ context.Context, key string, payload []byte) (ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := memObject{payload: append([]byte(nil), payload...), uploadedAt: time.Now()}
	s.objects[key] = stored
	return s.info(key, stored), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// SetUploadedAt overrides an object's upload timestamp, for tests that need
// deterministic snapshot ordering.
func (s *MemoryStore) SetUploadedAt(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj, ok := s.objects[key]; ok {
		obj.uploadedAt = t
		s.objects[key] = obj
	}
}

func (s *MemoryStore) info(key string, obj memObject) ObjectInfo {
	return ObjectInfo{
		Key:        key,
		URL:        "mem://" + key,
		Size:       int64(len(obj.payload)),
		UploadedAt: obj.uploadedAt,
	}
}
