package repository

import (
	"context"
	"sync"
)

// memoryPreferenceRepo keeps preferences in process memory
type memoryPreferenceRepo struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryPreferenceRepo creates an empty in-memory preference store
func NewMemoryPreferenceRepo() PreferenceRepository {
	return &memoryPreferenceRepo{values: make(map[string]map[string]string)}
}

func (r *memoryPreferenceRepo) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[clientID][key]
	return v, ok, nil
}

func (r *memoryPreferenceRepo) Set(ctx context.Context, clientID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values[clientID] == nil {
		r.values[clientID] = make(map[string]string)
	}
	r.values[clientID][key] = value
	return nil
}

func (r *memoryPreferenceRepo) Delete(ctx context.Context, clientID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values[clientID], key)
	return nil
}

func (r *memoryPreferenceRepo) Clear(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, clientID)
	return nil
}
