package savegame

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/pkg/clock"
)

// InMemoryRepository implements Repository using process memory. Documents are
// kept encoded so loads go through the same decode and migration path.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		clock: clock.New(),
		store: make(map[string][]byte),
	}
}

// Put stores a raw document in a slot, bypassing encoding
func (r *InMemoryRepository) Put(slot string, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[slot] = append([]byte(nil), raw...)
}

// Save implements Repository
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	now := r.clock.Now().UTC()
	data, err := encodeForSave(input, now)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[input.Slot] = data

	return &SaveOutput{SavedAt: now}, nil
}

// Load implements Repository
func (r *InMemoryRepository) Load(_ context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	r.mu.RLock()
	data, exists := r.store[input.Slot]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.NotFoundf("no save in slot %s", input.Slot)
	}

	state, migrated, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{State: state, Migrated: migrated}, nil
}

// Delete implements Repository
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.store[input.Slot]; !exists {
		return nil, errors.NotFoundf("no save in slot %s", input.Slot)
	}
	delete(r.store, input.Slot)
	return &DeleteOutput{}, nil
}

// List implements Repository
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]string, 0, len(r.store))
	for slot := range r.store {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return &ListOutput{Slots: slots}, nil
}
