// Package savegame persists the player character between sessions. Saves are
// stored per slot as a versioned JSON document.
package savegame

//go:generate mockgen -destination=mock/mock_repository.go -package=savegamemock github.com/KirkDiggler/verb-battle/internal/repositories/savegame Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// DefaultSlot is used when no slot is configured
const DefaultSlot = "default"

// Repository defines the interface for save persistence
type Repository interface {
	// Save writes the state to a slot, replacing any previous save
	// Returns errors.InvalidArgument for a missing state or slot
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Load reads and migrates the state stored in a slot
	// Returns errors.InvalidArgument for an empty slot name
	// Returns errors.NotFound if the slot holds no save
	// Returns errors.DataLoss if the stored document cannot be decoded
	// Returns errors.Internal for storage failures
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Delete removes the save in a slot
	// Returns errors.InvalidArgument for an empty slot name
	// Returns errors.NotFound if the slot holds no save
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns the slots that hold a save, sorted by name
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// SaveInput defines the input for saving a state
type SaveInput struct {
	Slot  string
	State *State
}

// SaveOutput defines the output for saving a state
type SaveOutput struct {
	SavedAt time.Time
}

// LoadInput defines the input for loading a state
type LoadInput struct {
	Slot string
}

// LoadOutput defines the output for loading a state
type LoadOutput struct {
	State *State
	// Migrated is true when the stored document was written by an older version
	Migrated bool
}

// DeleteInput defines the input for deleting a save
type DeleteInput struct {
	Slot string
}

// DeleteOutput defines the output for deleting a save
type DeleteOutput struct{}

// ListInput defines the input for listing slots
type ListInput struct{}

// ListOutput defines the output for listing slots
type ListOutput struct {
	Slots []string
}

const (
	errSlotEmpty = "slot cannot be empty"
	errStateNil  = "state cannot be nil"
)

// encodeForSave validates a save input and stamps the document with now
func encodeForSave(input SaveInput, now time.Time) ([]byte, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.Name == "" {
		return nil, errors.InvalidArgument("state name cannot be empty")
	}
	stamped := *input.State
	stamped.SavedAt = now.UTC()
	return Encode(&stamped)
}
