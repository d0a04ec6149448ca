package game

import (
	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/verb-battle/internal/services/unlock"
)

// NewGameInput creates a fresh character, replacing the current one
type NewGameInput struct {
	Name  string
	Class entities.ClassID
}

// NewGameOutput contains the new character
type NewGameOutput struct {
	Character *entities.Character
	// Saved is false when the initial save failed; the game continues in memory
	Saved bool
}

// LoadInput loads the configured slot
type LoadInput struct{}

// LoadOutput reports the loaded character, if any
type LoadOutput struct {
	// Found is false when the slot is empty or could not be read
	Found     bool
	Migrated  bool
	Character *entities.Character
	// Warning is the persistence error that was reported, if any
	Warning error
}

// SaveInput saves the current character
type SaveInput struct{}

// SaveOutput reports the save result
type SaveOutput struct {
	Saved   bool
	Warning error
}

// StartBattleInput names the enemy to fight
type StartBattleInput struct {
	// RegionID is optional; when set it must own the enemy
	RegionID string
	EnemyID  string
}

// StartBattleOutput contains the battle after its first challenge
type StartBattleOutput struct {
	Battle *battle.Battle
}

// StatusInput requests the current game state
type StatusInput struct{}

// StatusOutput is a copy of the character as of the last battle boundary
type StatusOutput struct {
	Character *entities.Character
	InBattle  bool
	// Battle is the current or last battle, nil if none was fought
	Battle *battle.Battle
}

// RegionsInput requests the region view for the current character
type RegionsInput struct{}

// RegionsOutput lists every region in world order
type RegionsOutput struct {
	Regions []*unlock.RegionStatus
}
