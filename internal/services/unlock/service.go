// Package unlock decides which regions and enemies a character may fight.
// Unlocking is monotonic: nothing here ever removes an unlocked region.
package unlock

import (
	"context"

	"github.com/KirkDiggler/verb-battle/internal/entities"
)

//go:generate mockgen -destination=mock/mock_service.go -package=unlockmock github.com/KirkDiggler/verb-battle/internal/services/unlock Service

// Service is the region unlock policy
type Service interface {
	// CheckUnlocks adds every region the character now qualifies for
	CheckUnlocks(ctx context.Context, input *CheckUnlocksInput) (*CheckUnlocksOutput, error)
	// IsEnemyAvailable reports whether the character may fight an enemy
	IsEnemyAvailable(ctx context.Context, input *IsEnemyAvailableInput) (*IsEnemyAvailableOutput, error)
	// ListRegions reports every region with its lock state and fightable enemies
	ListRegions(ctx context.Context, input *ListRegionsInput) (*ListRegionsOutput, error)
}

// CheckUnlocksInput contains the character to evaluate
type CheckUnlocksInput struct {
	Character *entities.Character
}

// CheckUnlocksOutput lists the regions unlocked by this call, in region order
type CheckUnlocksOutput struct {
	Unlocked []string
}

// IsEnemyAvailableInput names the enemy to check
type IsEnemyAvailableInput struct {
	Character *entities.Character
	RegionID  string
	EnemyID   string
}

// IsEnemyAvailableOutput carries the verdict and, when unavailable, why
type IsEnemyAvailableOutput struct {
	Available bool
	Reason    string
}

// ListRegionsInput contains the character whose view to build
type ListRegionsInput struct {
	Character *entities.Character
}

// ListRegionsOutput contains every region in definition order
type ListRegionsOutput struct {
	Regions []*RegionStatus
}

// RegionStatus is a region as seen by one character
type RegionStatus struct {
	Region   *entities.Region
	Unlocked bool
	Cleared  bool
	// Available holds the ids of enemies the character may fight now
	Available []string
}
