// Package entities holds the game's domain types: the player character,
// enemies, regions and the challenges a battle presents.
package entities

import (
	"sort"

	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// Progression constants
const (
	StartingLevel  = 1
	BaseMaxHealth  = 100
	XPPerLevel     = 160
	HealthPerLevel = 20

	entityTypeCharacter = "character"
)

// XPToNextLevel returns the experience needed to advance from level
func XPToNextLevel(level int) int {
	return level * XPPerLevel
}

// Character is the player character. Health stays within [0, MaxHealth].
type Character struct {
	ID            string
	Name          string
	Class         ClassID
	Level         int
	XP            int
	XPToNextLevel int
	Health        int
	MaxHealth     int
	SkillPoints   int

	MasteredTenses  map[string]bool
	DefeatedEnemies map[string]bool
	UnlockedRegions map[string]bool

	// TenseProgress counts correct answers per tense identifier
	TenseProgress map[string]int
}

// NewCharacter creates a level one character of the given class
func NewCharacter(id, name string, class ClassID) (*Character, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", id, vb)
	errors.ValidateRequired("name", name, vb)
	errors.ValidateEnum("class", string(class), ClassIDStrings(), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	def, _ := LookupClass(class)
	maxHealth := BaseMaxHealth + def.HealthBonus

	return &Character{
		ID:              id,
		Name:            name,
		Class:           class,
		Level:           StartingLevel,
		XPToNextLevel:   XPToNextLevel(StartingLevel),
		Health:          maxHealth,
		MaxHealth:       maxHealth,
		MasteredTenses:  make(map[string]bool),
		DefeatedEnemies: make(map[string]bool),
		UnlockedRegions: make(map[string]bool),
		TenseProgress:   make(map[string]int),
	}, nil
}

// GetID implements core.Entity
func (c *Character) GetID() string {
	return c.ID
}

// GetType implements core.Entity
func (c *Character) GetType() string {
	return entityTypeCharacter
}

// ClassDefinition returns the class definition, falling back to a class
// without modifiers when the id is unknown
func (c *Character) ClassDefinition() CharacterClass {
	def, ok := LookupClass(c.Class)
	if !ok {
		return CharacterClass{ID: c.Class, Name: string(c.Class)}
	}
	return def
}

// TakeDamage lowers health by amount, never below zero, and returns the
// damage actually applied
func (c *Character) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > c.Health {
		amount = c.Health
	}
	c.Health -= amount
	return amount
}

// RestoreHealth sets health back to the maximum
func (c *Character) RestoreHealth() {
	c.Health = c.MaxHealth
}

// IsDefeated reports whether the character has no health left
func (c *Character) IsDefeated() bool {
	return c.Health <= 0
}

// HasDefeated reports whether enemyID has been beaten before
func (c *Character) HasDefeated(enemyID string) bool {
	return c.DefeatedEnemies[enemyID]
}

// MarkDefeated records enemyID as defeated. It returns false if it already was.
func (c *Character) MarkDefeated(enemyID string) bool {
	if c.DefeatedEnemies == nil {
		c.DefeatedEnemies = make(map[string]bool)
	}
	if c.DefeatedEnemies[enemyID] {
		return false
	}
	c.DefeatedEnemies[enemyID] = true
	return true
}

// IsRegionUnlocked reports whether regionID has been unlocked
func (c *Character) IsRegionUnlocked(regionID string) bool {
	return c.UnlockedRegions[regionID]
}

// UnlockRegion adds regionID to the unlocked set. It returns false if it was
// already unlocked. There is no inverse operation.
func (c *Character) UnlockRegion(regionID string) bool {
	if c.UnlockedRegions == nil {
		c.UnlockedRegions = make(map[string]bool)
	}
	if c.UnlockedRegions[regionID] {
		return false
	}
	c.UnlockedRegions[regionID] = true
	return true
}

// HasMastered reports whether a tense has been mastered
func (c *Character) HasMastered(tense string) bool {
	return c.MasteredTenses[tense]
}

// MarkMastered adds tense to the mastered set. It returns false if it already was.
func (c *Character) MarkMastered(tense string) bool {
	if c.MasteredTenses == nil {
		c.MasteredTenses = make(map[string]bool)
	}
	if c.MasteredTenses[tense] {
		return false
	}
	c.MasteredTenses[tense] = true
	return true
}

// DefeatedEnemyIDs returns the defeated enemy ids in sorted order
func (c *Character) DefeatedEnemyIDs() []string {
	return sortedKeys(c.DefeatedEnemies)
}

// UnlockedRegionIDs returns the unlocked region ids in sorted order
func (c *Character) UnlockedRegionIDs() []string {
	return sortedKeys(c.UnlockedRegions)
}

// MasteredTenseIDs returns the mastered tenses in sorted order
func (c *Character) MasteredTenseIDs() []string {
	return sortedKeys(c.MasteredTenses)
}

// Clone returns a deep copy of the character
func (c *Character) Clone() *Character {
	clone := *c
	clone.MasteredTenses = copyBoolMap(c.MasteredTenses)
	clone.DefeatedEnemies = copyBoolMap(c.DefeatedEnemies)
	clone.UnlockedRegions = copyBoolMap(c.UnlockedRegions)
	clone.TenseProgress = make(map[string]int, len(c.TenseProgress))
	for k, v := range c.TenseProgress {
		clone.TenseProgress[k] = v
	}
	return &clone
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
