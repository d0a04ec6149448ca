package savegame

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// Save format versions. Version 0 documents carry no version field; version 1
// added the character id; version 2 added tense progress and the save time.
const (
	CurrentVersion = 2

	// LegacyCharacterID is assigned to saves written before ids were stored
	LegacyCharacterID = "player"
)

// State is the serialized character
type State struct {
	Version           int            `json:"version"`
	ID                string         `json:"id,omitempty"`
	Name              string         `json:"name"`
	Class             string         `json:"class"`
	Level             int            `json:"level"`
	Health            int            `json:"health"`
	MaxHealth         int            `json:"maxHealth"`
	XP                int            `json:"xp"`
	XPToNextLevel     int            `json:"xpToNextLevel"`
	SkillPoints       int            `json:"skillPoints"`
	DefeatedEnemyIDs  []string       `json:"defeatedEnemyIds"`
	MasteredTenses    []string       `json:"masteredTenses"`
	UnlockedRegionIDs []string       `json:"unlockedRegionIds"`
	TenseProgress     map[string]int `json:"tenseProgress,omitempty"`
	SavedAt           time.Time      `json:"savedAt,omitempty"`
}

// FromCharacter captures a character as a current-version state
func FromCharacter(char *entities.Character) *State {
	progress := make(map[string]int, len(char.TenseProgress))
	for k, v := range char.TenseProgress {
		progress[k] = v
	}
	return &State{
		Version:           CurrentVersion,
		ID:                char.ID,
		Name:              char.Name,
		Class:             string(char.Class),
		Level:             char.Level,
		Health:            char.Health,
		MaxHealth:         char.MaxHealth,
		XP:                char.XP,
		XPToNextLevel:     char.XPToNextLevel,
		SkillPoints:       char.SkillPoints,
		DefeatedEnemyIDs:  char.DefeatedEnemyIDs(),
		MasteredTenses:    char.MasteredTenseIDs(),
		UnlockedRegionIDs: char.UnlockedRegionIDs(),
		TenseProgress:     progress,
	}
}

// ToCharacter rebuilds the character. The state should already be migrated.
func (s *State) ToCharacter() (*entities.Character, error) {
	if s.Name == "" {
		return nil, errors.DataLoss("save has no character name")
	}
	class := entities.ClassID(s.Class)
	if _, ok := entities.LookupClass(class); !ok {
		return nil, errors.DataLossf("save has unknown class %q", s.Class)
	}

	char := &entities.Character{
		ID:              s.ID,
		Name:            s.Name,
		Class:           class,
		Level:           s.Level,
		XP:              s.XP,
		XPToNextLevel:   s.XPToNextLevel,
		Health:          s.Health,
		MaxHealth:       s.MaxHealth,
		SkillPoints:     s.SkillPoints,
		MasteredTenses:  toSet(s.MasteredTenses),
		DefeatedEnemies: toSet(s.DefeatedEnemyIDs),
		UnlockedRegions: toSet(s.UnlockedRegionIDs),
		TenseProgress:   make(map[string]int, len(s.TenseProgress)),
	}
	for k, v := range s.TenseProgress {
		char.TenseProgress[k] = v
	}
	return char, nil
}

// Encode marshals the state as a current-version document
func Encode(s *State) ([]byte, error) {
	if s == nil {
		return nil, errors.InvalidArgument("state is required")
	}
	cp := *s
	cp.Version = CurrentVersion
	data, err := json.Marshal(&cp)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal save state")
	}
	return data, nil
}

// Decode unmarshals a stored document of any known version and migrates it.
// The boolean reports whether migration changed the version.
func Decode(raw []byte) (*State, bool, error) {
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal save state")
	}
	if s.Version > CurrentVersion {
		return nil, false, errors.DataLossf("save version %d is newer than supported version %d",
			s.Version, CurrentVersion)
	}
	migrated := s.Version != CurrentVersion
	Migrate(&s)
	return &s, migrated, nil
}

// Migrate brings a state of any older version up to CurrentVersion. Fields
// older saves lack, or that are absent, get their defaults.
func Migrate(s *State) {
	if s.ID == "" {
		s.ID = LegacyCharacterID
	}
	if s.Class == "" {
		s.Class = string(entities.ClassWarrior)
	}
	if s.Level < entities.StartingLevel {
		s.Level = entities.StartingLevel
	}
	if s.XPToNextLevel <= 0 {
		s.XPToNextLevel = entities.XPToNextLevel(s.Level)
	}
	if s.XP < 0 {
		s.XP = 0
	}
	if s.MaxHealth <= 0 {
		def, _ := entities.LookupClass(entities.ClassID(s.Class))
		s.MaxHealth = entities.BaseMaxHealth + def.HealthBonus + (s.Level-1)*entities.HealthPerLevel
	}
	// zero health means the field was missing; defeats restore health before saving
	if s.Health <= 0 || s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	if s.SkillPoints < 0 {
		s.SkillPoints = 0
	}
	if s.DefeatedEnemyIDs == nil {
		s.DefeatedEnemyIDs = []string{}
	}
	if s.MasteredTenses == nil {
		s.MasteredTenses = []string{}
	}
	if s.UnlockedRegionIDs == nil {
		s.UnlockedRegionIDs = []string{}
	}
	if s.TenseProgress == nil {
		s.TenseProgress = make(map[string]int)
	}
	s.Version = CurrentVersion
}

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			out[id] = true
		}
	}
	return out
}
