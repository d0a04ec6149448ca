package testutils

import (
	"github.com/KirkDiggler/verb-battle/internal/content"
	"github.com/KirkDiggler/verb-battle/internal/entities"
)

// Progress stages for character fixtures
const (
	StageFresh      = "fresh"
	StageMeadowDone = "meadow_done"
	StageVeteran    = "veteran"

	// TestCharacterName is the default character name for test fixtures
	TestCharacterName = "Rosa"
)

// CreateTestCharacter creates a level one character with the given class
func CreateTestCharacter(class entities.ClassID) *entities.Character {
	char, err := entities.NewCharacter("char-test-001", TestCharacterName, class)
	if err != nil {
		panic(err)
	}
	char.UnlockRegion("meadow")
	return char
}

// CreateTestCharacterAtStage creates a warrior at various points of the fixture world
func CreateTestCharacterAtStage(stage string) *entities.Character {
	char := CreateTestCharacter(entities.ClassWarrior)

	switch stage {
	case StageMeadowDone:
		char.MarkDefeated("slime")
		char.MarkDefeated("meadow_boss")
		char.Level = 2
		char.XPToNextLevel = entities.XPToNextLevel(2)
		char.UnlockRegion("forest")

	case StageVeteran:
		char.MarkDefeated("slime")
		char.MarkDefeated("meadow_boss")
		char.MarkDefeated("wolf")
		char.Level = 4
		char.XP = 100
		char.XPToNextLevel = entities.XPToNextLevel(4)
		char.MaxHealth = entities.BaseMaxHealth + 3*entities.HealthPerLevel
		char.Health = char.MaxHealth
		char.SkillPoints = 3
		char.UnlockRegion("forest")
		char.MarkMastered("present/regular")
	}

	return char
}

// TestVerbs is a small conjugation table covering the fixture world
func TestVerbs() *content.VerbsDefinition {
	return &content.VerbsDefinition{
		Tenses: map[string]map[string]map[string]map[string]string{
			"present": {
				"regular": {
					"hablar": {"yo": "hablo", "tú": "hablas", "él": "habla"},
					"comer":  {"yo": "como", "tú": "comes", "él": "come"},
				},
			},
			"preterite": {
				"regular": {
					"hablar": {"yo": "hablé", "tú": "hablaste", "él": "habló"},
				},
			},
		},
	}
}

func intPtr(v int) *int { return &v }

// TestWorld is a two-region world: meadow (slime, meadow_boss) and forest
// (wolf), which needs level 2 and a cleared meadow
func TestWorld() *content.WorldDefinition {
	return &content.WorldDefinition{
		Regions: []content.RegionDefinition{
			{
				ID:          "meadow",
				Name:        "Meadow",
				Connections: []string{"forest"},
				Enemies: []content.EnemyDefinition{
					{
						ID:                "slime",
						Name:              "Slime",
						Tenses:            []string{"present/regular"},
						Pronouns:          []string{"yo", "tú"},
						QuestionsRequired: intPtr(3),
						XPReward:          20,
						BaseDamage:        10,
					},
					{
						ID:         "meadow_boss",
						Name:       "Meadow Boss",
						MaxHealth:  intPtr(100),
						Tenses:     []string{"present/regular"},
						Pronouns:   []string{"yo", "tú", "él"},
						XPReward:   100,
						BaseDamage: 20,
						Boss:       true,
					},
				},
			},
			{
				ID:            "forest",
				Name:          "Forest",
				RequiredLevel: intPtr(2),
				Requires:      []string{"meadow"},
				Connections:   []string{"meadow"},
				Enemies: []content.EnemyDefinition{
					{
						ID:                "wolf",
						Name:              "Wolf",
						Tenses:            []string{"preterite/regular"},
						Pronouns:          []string{"yo", "él"},
						QuestionsRequired: intPtr(4),
						XPReward:          60,
						BaseDamage:        18,
					},
				},
			},
		},
	}
}
