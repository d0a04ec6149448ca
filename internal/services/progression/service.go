// Package progression handles experience, leveling and tense mastery.
package progression

import (
	"context"

	"github.com/KirkDiggler/verb-battle/internal/entities"
)

//go:generate mockgen -destination=mock/mock_service.go -package=progressionmock github.com/KirkDiggler/verb-battle/internal/services/progression Service

// DefaultMasteryThreshold is the number of correct answers that masters a tense
const DefaultMasteryThreshold = 20

// Service is the character progression interface
type Service interface {
	// GainXP adds experience, resolves every level-up it causes and then
	// re-checks region unlocks
	GainXP(ctx context.Context, input *GainXPInput) (*GainXPOutput, error)
	// RecordCorrectAnswer counts a correct answer toward tense mastery
	RecordCorrectAnswer(ctx context.Context, input *RecordCorrectAnswerInput) (*RecordCorrectAnswerOutput, error)
}

// GainXPInput contains the character and the amount to grant
type GainXPInput struct {
	Character *entities.Character
	Amount    int
}

// GainXPOutput reports what the grant changed
type GainXPOutput struct {
	LevelsGained    int
	Level           int
	XP              int
	UnlockedRegions []string
}

// RecordCorrectAnswerInput names the tense answered
type RecordCorrectAnswerInput struct {
	Character *entities.Character
	Tense     string
}

// RecordCorrectAnswerOutput reports progress toward mastery
type RecordCorrectAnswerOutput struct {
	Progress int
	// Mastered is true only on the answer that reached the threshold
	Mastered bool
}
