package progression

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/services/unlock"
)

// Config holds the progression dependencies
type Config struct {
	Unlocks unlock.Service
	Events  events.Sink
	// MasteryThreshold defaults to DefaultMasteryThreshold
	MasteryThreshold int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Unlocks == nil {
		vb.RequiredField("Unlocks")
	}
	if c.MasteryThreshold < 0 {
		vb.Field("MasteryThreshold", "must not be negative")
	}

	return vb.Build()
}

type service struct {
	unlocks          unlock.Service
	events           events.Sink
	masteryThreshold int
}

// New creates the progression service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	sink := cfg.Events
	if sink == nil {
		sink = events.Nop{}
	}
	threshold := cfg.MasteryThreshold
	if threshold == 0 {
		threshold = DefaultMasteryThreshold
	}

	return &service{
		unlocks:          cfg.Unlocks,
		events:           sink,
		masteryThreshold: threshold,
	}, nil
}

func (s *service) GainXP(ctx context.Context, input *GainXPInput) (*GainXPOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgumentf("xp amount must not be negative, got %d", input.Amount)
	}
	char := input.Character
	if char.XPToNextLevel <= 0 {
		char.XPToNextLevel = entities.XPToNextLevel(char.Level)
	}

	char.XP += input.Amount

	out := &GainXPOutput{}
	for char.XP >= char.XPToNextLevel {
		char.XP -= char.XPToNextLevel
		char.Level++
		char.XPToNextLevel = entities.XPToNextLevel(char.Level)
		char.MaxHealth += entities.HealthPerLevel
		char.Health = char.MaxHealth
		char.SkillPoints++
		out.LevelsGained++

		slog.InfoContext(ctx, "level up",
			"character_id", char.ID,
			"level", char.Level,
			"max_health", char.MaxHealth)

		s.events.Emit(ctx, &events.Event{
			Type:         events.LevelUp,
			Source:       char,
			Level:        char.Level,
			PlayerHealth: char.Health,
		})
	}

	unlocked, err := s.unlocks.CheckUnlocks(ctx, &unlock.CheckUnlocksInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check unlocks")
	}

	out.Level = char.Level
	out.XP = char.XP
	out.UnlockedRegions = unlocked.Unlocked
	return out, nil
}

func (s *service) RecordCorrectAnswer(
	ctx context.Context,
	input *RecordCorrectAnswerInput,
) (*RecordCorrectAnswerOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input.Tense == "" {
		return nil, errors.InvalidArgument("tense is required")
	}
	char := input.Character
	if char.TenseProgress == nil {
		char.TenseProgress = make(map[string]int)
	}

	char.TenseProgress[input.Tense]++
	out := &RecordCorrectAnswerOutput{Progress: char.TenseProgress[input.Tense]}

	if out.Progress >= s.masteryThreshold && char.MarkMastered(input.Tense) {
		out.Mastered = true
		slog.InfoContext(ctx, "tense mastered",
			"character_id", char.ID,
			"tense", input.Tense)
		s.events.Emit(ctx, &events.Event{
			Type:   events.TenseMastered,
			Source: char,
			Tense:  input.Tense,
		})
	}

	return out, nil
}
