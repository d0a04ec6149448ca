package progression_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/services/progression"
	"github.com/KirkDiggler/verb-battle/internal/services/unlock"
	unlockmock "github.com/KirkDiggler/verb-battle/internal/services/unlock/mock"
)

type ProgressionTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockUnlocks *unlockmock.MockService
	recorder    *events.Recorder
	svc         progression.Service
	char        *entities.Character
	ctx         context.Context
}

func TestProgressionSuite(t *testing.T) {
	suite.Run(t, new(ProgressionTestSuite))
}

func (s *ProgressionTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUnlocks = unlockmock.NewMockService(s.ctrl)
	s.recorder = &events.Recorder{}
	s.ctx = context.Background()

	svc, err := progression.New(&progression.Config{
		Unlocks:          s.mockUnlocks,
		Events:           s.recorder,
		MasteryThreshold: 3,
	})
	s.Require().NoError(err)
	s.svc = svc

	char, err := entities.NewCharacter("char_1", "Ana", entities.ClassWarrior)
	s.Require().NoError(err)
	s.char = char
}

func (s *ProgressionTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ProgressionTestSuite) expectUnlocks(unlocked ...string) {
	s.mockUnlocks.EXPECT().
		CheckUnlocks(s.ctx, &unlock.CheckUnlocksInput{Character: s.char}).
		Return(&unlock.CheckUnlocksOutput{Unlocked: unlocked}, nil)
}

func (s *ProgressionTestSuite) TestGainXPWithoutLevel() {
	s.expectUnlocks()

	out, err := s.svc.GainXP(s.ctx, &progression.GainXPInput{Character: s.char, Amount: 100})
	s.Require().NoError(err)
	s.Equal(0, out.LevelsGained)
	s.Equal(1, s.char.Level)
	s.Equal(100, s.char.XP)
	s.Empty(s.recorder.OfType(events.LevelUp))
}

func (s *ProgressionTestSuite) TestSingleLevelUp() {
	s.expectUnlocks("forest")
	s.char.Health = 40

	out, err := s.svc.GainXP(s.ctx, &progression.GainXPInput{Character: s.char, Amount: 170})
	s.Require().NoError(err)
	s.Equal(1, out.LevelsGained)
	s.Equal([]string{"forest"}, out.UnlockedRegions)

	s.Equal(2, s.char.Level)
	s.Equal(10, s.char.XP)
	s.Equal(320, s.char.XPToNextLevel)
	s.Equal(120, s.char.MaxHealth)
	s.Equal(120, s.char.Health, "level up refills health")
	s.Equal(1, s.char.SkillPoints)
}

func (s *ProgressionTestSuite) TestLargeGrantCascades() {
	s.expectUnlocks()

	// 500 = 160 (to level 2) + 320 (to level 3) + 20 left over
	out, err := s.svc.GainXP(s.ctx, &progression.GainXPInput{Character: s.char, Amount: 500})
	s.Require().NoError(err)
	s.Equal(2, out.LevelsGained)
	s.Equal(3, s.char.Level)
	s.Equal(20, s.char.XP)
	s.Equal(480, s.char.XPToNextLevel)
	s.Equal(140, s.char.MaxHealth)
	s.Equal(2, s.char.SkillPoints)

	levels := s.recorder.OfType(events.LevelUp)
	s.Require().Len(levels, 2)
	s.Equal(2, levels[0].Level)
	s.Equal(3, levels[1].Level)
}

func (s *ProgressionTestSuite) TestSmallGrantsMatchOneLargeGrant() {
	s.mockUnlocks.EXPECT().CheckUnlocks(gomock.Any(), gomock.Any()).
		Return(&unlock.CheckUnlocksOutput{}, nil).Times(50)

	for i := 0; i < 50; i++ {
		_, err := s.svc.GainXP(s.ctx, &progression.GainXPInput{Character: s.char, Amount: 10})
		s.Require().NoError(err)
	}

	s.Equal(3, s.char.Level)
	s.Equal(20, s.char.XP)
	s.Len(s.recorder.OfType(events.LevelUp), 2)
}

func (s *ProgressionTestSuite) TestGainXPExactThreshold() {
	s.expectUnlocks()

	_, err := s.svc.GainXP(s.ctx, &progression.GainXPInput{Character: s.char, Amount: 160})
	s.Require().NoError(err)
	s.Equal(2, s.char.Level)
	s.Equal(0, s.char.XP)
}

func (s *ProgressionTestSuite) TestGainXPRejectsBadInput() {
	_, err := s.svc.GainXP(s.ctx, &progression.GainXPInput{Character: s.char, Amount: -5})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.GainXP(s.ctx, &progression.GainXPInput{Amount: 5})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ProgressionTestSuite) TestUnlockFailurePropagates() {
	s.mockUnlocks.EXPECT().CheckUnlocks(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("registry gone"))

	_, err := s.svc.GainXP(s.ctx, &progression.GainXPInput{Character: s.char, Amount: 10})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	s.Equal(10, s.char.XP, "xp is kept even when the unlock check fails")
}

func (s *ProgressionTestSuite) TestTenseMastery() {
	for i := 1; i <= 2; i++ {
		out, err := s.svc.RecordCorrectAnswer(s.ctx, &progression.RecordCorrectAnswerInput{
			Character: s.char,
			Tense:     "present/regular",
		})
		s.Require().NoError(err)
		s.Equal(i, out.Progress)
		s.False(out.Mastered)
	}

	out, err := s.svc.RecordCorrectAnswer(s.ctx, &progression.RecordCorrectAnswerInput{
		Character: s.char,
		Tense:     "present/regular",
	})
	s.Require().NoError(err)
	s.True(out.Mastered)
	s.True(s.char.HasMastered("present/regular"))

	out, err = s.svc.RecordCorrectAnswer(s.ctx, &progression.RecordCorrectAnswerInput{
		Character: s.char,
		Tense:     "present/regular",
	})
	s.Require().NoError(err)
	s.False(out.Mastered, "mastery is reported once")
	s.Len(s.recorder.OfType(events.TenseMastered), 1)
}

func (s *ProgressionTestSuite) TestConfigValidation() {
	_, err := progression.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = progression.New(&progression.Config{})
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Unlocks")
}
