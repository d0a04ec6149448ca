package tui

import (
	"context"
	"strings"
	"testing"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/battle"
	battlemock "github.com/KirkDiggler/verb-battle/internal/orchestrators/battle/mock"
)

type ModelTestSuite struct {
	suite.Suite
	ctx         context.Context
	ctrl        *gomock.Controller
	mockBattles *battlemock.MockService
	bus         rpgevents.EventBus
	feed        *Feed
	model       *Model
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelTestSuite))
}

func (s *ModelTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockBattles = battlemock.NewMockService(s.ctrl)
	s.bus = rpgevents.NewBus()
	s.feed = NewFeed(s.bus, 4)

	char, err := entities.NewCharacter("char_1", "Rosa", entities.ClassWarrior)
	s.Require().NoError(err)

	s.model, err = NewModel(s.ctx, Config{
		Battles:   s.mockBattles,
		Feed:      s.feed,
		Character: char,
		Battle:    s.openBattle(),
	})
	s.Require().NoError(err)
}

func (s *ModelTestSuite) TearDownTest() {
	s.feed.Close()
	s.ctrl.Finish()
}

func (s *ModelTestSuite) openBattle() *battle.Battle {
	return &battle.Battle{
		ID:     "battle_1",
		State:  battle.StateChallengePresented,
		Active: true,
		Enemy: entities.Enemy{
			EnemyTemplate: entities.EnemyTemplate{ID: "slime", Name: "Slime", MaxHealth: 60},
			Health:        60,
		},
		Challenge: &entities.Challenge{
			Tense:   entities.TenseRef{Type: "present", SubType: "regular"},
			Verb:    "hablar",
			Pronoun: "yo",
		},
		Sequence:      3,
		TimeRemaining: 7,
		PlayerHealth:  100,
	}
}

func (s *ModelTestSuite) TestEnterSubmitsOpenChallenge() {
	s.model.input.SetValue("hablo")

	reply := s.openBattle()
	reply.Sequence = 4
	s.mockBattles.EXPECT().
		SubmitAnswer(gomock.Any(), &battle.SubmitAnswerInput{Answer: "hablo", Sequence: 3}).
		Return(&battle.SubmitAnswerOutput{Correct: true, Expected: "hablo", Damage: 20, Battle: reply}, nil)

	_, cmd := s.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s.Require().NotNil(cmd)
	s.Empty(s.model.input.Value(), "input clears on submit")

	s.model.Update(cmd())
	s.Equal(4, s.model.battle.Sequence)
	s.Equal("¡Correcto!", s.model.feedback)
}

func (s *ModelTestSuite) TestWrongAnswerShowsExpected() {
	s.mockBattles.EXPECT().SubmitAnswer(gomock.Any(), gomock.Any()).
		Return(&battle.SubmitAnswerOutput{Expected: "hablo", Battle: s.openBattle()}, nil)

	_, cmd := s.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s.model.Update(cmd())
	s.Equal(`Expected "hablo"`, s.model.feedback)
}

func (s *ModelTestSuite) TestIgnoredAnswerChangesNothing() {
	s.mockBattles.EXPECT().SubmitAnswer(gomock.Any(), gomock.Any()).
		Return(&battle.SubmitAnswerOutput{Ignored: true}, nil)

	_, cmd := s.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s.model.Update(cmd())
	s.Empty(s.model.feedback)
	s.Equal(3, s.model.battle.Sequence)
}

func (s *ModelTestSuite) TestEventsBuildTheLog() {
	testCases := []struct {
		name  string
		event *events.Event
		line  string
	}{
		{
			name:  "hit",
			event: &events.Event{Type: events.AnswerCorrect, Damage: 22},
			line:  "Hit for 22!",
		},
		{
			name: "timeout",
			event: &events.Event{
				Type:      events.AnswerWrong,
				Timeout:   true,
				Damage:    10,
				Challenge: &entities.Challenge{Answer: "hablo"},
			},
			line: `Too slow! It was "hablo". You take 10.`,
		},
		{
			name:  "phase",
			event: &events.Event{Type: events.BossPhaseChanged, Phase: 2},
			line:  "The enemy enters phase 2!",
		},
		{
			name:  "level up",
			event: &events.Event{Type: events.LevelUp, Level: 3},
			line:  "Level up! You are now level 3.",
		},
		{
			name:  "save warning",
			event: &events.Event{Type: events.PersistenceWarning},
			line:  "Could not save your progress",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.model.apply(tc.event)
			s.Equal(tc.line, s.model.log[len(s.model.log)-1])
			s.False(s.model.done)
		})
	}
}

func (s *ModelTestSuite) TestLogKeepsLastLines() {
	for i := 0; i < maxLogLines+3; i++ {
		s.model.apply(&events.Event{Type: events.AnswerCorrect, Damage: i})
	}
	s.Len(s.model.log, maxLogLines)
	s.Equal("Hit for 3!", s.model.log[0])
}

func (s *ModelTestSuite) TestVictoryEndsScreen() {
	done := s.openBattle()
	done.Active = false
	done.State = battle.StateVictory
	s.mockBattles.EXPECT().GetBattle(gomock.Any(), gomock.Any()).
		Return(&battle.GetBattleOutput{Battle: done}, nil)

	_, cmd := s.model.Update(EventMsg{Event: &events.Event{Type: events.Victory, XPGained: 26, MaxCombo: 3}})
	s.True(s.model.done)
	s.Equal("Victory! +26 XP (max combo 3)", s.model.Result())

	s.Require().NotNil(cmd)
	s.model.Update(cmd())
	s.Equal(battle.StateVictory, s.model.battle.State)

	_, cmd = s.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s.Require().NotNil(cmd)
	_, ok := cmd().(tea.QuitMsg)
	s.True(ok, "enter leaves a finished battle")
}

func (s *ModelTestSuite) TestFreeze() {
	s.mockBattles.EXPECT().UseFreeze(gomock.Any(), &battle.UseFreezeInput{}).
		Return(&battle.UseFreezeOutput{Applied: false}, nil)

	_, cmd := s.model.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	s.Require().NotNil(cmd)
	s.model.Update(cmd())
	s.Equal("the clock is already frozen", s.model.feedback)
}

func (s *ModelTestSuite) TestErrorsFromTheService() {
	testCases := []struct {
		name    string
		err     error
		done    bool
		errText string
		result  string
	}{
		{
			name:    "unavailable keeps playing",
			err:     errors.Unavailable("save store is down"),
			errText: "save store is down",
		},
		{
			name:   "missing data ends the battle",
			err:    errors.DataNotFound("no verbs for present/regular"),
			done:   true,
			result: "The battle could not continue: no verbs for present/regular",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.model.done, s.model.result, s.model.errText = false, "", ""
			s.model.Update(errMsg{err: tc.err})
			s.Equal(tc.done, s.model.done)
			s.Equal(tc.errText, s.model.errText)
			s.Equal(tc.result, s.model.Result())
		})
	}
}

func (s *ModelTestSuite) TestViewMarksStrictChallenge() {
	s.NotContains(s.model.View(), "exact form required")

	s.model.battle.Challenge.Strict = true
	s.Contains(s.model.View(), "exact form required")
}

func (s *ModelTestSuite) TestViewShowsPromptAndHealth() {
	view := s.model.View()
	s.Contains(view, "hablar (present/regular): yo")
	s.Contains(view, "Rosa")
	s.Contains(view, "60/60")
	s.Contains(view, "7s left")
}

func (s *ModelTestSuite) TestFeedDeliversBusEvents() {
	sink := events.NewBusSink(s.bus)
	sink.Emit(s.ctx, &events.Event{Type: events.TimerTick, Remaining: 5})

	msg := s.feed.Next()()
	ev, ok := msg.(EventMsg)
	s.Require().True(ok)
	s.Equal(events.TimerTick, ev.Event.Type)
	s.Equal(5, ev.Event.Remaining)
}

func (s *ModelTestSuite) TestFeedDropsWhenFull() {
	sink := events.NewBusSink(s.bus)
	for i := 0; i < 10; i++ {
		sink.Emit(s.ctx, &events.Event{Type: events.TimerTick, Remaining: i})
	}
	s.Len(s.feed.ch, 4)

	s.feed.Close()
	s.feed.Close()
}

func TestRenderBar(t *testing.T) {
	style := lipgloss.NewStyle()
	testCases := []struct {
		name     string
		current  int
		maxValue int
		filled   int
	}{
		{name: "full", current: 100, maxValue: 100, filled: barWidth},
		{name: "half", current: 50, maxValue: 100, filled: barWidth / 2},
		{name: "sliver shows", current: 1, maxValue: 100, filled: 1},
		{name: "empty", current: 0, maxValue: 100, filled: 0},
		{name: "no max", current: 5, maxValue: 0, filled: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bar := renderBar(tc.current, tc.maxValue, style)
			if got := strings.Count(bar, "█"); got != tc.filled {
				t.Fatalf("filled = %d, want %d", got, tc.filled)
			}
		})
	}
}
