package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/verb-battle/internal/config"
	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/game"
	gamemock "github.com/KirkDiggler/verb-battle/internal/orchestrators/game/mock"
)

type AppTestSuite struct {
	suite.Suite
	ctx context.Context
	app *app
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()

	cfg := config.Default()
	cfg.Storage.Driver = config.DriverMemory

	a, err := newApp(cfg)
	s.Require().NoError(err)
	s.app = a
}

func (s *AppTestSuite) TearDownTest() {
	s.app.close()
}

func (s *AppTestSuite) TestLoadWithoutSave() {
	_, err := s.app.loadGame(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *AppTestSuite) TestNewGameThenStatus() {
	_, err := s.app.game.NewGame(s.ctx, &game.NewGameInput{Name: "Rosa", Class: entities.ClassCleric})
	s.Require().NoError(err)

	loaded, err := s.app.loadGame(s.ctx)
	s.Require().NoError(err)

	var buf bytes.Buffer
	writeStatus(&buf, loaded.Character)

	s.Contains(buf.String(), "Rosa the Cleric")
	s.Contains(buf.String(), "Level   1 (0/")
	s.Contains(buf.String(), "Enemies defeated  0")
}

func (s *AppTestSuite) TestRegionsListing() {
	_, err := s.app.game.NewGame(s.ctx, &game.NewGameInput{Name: "Rosa", Class: entities.ClassWarrior})
	s.Require().NoError(err)

	out, err := s.app.game.Regions(s.ctx, &game.RegionsInput{})
	s.Require().NoError(err)

	var buf bytes.Buffer
	writeRegions(&buf, out.Regions)

	s.Contains(buf.String(), "Verdant Meadow (meadow) [open]")
	s.Contains(buf.String(), "  * Present Slime (slime)")
	s.Contains(buf.String(), "    Goblin Scribe (goblin)")
	s.Contains(buf.String(), "Whispering Forest (forest) [locked, level 2, clear meadow]")
	s.NotContains(buf.String(), "Preterite Wolf")
}

func (s *AppTestSuite) TestUnknownStorageDriver() {
	cfg := config.Default()
	cfg.Storage.Driver = "floppy"

	_, err := newApp(cfg)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *AppTestSuite) TestClassName() {
	s.Equal("Mage", className(entities.ClassMage))
	s.Equal("bard", className("bard"))
}

func (s *AppTestSuite) TestLoadGameOutcomes() {
	testCases := []struct {
		name    string
		output  *game.LoadOutput
		loadErr error
		checkFn func(err error) bool
	}{
		{
			name:   "found",
			output: &game.LoadOutput{Found: true, Character: &entities.Character{Name: "Rosa"}},
		},
		{
			name:    "empty slot",
			output:  &game.LoadOutput{},
			checkFn: errors.IsNotFound,
		},
		{
			name:    "unreadable save",
			output:  &game.LoadOutput{Warning: errors.DataLoss("bad json")},
			checkFn: errors.IsDataLoss,
		},
		{
			name:    "load error",
			loadErr: errors.FailedPrecondition("battle in progress"),
			checkFn: errors.IsFailedPrecondition,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			ctrl := gomock.NewController(s.T())
			mockGame := gamemock.NewMockService(ctrl)
			mockGame.EXPECT().Load(gomock.Any(), gomock.Any()).Return(tc.output, tc.loadErr)

			a := &app{game: mockGame}
			out, err := a.loadGame(s.ctx)
			if tc.checkFn == nil {
				s.Require().NoError(err)
				s.Equal("Rosa", out.Character.Name)
				return
			}
			s.Require().Error(err)
			s.True(tc.checkFn(err))
		})
	}
}
