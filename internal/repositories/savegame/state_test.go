package savegame_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/repositories/savegame"
)

type StateTestSuite struct {
	suite.Suite
}

func TestStateSuite(t *testing.T) {
	suite.Run(t, new(StateTestSuite))
}

func (s *StateTestSuite) TestDecodeMigratesOlderVersions() {
	testCases := []struct {
		name   string
		raw    string
		expect func(st *savegame.State)
	}{
		{
			name: "unversioned full layout",
			raw: `{"name":"Ana","class":"mage","level":3,"health":90,"maxHealth":140,"xp":50,
				"xpToNextLevel":480,"skillPoints":2,"defeatedEnemyIds":["slime"],
				"masteredTenses":["present/regular"],"unlockedRegionIds":["meadow","forest"]}`,
			expect: func(st *savegame.State) {
				s.Equal(savegame.LegacyCharacterID, st.ID)
				s.Equal("mage", st.Class)
				s.Equal(3, st.Level)
				s.Equal(90, st.Health)
				s.Equal(140, st.MaxHealth)
				s.Equal(480, st.XPToNextLevel)
				s.Equal([]string{"slime"}, st.DefeatedEnemyIDs)
				s.Empty(st.TenseProgress)
				s.NotNil(st.TenseProgress)
			},
		},
		{
			name: "unversioned name only",
			raw:  `{"name":"Ana"}`,
			expect: func(st *savegame.State) {
				s.Equal("warrior", st.Class)
				s.Equal(entities.StartingLevel, st.Level)
				s.Equal(entities.XPToNextLevel(1), st.XPToNextLevel)
				s.Equal(entities.BaseMaxHealth, st.MaxHealth)
				s.Equal(entities.BaseMaxHealth, st.Health)
				s.Equal([]string{}, st.DefeatedEnemyIDs)
				s.Equal([]string{}, st.MasteredTenses)
				s.Equal([]string{}, st.UnlockedRegionIDs)
			},
		},
		{
			name: "cleric at level 2 without max health",
			raw:  `{"name":"Ana","class":"cleric","level":2}`,
			expect: func(st *savegame.State) {
				s.Equal(entities.BaseMaxHealth+20+entities.HealthPerLevel, st.MaxHealth)
				s.Equal(st.MaxHealth, st.Health)
			},
		},
		{
			name: "version one keeps its id",
			raw:  `{"version":1,"id":"char_7","name":"Ana","class":"warrior","level":1,"health":30,"maxHealth":100}`,
			expect: func(st *savegame.State) {
				s.Equal("char_7", st.ID)
				s.Equal(30, st.Health)
			},
		},
		{
			name: "health above max is clamped",
			raw:  `{"version":2,"id":"c","name":"Ana","class":"warrior","health":500,"maxHealth":120}`,
			expect: func(st *savegame.State) {
				s.Equal(120, st.Health)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			st, _, err := savegame.Decode([]byte(tc.raw))
			s.Require().NoError(err)
			s.Equal(savegame.CurrentVersion, st.Version)
			tc.expect(st)
		})
	}
}

func (s *StateTestSuite) TestDecodeReportsMigration() {
	_, migrated, err := savegame.Decode([]byte(`{"name":"Ana"}`))
	s.Require().NoError(err)
	s.True(migrated)

	_, migrated, err = savegame.Decode([]byte(`{"version":2,"name":"Ana"}`))
	s.Require().NoError(err)
	s.False(migrated)
}

func (s *StateTestSuite) TestDecodeRejectsBadDocuments() {
	_, _, err := savegame.Decode([]byte(`{"name":`))
	s.True(errors.IsDataLoss(err))

	_, _, err = savegame.Decode([]byte(`{"version":9,"name":"Ana"}`))
	s.True(errors.IsDataLoss(err))
}

func (s *StateTestSuite) TestToCharacterRejectsUnusableState() {
	_, err := (&savegame.State{Class: "warrior"}).ToCharacter()
	s.True(errors.IsDataLoss(err))

	_, err = (&savegame.State{Name: "Ana", Class: "bard"}).ToCharacter()
	s.True(errors.IsDataLoss(err))
}

func (s *StateTestSuite) TestCharacterRoundTrip() {
	char, err := entities.NewCharacter("char_1", "Ana", entities.ClassCleric)
	s.Require().NoError(err)
	char.TenseProgress["present/regular"] = 7
	char.MarkDefeated("slime")
	char.UnlockRegion("meadow")

	raw, err := savegame.Encode(savegame.FromCharacter(char))
	s.Require().NoError(err)

	st, _, err := savegame.Decode(raw)
	s.Require().NoError(err)
	restored, err := st.ToCharacter()
	s.Require().NoError(err)

	s.Equal(char.ID, restored.ID)
	s.Equal(char.MaxHealth, restored.MaxHealth)
	s.Equal(7, restored.TenseProgress["present/regular"])
	s.True(restored.HasDefeated("slime"))
	s.True(restored.IsRegionUnlocked("meadow"))
}

func (s *StateTestSuite) TestInMemoryLoadMigratesRawDocument() {
	repo := savegame.NewInMemory()
	repo.Put("old", []byte(`{"name":"Ana","unlockedRegionIds":["meadow"]}`))

	out, err := repo.Load(context.Background(), savegame.LoadInput{Slot: "old"})
	s.Require().NoError(err)
	s.True(out.Migrated)
	s.Equal([]string{"meadow"}, out.State.UnlockedRegionIDs)
}
