package battle_test

import (
	"context"
	"testing"
	"time"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/verb-battle/internal/pkg/clock"
	"github.com/KirkDiggler/verb-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/verb-battle/internal/services/progression"
	"github.com/KirkDiggler/verb-battle/internal/services/unlock"
	unlockmock "github.com/KirkDiggler/verb-battle/internal/services/unlock/mock"
)

type manualTicker struct {
	c       chan time.Time
	resets  chan time.Duration
	stopped chan struct{}
}

func newManualTicker() *manualTicker {
	return &manualTicker{
		c:       make(chan time.Time),
		resets:  make(chan time.Duration, 8),
		stopped: make(chan struct{}),
	}
}

func (m *manualTicker) C() <-chan time.Time   { return m.c }
func (m *manualTicker) Reset(d time.Duration) { m.resets <- d }
func (m *manualTicker) Stop()                 { close(m.stopped) }

type manualClock struct {
	ticker   *manualTicker
	interval time.Duration
}

func (m *manualClock) Now() time.Time { return time.Unix(0, 0) }

func (m *manualClock) NewTicker(d time.Duration) clock.Ticker {
	m.interval = d
	return m.ticker
}

func waitReset(t *testing.T, ticker *manualTicker) {
	t.Helper()
	select {
	case d := <-ticker.resets:
		require.Equal(t, battle.TickInterval, d)
	case <-time.After(time.Second):
		t.Fatal("ticker was not reset")
	}
}

// remaining returns the open sequence and its countdown, or -1s on error
func remaining(svc battle.Service) (int, int) {
	out, err := svc.GetBattle(context.Background(), &battle.GetBattleInput{})
	if err != nil {
		return -1, -1
	}
	return out.Battle.Sequence, out.Battle.TimeRemaining
}

func TestRunnerRestartsTickerPerChallenge(t *testing.T) {
	ctrl := gomock.NewController(t)
	unlocks := unlockmock.NewMockService(ctrl)
	unlocks.EXPECT().CheckUnlocks(gomock.Any(), gomock.Any()).
		Return(&unlock.CheckUnlocksOutput{}, nil).AnyTimes()

	bus := rpgevents.NewBus()
	sink := events.NewBusSink(bus)

	prog, err := progression.New(&progression.Config{Unlocks: unlocks, Events: sink})
	require.NoError(t, err)
	svc, err := battle.NewOrchestrator(&battle.Config{
		Challenges:       &scriptedChallenges{},
		Progression:      prog,
		Events:           sink,
		IDGenerator:      idgen.NewSequential("battle"),
		TimeLimitSeconds: 10,
	})
	require.NoError(t, err)

	ticker := newManualTicker()
	clk := &manualClock{ticker: ticker}
	runner, err := battle.NewRunner(&battle.RunnerConfig{Battles: svc, Bus: bus, Clock: clk})
	require.NoError(t, err)

	char, err := entities.NewCharacter("char_1", "Ana", entities.ClassWarrior)
	require.NoError(t, err)
	_, err = svc.StartBattle(context.Background(), &battle.StartBattleInput{
		Character: char,
		Enemy: &entities.EnemyTemplate{
			ID:                "slime",
			Name:              "Slime",
			MaxHealth:         100,
			Tenses:            []entities.TenseRef{{Type: "present", SubType: "regular"}},
			Pronouns:          []string{"yo"},
			QuestionsRequired: 5,
			XPReward:          20,
			BaseDamage:        20,
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	// the presentation made before Run started still re-phases the ticker
	waitReset(t, ticker)
	ticker.c <- time.Unix(1, 0)
	require.Eventually(t, func() bool {
		_, left := remaining(svc)
		return left == 9
	}, time.Second, 5*time.Millisecond)

	// answering mid-period presents challenge 2; the countdown must not
	// move until a full interval has passed
	_, err = svc.SubmitAnswer(context.Background(), &battle.SubmitAnswerInput{Answer: "hablo"})
	require.NoError(t, err)
	waitReset(t, ticker)

	seq, left := remaining(svc)
	assert.Equal(t, 2, seq)
	assert.Equal(t, 10, left)

	ticker.c <- time.Unix(2, 0)
	require.Eventually(t, func() bool {
		_, left := remaining(svc)
		return left == 9
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}

	_, open := <-ticker.stopped
	assert.False(t, open, "ticker is stopped on exit")
	assert.Equal(t, battle.TickInterval, clk.interval)
}

func TestNewRunnerValidation(t *testing.T) {
	_, err := battle.NewRunner(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = battle.NewRunner(&battle.RunnerConfig{Bus: rpgevents.NewBus()})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Battles")
	assert.Contains(t, err.Error(), "Clock")
}
