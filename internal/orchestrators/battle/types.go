package battle

import (
	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/events"
)

// State is the battle state machine position
type State int

// Battle states. Victory and Defeat are terminal for a battle.
const (
	StateIdle State = iota
	StateChallengePresented
	StateEvaluating
	StateVictory
	StateDefeat
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChallengePresented:
		return "challenge_presented"
	case StateEvaluating:
		return "evaluating"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Battle is a read-only snapshot of the current or last battle
type Battle struct {
	ID          string
	State       State
	Active      bool
	CharacterID string
	Enemy       entities.Enemy
	// Challenge has a blank Answer while it is still open
	Challenge *entities.Challenge
	// Sequence numbers challenges from 1 so answers can name the one they target
	Sequence      int
	Combo         int
	MaxCombo      int
	TimeRemaining int
	TimeLimit     int
	Frozen        bool
	Phase         int
	PlayerHealth  int
	Stats         events.Stats
}

// StartBattleInput starts a fight against a fresh instance of Enemy
type StartBattleInput struct {
	Character *entities.Character
	Enemy     *entities.EnemyTemplate
}

// StartBattleOutput contains the battle after the first challenge is presented
type StartBattleOutput struct {
	Battle *Battle
}

// SubmitAnswerInput is a player answer
type SubmitAnswerInput struct {
	Answer string
	// Sequence, when set, must match the open challenge or the answer is ignored
	Sequence int
}

// SubmitAnswerOutput reports the evaluation
type SubmitAnswerOutput struct {
	// Ignored is true when no challenge was open for this answer
	Ignored bool
	Correct bool
	// Expected is the resolved answer of the evaluated challenge
	Expected string
	Damage   int
	Battle   *Battle
}

// TickInput advances the challenge countdown by one second
type TickInput struct {
	// Sequence names the challenge the tick was timed for. A tick for an
	// earlier challenge is ignored; zero ticks whatever challenge is open.
	Sequence int
}

// TickOutput reports the countdown after the tick
type TickOutput struct {
	// Ignored is true when no challenge was open or Sequence was stale
	Ignored   bool
	Remaining int
	// Expired is true when this tick ran out the clock
	Expired bool
	Battle  *Battle
}

// UseFreezeInput requests a timer pause
type UseFreezeInput struct {
	// Seconds defaults to the configured freeze length
	Seconds int
}

// UseFreezeOutput reports whether the pause took effect
type UseFreezeOutput struct {
	Applied bool
}

// AbandonInput ends the active battle without a result
type AbandonInput struct{}

// AbandonOutput reports whether a battle was abandoned
type AbandonOutput struct {
	Abandoned bool
}

// GetBattleInput requests the current snapshot
type GetBattleInput struct{}

// GetBattleOutput contains the snapshot, nil if no battle was ever started
type GetBattleOutput struct {
	Battle *Battle
}
