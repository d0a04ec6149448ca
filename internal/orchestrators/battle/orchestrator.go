// Package battle implements the battle engine: one active fight at a time,
// driven by answer submissions and one-second ticks.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/verb-battle/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/verb-battle/internal/engine"
	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/verb-battle/internal/services/progression"
)

// Defaults for the battle timing knobs
const (
	DefaultTimeLimitSeconds = 10
	DefaultFreezeSeconds    = 5
)

// Service defines the battle operations. Every call is serialized, so a tick
// and an answer never interleave.
type Service interface {
	// StartBattle instantiates the enemy and presents the first challenge
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// SubmitAnswer evaluates an answer against the open challenge
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// Tick advances the countdown one second. Expiry counts as a wrong answer.
	Tick(ctx context.Context, input *TickInput) (*TickOutput, error)

	// UseFreeze pauses the countdown. At most one pause is active at a time.
	UseFreeze(ctx context.Context, input *UseFreezeInput) (*UseFreezeOutput, error)

	// Abandon ends the active battle with no reward and no penalty
	Abandon(ctx context.Context, input *AbandonInput) (*AbandonOutput, error)

	// GetBattle returns a snapshot of the current or last battle
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)
}

// ChallengeSource produces the next challenge for an enemy
type ChallengeSource interface {
	Next(enemy *entities.Enemy) (*entities.Challenge, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	Challenges  ChallengeSource
	Progression progression.Service
	Events      events.Sink
	IDGenerator idgen.Generator

	TimeLimitSeconds int
	PlayerBaseDamage int
	FreezeSeconds    int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Challenges == nil {
		vb.RequiredField("Challenges")
	}
	if c.Progression == nil {
		vb.RequiredField("Progression")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.TimeLimitSeconds < 0 {
		vb.Field("TimeLimitSeconds", "must not be negative")
	}
	if c.FreezeSeconds < 0 {
		vb.Field("FreezeSeconds", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	challenges  ChallengeSource
	progression progression.Service
	events      events.Sink
	idGen       idgen.Generator
	damage      *engine.DamageCalculator

	timeLimit     int
	freezeSeconds int

	mu     sync.Mutex
	state  State
	battle *battleState
}

// battleState is everything a single fight owns
type battleState struct {
	id        string
	char      *entities.Character
	enemy     *entities.Enemy
	challenge *entities.Challenge
	sequence  int
	active    bool

	combo engine.ComboTracker
	boss  *engine.BossPhaseController
	timer *engine.TimerController

	timeLimit int
	stats     events.Stats

	// set by timer callbacks during Advance
	ticked  bool
	expired bool
}

// NewOrchestrator creates a new battle orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
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
	timeLimit := cfg.TimeLimitSeconds
	if timeLimit == 0 {
		timeLimit = DefaultTimeLimitSeconds
	}
	freeze := cfg.FreezeSeconds
	if freeze == 0 {
		freeze = DefaultFreezeSeconds
	}

	return &orchestrator{
		challenges:    cfg.Challenges,
		progression:   cfg.Progression,
		events:        sink,
		idGen:         cfg.IDGenerator,
		damage:        engine.NewDamageCalculator(cfg.PlayerBaseDamage),
		timeLimit:     timeLimit,
		freezeSeconds: freeze,
		state:         StateIdle,
	}, nil
}

func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input.Enemy == nil {
		return nil, errors.InvalidArgument("enemy is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.battle != nil && o.battle.active {
		return nil, errors.FailedPreconditionf("battle %s is still in progress", o.battle.id)
	}

	enemy := input.Enemy.Instantiate()
	b := &battleState{
		id:     o.idGen.Generate(),
		char:   input.Character,
		enemy:  enemy,
		active: true,
		boss:   engine.NewBossPhaseController(enemy),
		timer:  engine.NewTimerController(),
		stats:  events.Stats{ByTense: make(map[string]int)},
	}
	o.battle = b

	slog.InfoContext(ctx, "battle started",
		"battle_id", b.id,
		"character_id", b.char.ID,
		"enemy_id", enemy.ID,
		"boss", enemy.IsBoss)

	if err := o.present(ctx, b); err != nil {
		return nil, err
	}

	return &StartBattleOutput{Battle: o.snapshot()}, nil
}

func (o *orchestrator) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	b := o.battle
	if o.state != StateChallengePresented || b == nil || !b.active {
		return &SubmitAnswerOutput{Ignored: true, Battle: o.snapshot()}, nil
	}
	if input.Sequence != 0 && input.Sequence != b.sequence {
		slog.DebugContext(ctx, "stale answer ignored",
			"battle_id", b.id,
			"sequence", input.Sequence,
			"current", b.sequence)
		return &SubmitAnswerOutput{Ignored: true, Battle: o.snapshot()}, nil
	}

	out, err := o.evaluate(ctx, b, input.Answer, false)
	if err != nil {
		return nil, err
	}
	out.Battle = o.snapshot()
	return out, nil
}

func (o *orchestrator) Tick(ctx context.Context, input *TickInput) (*TickOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	b := o.battle
	if o.state != StateChallengePresented || b == nil || !b.active {
		return &TickOutput{Ignored: true, Battle: o.snapshot()}, nil
	}
	if input != nil && input.Sequence != 0 && input.Sequence != b.sequence {
		return &TickOutput{
			Ignored:   true,
			Remaining: b.timer.Remaining(),
			Battle:    o.snapshot(),
		}, nil
	}

	b.ticked, b.expired = false, false
	b.timer.Advance()

	out := &TickOutput{Remaining: b.timer.Remaining()}
	if b.ticked {
		o.emit(ctx, b, &events.Event{
			Type:      events.TimerTick,
			Remaining: out.Remaining,
			TimeLimit: b.timeLimit,
		})
	}

	if b.expired {
		out.Expired = true
		if _, err := o.evaluate(ctx, b, "", true); err != nil {
			return nil, err
		}
	}

	out.Battle = o.snapshot()
	return out, nil
}

func (o *orchestrator) UseFreeze(ctx context.Context, input *UseFreezeInput) (*UseFreezeOutput, error) {
	seconds := o.freezeSeconds
	if input != nil && input.Seconds > 0 {
		seconds = input.Seconds
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	b := o.battle
	if o.state != StateChallengePresented || b == nil || !b.active {
		return &UseFreezeOutput{}, nil
	}
	if !b.timer.Pause(seconds) {
		return &UseFreezeOutput{}, nil
	}

	o.emit(ctx, b, &events.Event{
		Type:      events.TimerFrozen,
		Remaining: b.timer.Remaining(),
		TimeLimit: seconds,
	})
	return &UseFreezeOutput{Applied: true}, nil
}

func (o *orchestrator) Abandon(ctx context.Context, _ *AbandonInput) (*AbandonOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	b := o.battle
	if b == nil || !b.active {
		return &AbandonOutput{}, nil
	}

	o.end(b, StateIdle)
	slog.InfoContext(ctx, "battle abandoned",
		"battle_id", b.id,
		"enemy_id", b.enemy.ID)

	o.emit(ctx, b, &events.Event{
		Type:  events.BattleAbandoned,
		Stats: o.stats(b),
	})
	return &AbandonOutput{Abandoned: true}, nil
}

func (o *orchestrator) GetBattle(_ context.Context, _ *GetBattleInput) (*GetBattleOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &GetBattleOutput{Battle: o.snapshot()}, nil
}

// present generates the next challenge and restarts the countdown.
// Missing table data aborts the battle.
func (o *orchestrator) present(ctx context.Context, b *battleState) error {
	challenge, err := o.challenges.Next(b.enemy)
	if err != nil {
		o.abort(ctx, b, err)
		return errors.Wrapf(err, "battle %s aborted", b.id)
	}

	challenge.Strict = b.boss.StrictMatch()
	b.challenge = challenge
	b.sequence++
	b.stats.Questions++

	class := b.char.ClassDefinition()
	b.timeLimit = b.boss.TimeLimit(o.timeLimit) + class.TimeBonusSeconds
	b.timer.Start(b.timeLimit,
		func(int) { b.ticked = true },
		func() { b.expired = true },
	)
	o.state = StateChallengePresented

	o.emit(ctx, b, &events.Event{
		Type:      events.ChallengePresented,
		Sequence:  b.sequence,
		Challenge: openChallenge(challenge),
		Remaining: b.timeLimit,
		TimeLimit: b.timeLimit,
		Phase:     b.boss.Phase(),
	})
	return nil
}

// evaluate runs exactly once per challenge, either for an answer or an expiry
func (o *orchestrator) evaluate(ctx context.Context, b *battleState, answer string, timeout bool) (*SubmitAnswerOutput, error) {
	o.state = StateEvaluating
	b.timer.Cancel()

	challenge := b.challenge
	correct := !timeout && challenge.Check(answer)
	out := &SubmitAnswerOutput{Correct: correct, Expected: challenge.Answer}

	slog.DebugContext(ctx, "answer evaluated",
		"battle_id", b.id,
		"sequence", b.sequence,
		"correct", correct,
		"timeout", timeout)

	if correct {
		out.Damage = o.hit(ctx, b)
		if b.enemy.IsDefeated() {
			o.victory(ctx, b)
			return out, nil
		}
	} else {
		out.Damage = o.miss(ctx, b, answer, timeout)
		if b.char.IsDefeated() {
			o.defeat(ctx, b)
			return out, nil
		}
	}

	if err := o.present(ctx, b); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) hit(ctx context.Context, b *battleState) int {
	class := b.char.ClassDefinition()
	dealt := b.enemy.TakeDamage(o.damage.PlayerDamage(class, b.combo.Count()))
	combo := b.combo.Increment()

	tense := b.challenge.Tense.String()
	b.stats.Correct++
	b.stats.ByTense[tense]++

	if _, err := o.progression.RecordCorrectAnswer(ctx, &progression.RecordCorrectAnswerInput{
		Character: b.char,
		Tense:     tense,
	}); err != nil {
		slog.WarnContext(ctx, "failed to record tense progress",
			"battle_id", b.id,
			"tense", tense,
			"error", err)
	}

	o.emit(ctx, b, &events.Event{
		Type:        events.AnswerCorrect,
		Challenge:   b.challenge,
		Damage:      dealt,
		Combo:       combo,
		EnemyHealth: b.enemy.Health,
	})
	o.emit(ctx, b, &events.Event{
		Type:     events.ComboChanged,
		Combo:    combo,
		MaxCombo: b.combo.Max(),
	})

	if b.enemy.IsDefeated() {
		return dealt
	}
	for _, change := range b.boss.Evaluate(b.enemy.HealthRatio()) {
		slog.InfoContext(ctx, "boss phase changed",
			"battle_id", b.id,
			"enemy_id", b.enemy.ID,
			"phase", change.To)
		o.emit(ctx, b, &events.Event{
			Type:      events.BossPhaseChanged,
			Phase:     change.To,
			PrevPhase: change.From,
		})
	}

	return dealt
}

func (o *orchestrator) miss(ctx context.Context, b *battleState, answer string, timeout bool) int {
	prev := b.combo.Reset()
	if timeout {
		b.stats.Timeouts++
	} else {
		b.stats.Wrong++
	}

	taken := b.char.TakeDamage(o.damage.EnemyDamage(b.enemy.BaseDamage, b.boss.DamageMultiplier()))

	o.emit(ctx, b, &events.Event{
		Type:         events.AnswerWrong,
		Challenge:    b.challenge,
		Answer:       answer,
		Timeout:      timeout,
		Damage:       taken,
		PlayerHealth: b.char.Health,
	})
	if prev != 0 {
		o.emit(ctx, b, &events.Event{
			Type:     events.ComboChanged,
			Combo:    0,
			MaxCombo: b.combo.Max(),
		})
	}
	return taken
}

func (o *orchestrator) victory(ctx context.Context, b *battleState) {
	o.end(b, StateVictory)
	b.char.MarkDefeated(b.enemy.ID)

	xp := o.damage.VictoryXP(b.enemy.XPReward, b.combo.Max())
	if _, err := o.progression.GainXP(ctx, &progression.GainXPInput{
		Character: b.char,
		Amount:    xp,
	}); err != nil {
		slog.WarnContext(ctx, "failed to apply victory xp",
			"battle_id", b.id,
			"xp", xp,
			"error", err)
	}

	slog.InfoContext(ctx, "battle ended",
		"battle_id", b.id,
		"outcome", StateVictory.String(),
		"xp", xp,
		"max_combo", b.combo.Max())

	o.emit(ctx, b, &events.Event{
		Type:         events.Victory,
		XPGained:     xp,
		MaxCombo:     b.combo.Max(),
		Level:        b.char.Level,
		PlayerHealth: b.char.Health,
		Stats:        o.stats(b),
	})
}

func (o *orchestrator) defeat(ctx context.Context, b *battleState) {
	o.end(b, StateDefeat)
	b.char.RestoreHealth()

	slog.InfoContext(ctx, "battle ended",
		"battle_id", b.id,
		"outcome", StateDefeat.String(),
		"enemy_health", b.enemy.Health)

	o.emit(ctx, b, &events.Event{
		Type:         events.Defeat,
		MaxCombo:     b.combo.Max(),
		EnemyHealth:  b.enemy.Health,
		PlayerHealth: b.char.Health,
		Stats:        o.stats(b),
	})
}

func (o *orchestrator) abort(ctx context.Context, b *battleState, cause error) {
	o.end(b, StateIdle)

	slog.ErrorContext(ctx, "battle aborted",
		"battle_id", b.id,
		"enemy_id", b.enemy.ID,
		"error", cause)

	o.emit(ctx, b, &events.Event{
		Type: events.BattleAborted,
		Err:  cause,
	})
}

// end is the only way a battle stops; it always cancels the countdown
func (o *orchestrator) end(b *battleState, state State) {
	b.timer.Cancel()
	b.active = false
	o.state = state
}

func (o *orchestrator) emit(ctx context.Context, b *battleState, e *events.Event) {
	e.Source = b.char
	e.Target = b.enemy
	e.BattleID = b.id
	o.events.Emit(ctx, e)
}

func (o *orchestrator) stats(b *battleState) *events.Stats {
	s := b.stats
	s.MaxCombo = b.combo.Max()
	s.ByTense = make(map[string]int, len(b.stats.ByTense))
	for k, v := range b.stats.ByTense {
		s.ByTense[k] = v
	}
	return &s
}

func (o *orchestrator) snapshot() *Battle {
	b := o.battle
	if b == nil {
		return nil
	}

	snap := &Battle{
		ID:            b.id,
		State:         o.state,
		Active:        b.active,
		CharacterID:   b.char.ID,
		Enemy:         *b.enemy,
		Sequence:      b.sequence,
		Combo:         b.combo.Count(),
		MaxCombo:      b.combo.Max(),
		TimeRemaining: b.timer.Remaining(),
		TimeLimit:     b.timeLimit,
		Frozen:        b.timer.Paused(),
		Phase:         b.boss.Phase(),
		PlayerHealth:  b.char.Health,
		Stats:         *o.stats(b),
	}
	if b.challenge != nil {
		if b.active {
			snap.Challenge = openChallenge(b.challenge)
		} else {
			c := *b.challenge
			snap.Challenge = &c
		}
	}
	return snap
}

// openChallenge hides the answer of a challenge still waiting for one
func openChallenge(c *entities.Challenge) *entities.Challenge {
	open := *c
	open.Answer = ""
	return &open
}
