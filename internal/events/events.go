// Package events defines the typed notifications the battle core emits for
// the presentation layer, and carries them over an rpg-toolkit event bus.
// Emission is fire-and-forget: the core never depends on a consumer existing.
package events

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/verb-battle/internal/entities"
)

//go:generate mockgen -destination=mock/mock_sink.go -package=eventsmock github.com/KirkDiggler/verb-battle/internal/events Sink

// Type names a notification. The string is the bus topic.
type Type string

// Battle notifications
const (
	ChallengePresented Type = "battle.challenge_presented"
	TimerTick          Type = "battle.timer_tick"
	AnswerCorrect      Type = "battle.answer_correct"
	AnswerWrong        Type = "battle.answer_wrong"
	ComboChanged       Type = "battle.combo_changed"
	BossPhaseChanged   Type = "battle.boss_phase_changed"
	TimerFrozen        Type = "battle.timer_frozen"
	Victory            Type = "battle.victory"
	Defeat             Type = "battle.defeat"
	BattleAbandoned    Type = "battle.abandoned"
	BattleAborted      Type = "battle.aborted"
)

// Progression and game notifications
const (
	LevelUp            Type = "progression.level_up"
	TenseMastered      Type = "progression.tense_mastered"
	RegionUnlocked     Type = "progression.region_unlocked"
	PersistenceWarning Type = "game.persistence_warning"
)

// AllTypes lists every notification type, in the order above
func AllTypes() []Type {
	return []Type{
		ChallengePresented, TimerTick, AnswerCorrect, AnswerWrong, ComboChanged,
		BossPhaseChanged, TimerFrozen, Victory, Defeat, BattleAbandoned, BattleAborted,
		LevelUp, TenseMastered, RegionUnlocked, PersistenceWarning,
	}
}

// payloadKey is where the typed Event rides inside the toolkit event context
const payloadKey = "verbbattle.payload"

// Stats summarizes a finished battle
type Stats struct {
	Correct   int
	Wrong     int
	Timeouts  int
	ByTense   map[string]int
	MaxCombo  int
	Questions int
}

// Event is a single notification. Only the fields relevant to Type are set.
type Event struct {
	Type Type

	// Source is usually the character, Target the enemy
	Source core.Entity
	Target core.Entity

	BattleID string
	// Sequence numbers the challenge within its battle
	Sequence  int
	Challenge *entities.Challenge
	// Answer is what the player typed; Timeout marks an expiry instead
	Answer  string
	Timeout bool

	Remaining    int
	TimeLimit    int
	Damage       int
	Combo        int
	MaxCombo     int
	PlayerHealth int
	EnemyHealth  int
	Phase        int
	PrevPhase    int

	XPGained int
	Level    int
	RegionID string
	Tense    string
	Stats    *Stats

	// Err is set for BattleAborted and PersistenceWarning
	Err error
}

// Sink receives notifications
type Sink interface {
	Emit(ctx context.Context, e *Event)
}

// BusSink publishes notifications on an rpg-toolkit event bus
type BusSink struct {
	bus rpgevents.EventBus
}

// NewBusSink creates a sink over bus
func NewBusSink(bus rpgevents.EventBus) *BusSink {
	return &BusSink{bus: bus}
}

// Bus returns the underlying bus so consumers can subscribe
func (s *BusSink) Bus() rpgevents.EventBus {
	return s.bus
}

// Emit publishes e. Publish failures are logged and dropped.
func (s *BusSink) Emit(ctx context.Context, e *Event) {
	if e == nil {
		return
	}
	ge := rpgevents.NewGameEvent(string(e.Type), e.Source, e.Target)
	ge.Context().Set(payloadKey, e)

	if err := s.bus.Publish(ctx, ge); err != nil {
		slog.DebugContext(ctx, "event handler failed",
			"type", e.Type,
			"error", err)
	}
}

// FromToolkit extracts the typed notification from a toolkit event
func FromToolkit(e rpgevents.Event) (*Event, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e.Context().Get(payloadKey)
	if !ok {
		return nil, false
	}
	ev, ok := v.(*Event)
	return ev, ok
}

// HandlerFunc handles a typed notification
type HandlerFunc func(ctx context.Context, e *Event)

// Subscribe registers fn for one notification type and returns the
// subscription id for Unsubscribe
func Subscribe(bus rpgevents.EventBus, t Type, fn HandlerFunc) string {
	return bus.SubscribeFunc(string(t), 0, func(ctx context.Context, raw rpgevents.Event) error {
		if ev, ok := FromToolkit(raw); ok {
			fn(ctx, ev)
		}
		return nil
	})
}

// SubscribeAll registers fn for every notification type
func SubscribeAll(bus rpgevents.EventBus, fn HandlerFunc) []string {
	ids := make([]string, 0, len(AllTypes()))
	for _, t := range AllTypes() {
		ids = append(ids, Subscribe(bus, t, fn))
	}
	return ids
}

// Unsubscribe removes every subscription in ids
func Unsubscribe(bus rpgevents.EventBus, ids []string) {
	for _, id := range ids {
		_ = bus.Unsubscribe(id)
	}
}

// Nop discards every notification
type Nop struct{}

// Emit implements Sink
func (Nop) Emit(context.Context, *Event) {}
