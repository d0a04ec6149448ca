// Package game owns the player character between battles. It gates battle
// starts on the unlock policy and saves at every battle boundary.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/verb-battle/internal/orchestrators/game Service

import (
	"context"
	"log/slog"
	"sync"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/verb-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/verb-battle/internal/repositories/savegame"
	"github.com/KirkDiggler/verb-battle/internal/services/unlock"
)

// Service is the game context
type Service interface {
	// NewGame replaces the current character with a fresh level one character
	NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error)

	// Load replaces the current character with the saved one
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// Save writes the current character. Not allowed mid-battle.
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// StartBattle checks the enemy is available and starts the fight
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// Status returns the character as of the last battle boundary
	Status(ctx context.Context, input *StatusInput) (*StatusOutput, error)

	// Regions returns the unlock view of every region
	Regions(ctx context.Context, input *RegionsInput) (*RegionsOutput, error)

	// Close drops the event subscriptions
	Close() error
}

// EnemyRegistry resolves enemy ids to templates
type EnemyRegistry interface {
	Enemy(id string) (*entities.EnemyTemplate, *entities.Region, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Registry    EnemyRegistry
	Unlocks     unlock.Service
	Battles     battle.Service
	Saves       savegame.Repository
	Bus         rpgevents.EventBus
	IDGenerator idgen.Generator

	// Events receives persistence warnings. Defaults to a sink on Bus.
	Events events.Sink
	// Slot defaults to savegame.DefaultSlot
	Slot string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Unlocks == nil {
		vb.RequiredField("Unlocks")
	}
	if c.Battles == nil {
		vb.RequiredField("Battles")
	}
	if c.Saves == nil {
		vb.RequiredField("Saves")
	}
	if c.Bus == nil {
		vb.RequiredField("Bus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	registry EnemyRegistry
	unlocks  unlock.Service
	battles  battle.Service
	saves    savegame.Repository
	bus      rpgevents.EventBus
	events   events.Sink
	idGen    idgen.Generator
	slot     string

	subscriptions []string

	// mu guards the fields below. It is never held while calling into the
	// battle service, because battle events arrive under the battle lock.
	mu       sync.Mutex
	char     *entities.Character
	snapshot *entities.Character
	inBattle bool
}

// NewOrchestrator creates a new game orchestrator and subscribes it to the
// battle boundary events
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	sink := cfg.Events
	if sink == nil {
		sink = events.NewBusSink(cfg.Bus)
	}
	slot := cfg.Slot
	if slot == "" {
		slot = savegame.DefaultSlot
	}

	o := &orchestrator{
		registry: cfg.Registry,
		unlocks:  cfg.Unlocks,
		battles:  cfg.Battles,
		saves:    cfg.Saves,
		bus:      cfg.Bus,
		events:   sink,
		idGen:    cfg.IDGenerator,
		slot:     slot,
	}

	for _, t := range []events.Type{events.Victory, events.Defeat, events.BattleAbandoned} {
		o.subscriptions = append(o.subscriptions, events.Subscribe(cfg.Bus, t, o.onBattleEnded))
	}
	o.subscriptions = append(o.subscriptions, events.Subscribe(cfg.Bus, events.BattleAborted, o.onBattleAborted))

	return o, nil
}

func (o *orchestrator) Close() error {
	events.Unsubscribe(o.bus, o.subscriptions)
	o.subscriptions = nil
	return nil
}

func (o *orchestrator) NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inBattle {
		return nil, errors.FailedPrecondition("cannot start a new game during a battle")
	}

	char, err := entities.NewCharacter(o.idGen.Generate(), input.Name, input.Class)
	if err != nil {
		return nil, errors.Wrap(err, "invalid character")
	}
	if _, err := o.unlocks.CheckUnlocks(ctx, &unlock.CheckUnlocksInput{Character: char}); err != nil {
		return nil, errors.Wrap(err, "failed to resolve starting regions")
	}

	o.setCharacter(char)
	slog.InfoContext(ctx, "new game",
		"character_id", char.ID,
		"class", char.Class)

	warning := o.saveLocked(ctx)
	return &NewGameOutput{Character: o.snapshot.Clone(), Saved: warning == nil}, nil
}

func (o *orchestrator) Load(ctx context.Context, _ *LoadInput) (*LoadOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inBattle {
		return nil, errors.FailedPrecondition("cannot load during a battle")
	}

	out, err := o.saves.Load(ctx, savegame.LoadInput{Slot: o.slot})
	if err != nil {
		if errors.IsNotFound(err) {
			return &LoadOutput{}, nil
		}
		o.warn(ctx, nil, errors.Wrapf(err, "failed to load slot %s", o.slot))
		return &LoadOutput{Warning: err}, nil
	}

	char, err := out.State.ToCharacter()
	if err != nil {
		o.warn(ctx, nil, err)
		return &LoadOutput{Warning: err}, nil
	}
	// saves from before region tracking may list nothing
	if _, err := o.unlocks.CheckUnlocks(ctx, &unlock.CheckUnlocksInput{Character: char}); err != nil {
		return nil, errors.Wrap(err, "failed to resolve unlocked regions")
	}

	o.setCharacter(char)
	slog.InfoContext(ctx, "game loaded",
		"character_id", char.ID,
		"slot", o.slot,
		"migrated", out.Migrated)

	return &LoadOutput{
		Found:     true,
		Migrated:  out.Migrated,
		Character: o.snapshot.Clone(),
	}, nil
}

func (o *orchestrator) Save(ctx context.Context, _ *SaveInput) (*SaveOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.char == nil {
		return nil, errors.FailedPrecondition("no game in progress")
	}
	if o.inBattle {
		return nil, errors.FailedPrecondition("cannot save during a battle")
	}

	warning := o.saveLocked(ctx)
	return &SaveOutput{Saved: warning == nil, Warning: warning}, nil
}

func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EnemyID == "" {
		return nil, errors.InvalidArgument("enemy ID is required")
	}

	char, tmpl, err := o.reserveBattle(ctx, input)
	if err != nil {
		return nil, err
	}

	out, err := o.battles.StartBattle(ctx, &battle.StartBattleInput{
		Character: char,
		Enemy:     tmpl,
	})
	if err != nil {
		o.mu.Lock()
		o.inBattle = false
		o.mu.Unlock()
		return nil, err
	}

	return &StartBattleOutput{Battle: out.Battle}, nil
}

// reserveBattle validates the request and marks the game as in battle
func (o *orchestrator) reserveBattle(ctx context.Context, input *StartBattleInput) (*entities.Character, *entities.EnemyTemplate, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.char == nil {
		return nil, nil, errors.FailedPrecondition("no game in progress")
	}
	if o.inBattle {
		return nil, nil, errors.FailedPrecondition("a battle is already in progress")
	}

	tmpl, region, err := o.registry.Enemy(input.EnemyID)
	if err != nil {
		return nil, nil, err
	}
	if input.RegionID != "" && input.RegionID != region.ID {
		return nil, nil, errors.InvalidArgumentf("enemy %s is not in region %s", input.EnemyID, input.RegionID)
	}

	avail, err := o.unlocks.IsEnemyAvailable(ctx, &unlock.IsEnemyAvailableInput{
		Character: o.char,
		RegionID:  region.ID,
		EnemyID:   tmpl.ID,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to check enemy availability")
	}
	if !avail.Available {
		return nil, nil, errors.FailedPrecondition(avail.Reason).
			WithMeta("enemy_id", tmpl.ID).
			WithMeta("region_id", region.ID)
	}

	o.inBattle = true
	return o.char, tmpl, nil
}

func (o *orchestrator) Status(ctx context.Context, _ *StatusInput) (*StatusOutput, error) {
	battleOut, err := o.battles.GetBattle(ctx, &battle.GetBattleInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get battle")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.snapshot == nil {
		return nil, errors.FailedPrecondition("no game in progress")
	}
	return &StatusOutput{
		Character: o.snapshot.Clone(),
		InBattle:  o.inBattle,
		Battle:    battleOut.Battle,
	}, nil
}

func (o *orchestrator) Regions(ctx context.Context, _ *RegionsInput) (*RegionsOutput, error) {
	o.mu.Lock()
	snapshot := o.snapshot
	o.mu.Unlock()

	if snapshot == nil {
		return nil, errors.FailedPrecondition("no game in progress")
	}

	out, err := o.unlocks.ListRegions(ctx, &unlock.ListRegionsInput{Character: snapshot})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list regions")
	}
	return &RegionsOutput{Regions: out.Regions}, nil
}

// onBattleEnded runs under the battle lock, after the battle has applied
// every change to the character
func (o *orchestrator) onBattleEnded(ctx context.Context, e *events.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.inBattle = false
	if o.char == nil {
		return
	}
	o.snapshot = o.char.Clone()

	slog.DebugContext(ctx, "saving at battle boundary",
		"battle_id", e.BattleID,
		"event", e.Type)
	o.saveLocked(ctx)
}

func (o *orchestrator) onBattleAborted(_ context.Context, _ *events.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.inBattle = false
	if o.char != nil {
		o.snapshot = o.char.Clone()
	}
}

func (o *orchestrator) setCharacter(char *entities.Character) {
	o.char = char
	o.snapshot = char.Clone()
}

// saveLocked writes the snapshot. Failures are reported and returned but
// never undo the in-memory state.
func (o *orchestrator) saveLocked(ctx context.Context) error {
	_, err := o.saves.Save(ctx, savegame.SaveInput{
		Slot:  o.slot,
		State: savegame.FromCharacter(o.snapshot),
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to save slot %s", o.slot)
		o.warn(ctx, o.snapshot, err)
		return err
	}
	return nil
}

func (o *orchestrator) warn(ctx context.Context, char *entities.Character, err error) {
	slog.WarnContext(ctx, "persistence failed",
		"slot", o.slot,
		"error", err)

	e := &events.Event{
		Type: events.PersistenceWarning,
		Err:  err,
	}
	if char != nil {
		e.Source = char
	}
	o.events.Emit(ctx, e)
}
