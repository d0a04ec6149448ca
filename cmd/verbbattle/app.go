package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/verb-battle/internal/config"
	"github.com/KirkDiggler/verb-battle/internal/content"
	"github.com/KirkDiggler/verb-battle/internal/engine"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/game"
	"github.com/KirkDiggler/verb-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/verb-battle/internal/redis"
	"github.com/KirkDiggler/verb-battle/internal/repositories/savegame"
	"github.com/KirkDiggler/verb-battle/internal/services/progression"
	"github.com/KirkDiggler/verb-battle/internal/services/unlock"
	"github.com/KirkDiggler/verb-battle/internal/verbtable"
	"github.com/KirkDiggler/verb-battle/internal/world"
)

// app is the wired object graph shared by every command
type app struct {
	bus      rpgevents.EventBus
	registry *world.Registry
	battles  battle.Service
	game     game.Service

	closers []func() error
}

func newApp(cfg *config.Config) (*app, error) {
	bundle, err := content.Load(cfg.ContentDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load content")
	}

	table, err := verbtable.New(bundle.Verbs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build verb table")
	}

	registry, err := world.New(&world.Config{
		Definition:       bundle.World,
		Verbs:            table,
		PlayerBaseDamage: cfg.Battle.PlayerBaseDamage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build world")
	}

	bus := rpgevents.NewBus()
	sink := events.NewBusSink(bus)

	unlocks, err := unlock.New(&unlock.Config{
		Regions: registry,
		Events:  sink,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create unlock service")
	}

	progress, err := progression.New(&progression.Config{
		Unlocks:          unlocks,
		Events:           sink,
		MasteryThreshold: cfg.Progression.MasteryThreshold,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create progression service")
	}

	challenges, err := engine.NewChallengeGenerator(&engine.ChallengeGeneratorConfig{
		Lookup: table,
		Roller: dice.DefaultRoller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create challenge generator")
	}

	battles, err := battle.NewOrchestrator(&battle.Config{
		Challenges:       challenges,
		Progression:      progress,
		Events:           sink,
		IDGenerator:      idgen.NewUUID("battle"),
		TimeLimitSeconds: cfg.Battle.TimeLimitSeconds,
		PlayerBaseDamage: cfg.Battle.PlayerBaseDamage,
		FreezeSeconds:    cfg.Battle.FreezeSeconds,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle orchestrator")
	}

	a := &app{
		bus:      bus,
		registry: registry,
		battles:  battles,
	}

	saves, err := a.openStorage(cfg.Storage)
	if err != nil {
		a.close()
		return nil, err
	}

	g, err := game.NewOrchestrator(&game.Config{
		Registry:    registry,
		Unlocks:     unlocks,
		Battles:     battles,
		Saves:       saves,
		Bus:         bus,
		IDGenerator: idgen.NewUUID("char"),
		Events:      sink,
		Slot:        cfg.Storage.Slot,
	})
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to create game orchestrator")
	}
	a.game = g
	a.closers = append([]func() error{g.Close}, a.closers...)

	return a, nil
}

func (a *app) openStorage(cfg config.StorageConfig) (savegame.Repository, error) {
	slog.Debug("opening save storage", "driver", cfg.Driver)

	switch cfg.Driver {
	case config.DriverMemory:
		return savegame.NewInMemory(), nil
	case config.DriverSQLite:
		repo, err := savegame.NewSQLite(&savegame.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, errors.Wrap(err, "failed to open sqlite storage")
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	case config.DriverRedis:
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		a.closers = append(a.closers, client.Close)
		repo, err := savegame.NewRedis(&savegame.RedisConfig{Client: client})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis storage")
		}
		return repo, nil
	default:
		return nil, errors.InvalidArgumentf("unknown storage driver %q", cfg.Driver)
	}
}

// close releases storage in reverse order of opening
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
	a.closers = nil
}

// loadGame loads the save slot and fails when there is nothing to continue
func (a *app) loadGame(ctx context.Context) (*game.LoadOutput, error) {
	out, err := a.game.Load(ctx, &game.LoadInput{})
	if err != nil {
		return nil, err
	}
	if !out.Found {
		if out.Warning != nil {
			return nil, errors.Wrap(out.Warning, "save could not be read")
		}
		return nil, errors.NotFound("no saved game, run new-game first")
	}
	return out, nil
}
