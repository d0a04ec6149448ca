package savegame

import (
	"context"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/verb-battle/internal/redis"
)

const (
	saveKeyPrefix = "savegame:slot:"
	slotIndexKey  = "savegame:slots"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis save repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed save repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	now := r.clock.Now()
	data, err := encodeForSave(input, now)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, saveKeyPrefix+input.Slot, data, 0)
	pipe.SAdd(ctx, slotIndexKey, input.Slot)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", input.Slot)
	}

	slog.DebugContext(ctx, "game saved", "slot", input.Slot, "storage", "redis")
	return &SaveOutput{SavedAt: now.UTC()}, nil
}

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	result, err := r.client.Get(ctx, saveKeyPrefix+input.Slot).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no save in slot %s", input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to load slot %s", input.Slot)
	}

	state, migrated, err := Decode(result)
	if err != nil {
		return nil, err
	}

	return &LoadOutput{State: state, Migrated: migrated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, saveKeyPrefix+input.Slot)
	pipe.SRem(ctx, slotIndexKey, input.Slot)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete slot %s", input.Slot)
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("no save in slot %s", input.Slot)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	slots, err := r.client.SMembers(ctx, slotIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list slots")
	}
	sort.Strings(slots)
	return &ListOutput{Slots: slots}, nil
}
