// Package config loads settings from a TOML file and VERBBATTLE_*
// environment variables, in that order, on top of built-in defaults.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// EnvPrefix prefixes every environment variable
const EnvPrefix = "VERBBATTLE_"

// MaxTimeLimitSeconds bounds the challenge and freeze durations
const MaxTimeLimitSeconds = 120

// Storage drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the full application configuration
type Config struct {
	// ContentDir replaces the embedded verbs.yaml/world.yaml when set
	ContentDir  string            `toml:"content_dir" env:"CONTENT_DIR"`
	Battle      BattleConfig      `toml:"battle" envPrefix:"BATTLE_"`
	Progression ProgressionConfig `toml:"progression" envPrefix:"PROGRESSION_"`
	Storage     StorageConfig     `toml:"storage" envPrefix:"STORAGE_"`
	Log         LogConfig         `toml:"log" envPrefix:"LOG_"`
}

// BattleConfig tunes the battle engine
type BattleConfig struct {
	TimeLimitSeconds int `toml:"time_limit_seconds" env:"TIME_LIMIT_SECONDS"`
	PlayerBaseDamage int `toml:"player_base_damage" env:"PLAYER_BASE_DAMAGE"`
	FreezeSeconds    int `toml:"freeze_seconds" env:"FREEZE_SECONDS"`
}

// ProgressionConfig tunes leveling and mastery
type ProgressionConfig struct {
	MasteryThreshold int `toml:"mastery_threshold" env:"MASTERY_THRESHOLD"`
}

// StorageConfig selects where saves go
type StorageConfig struct {
	Driver     string `toml:"driver" env:"DRIVER"`
	SQLitePath string `toml:"sqlite_path" env:"SQLITE_PATH"`
	RedisAddr  string `toml:"redis_addr" env:"REDIS_ADDR"`
	Slot       string `toml:"slot" env:"SLOT"`
}

// LogConfig controls slog output
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
	// File receives logs while the play screen owns the terminal
	File string `toml:"file" env:"FILE"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Battle: BattleConfig{
			TimeLimitSeconds: 10,
			PlayerBaseDamage: 20,
			FreezeSeconds:    5,
		},
		Progression: ProgressionConfig{
			MasteryThreshold: 20,
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: DefaultSQLitePath(),
			Slot:       "default",
		},
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogPath(),
		},
	}
}

// LoadOptions controls where Load reads from
type LoadOptions struct {
	// Path is the TOML file. A missing file is not an error.
	Path string
	// Environment replaces the process environment, mostly for tests
	Environment map[string]string
}

// Load builds the configuration: defaults, then the file, then the environment
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.Path != "" {
		if err := decodeFile(opts.Path, cfg); err != nil {
			return nil, err
		}
	}

	envOpts := env.Options{
		Prefix:      EnvPrefix,
		Environment: opts.Environment,
	}
	if err := env.ParseWithOptions(cfg, envOpts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to stat config %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.InvalidArgumentf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every setting
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("battle.time_limit_seconds", c.Battle.TimeLimitSeconds, 1, MaxTimeLimitSeconds, vb)
	errors.ValidatePositive("battle.player_base_damage", c.Battle.PlayerBaseDamage, vb)
	errors.ValidateRange("battle.freeze_seconds", c.Battle.FreezeSeconds, 1, MaxTimeLimitSeconds, vb)
	errors.ValidatePositive("progression.mastery_threshold", c.Progression.MasteryThreshold, vb)

	errors.ValidateEnum("storage.driver", c.Storage.Driver, []string{DriverMemory, DriverSQLite, DriverRedis}, vb)
	errors.ValidateRequired("storage.slot", c.Storage.Slot, vb)
	switch c.Storage.Driver {
	case DriverSQLite:
		errors.ValidateRequired("storage.sqlite_path", c.Storage.SQLitePath, vb)
	case DriverRedis:
		errors.ValidateRequired("storage.redis_addr", c.Storage.RedisAddr, vb)
	}

	errors.ValidateEnum("log.level", c.Log.Level, []string{"debug", "info", "warn", "error"}, vb)

	return vb.Build()
}

// SlogLevel maps the configured level name to a slog level
func (c *LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
