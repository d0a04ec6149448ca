package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/verb-battle/internal/config"
	"github.com/KirkDiggler/verb-battle/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) writeFile(body string) string {
	path := filepath.Join(s.dir, "config.toml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaultsWhenFileMissing() {
	cfg, err := config.Load(config.LoadOptions{
		Path:        filepath.Join(s.dir, "missing.toml"),
		Environment: map[string]string{},
	})
	s.Require().NoError(err)

	s.Equal(10, cfg.Battle.TimeLimitSeconds)
	s.Equal(20, cfg.Battle.PlayerBaseDamage)
	s.Equal(5, cfg.Battle.FreezeSeconds)
	s.Equal(20, cfg.Progression.MasteryThreshold)
	s.Equal(config.DriverSQLite, cfg.Storage.Driver)
	s.Equal("default", cfg.Storage.Slot)
	s.NotEmpty(cfg.Storage.SQLitePath)
	s.Equal(slog.LevelInfo, cfg.Log.SlogLevel())
}

func (s *ConfigTestSuite) TestFileThenEnvironment() {
	path := s.writeFile(`
content_dir = "/opt/verbs"

[battle]
time_limit_seconds = 15
freeze_seconds = 3

[storage]
driver = "redis"
redis_addr = "localhost:6379"

[log]
level = "debug"
`)

	cfg, err := config.Load(config.LoadOptions{
		Path: path,
		Environment: map[string]string{
			"VERBBATTLE_BATTLE_TIME_LIMIT_SECONDS": "8",
			"VERBBATTLE_STORAGE_SLOT":              "second",
		},
	})
	s.Require().NoError(err)

	s.Equal("/opt/verbs", cfg.ContentDir)
	s.Equal(8, cfg.Battle.TimeLimitSeconds, "environment wins over the file")
	s.Equal(3, cfg.Battle.FreezeSeconds)
	s.Equal(20, cfg.Battle.PlayerBaseDamage, "unset keys keep their defaults")
	s.Equal(config.DriverRedis, cfg.Storage.Driver)
	s.Equal("localhost:6379", cfg.Storage.RedisAddr)
	s.Equal("second", cfg.Storage.Slot)
	s.Equal(slog.LevelDebug, cfg.Log.SlogLevel())
}

func (s *ConfigTestSuite) TestRejectsUnknownKeys() {
	path := s.writeFile(`
[battle]
time_limt_seconds = 15
`)
	_, err := config.Load(config.LoadOptions{Path: path, Environment: map[string]string{}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "battle.time_limt_seconds")
}

func (s *ConfigTestSuite) TestRejectsMalformedFile() {
	path := s.writeFile(`[battle`)
	_, err := config.Load(config.LoadOptions{Path: path, Environment: map[string]string{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestRejectsBadEnvironment() {
	_, err := config.Load(config.LoadOptions{
		Environment: map[string]string{"VERBBATTLE_BATTLE_FREEZE_SECONDS": "soon"},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{
			name:  "zero time limit",
			env:   map[string]string{"VERBBATTLE_BATTLE_TIME_LIMIT_SECONDS": "0"},
			field: "battle.time_limit_seconds",
		},
		{
			name:  "time limit too long",
			env:   map[string]string{"VERBBATTLE_BATTLE_TIME_LIMIT_SECONDS": "600"},
			field: "battle.time_limit_seconds",
		},
		{
			name:  "zero freeze",
			env:   map[string]string{"VERBBATTLE_BATTLE_FREEZE_SECONDS": "0"},
			field: "battle.freeze_seconds",
		},
		{
			name:  "negative damage",
			env:   map[string]string{"VERBBATTLE_BATTLE_PLAYER_BASE_DAMAGE": "-5"},
			field: "battle.player_base_damage",
		},
		{
			name:  "unknown driver",
			env:   map[string]string{"VERBBATTLE_STORAGE_DRIVER": "postgres"},
			field: "storage.driver",
		},
		{
			name:  "redis without address",
			env:   map[string]string{"VERBBATTLE_STORAGE_DRIVER": "redis"},
			field: "storage.redis_addr",
		},
		{
			name:  "unknown log level",
			env:   map[string]string{"VERBBATTLE_LOG_LEVEL": "verbose"},
			field: "log.level",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := config.Load(config.LoadOptions{Environment: tc.env})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))

			fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
			s.Require().True(ok)
			s.Contains(fields, tc.field)
		})
	}
}

func (s *ConfigTestSuite) TestDriverIsCaseInsensitive() {
	cfg, err := config.Load(config.LoadOptions{
		Environment: map[string]string{"VERBBATTLE_STORAGE_DRIVER": " Memory "},
	})
	s.Require().NoError(err)
	s.Equal(config.DriverMemory, cfg.Storage.Driver)
}
