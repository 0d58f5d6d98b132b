package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("nonexistent_config_file")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "localhost:9092", cfg.Kafka.Brokers)
	assert.Equal(t, "transaction_generation_requests", cfg.Kafka.GenerationTopic)
	assert.Equal(t, "transaction_generation_requests_dlq", cfg.Kafka.DLQTopic)
	assert.Equal(t, "reward_ledger", cfg.MongoDB.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.BalanceTTL)
	assert.Equal(t, 10, cfg.WorkerPool.Size)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_RewardDefaults(t *testing.T) {
	cfg, err := LoadConfig("nonexistent_config_file")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Rewards.RegularPercentage)
	assert.Equal(t, 10, cfg.Rewards.PremiumPercentage)
	assert.Equal(t, 50, cfg.Generation.Count)
	assert.Equal(t, 5, cfg.Generation.MinAmount)
	assert.Equal(t, 2000, cfg.Generation.MaxAmount)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("REWARDS_PREMIUM_PERCENTAGE", "15")

	cfg, err := LoadConfig("nonexistent_config_file")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Rewards.PremiumPercentage)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid defaults pass", func(t *testing.T) {
		cfg, err := LoadConfig("nonexistent_config_file")
		require.NoError(t, err)
		assert.NoError(t, cfg.validate())
	})

	t.Run("missing postgres url fails", func(t *testing.T) {
		cfg, err := LoadConfig("nonexistent_config_file")
		require.NoError(t, err)
		cfg.Postgres.URL = ""
		err = cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "POSTGRES_URL is required")
	})

	t.Run("zero server port fails", func(t *testing.T) {
		cfg, err := LoadConfig("nonexistent_config_file")
		require.NoError(t, err)
		cfg.Server.Port = 0
		err = cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SERVER_PORT must be greater than 0")
	})

	t.Run("accrual percentage out of range fails", func(t *testing.T) {
		cfg, err := LoadConfig("nonexistent_config_file")
		require.NoError(t, err)
		cfg.Rewards.RegularPercentage = 150
		err = cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REWARDS_REGULAR_PERCENTAGE must be between 1 and 100")
	})

	t.Run("generation bounds inverted fails", func(t *testing.T) {
		cfg, err := LoadConfig("nonexistent_config_file")
		require.NoError(t, err)
		cfg.Generation.MinAmount = 1000
		cfg.Generation.MaxAmount = 100
		err = cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GENERATION_MAX_AMOUNT must not be less than GENERATION_MIN_AMOUNT")
	})
}
