// Package config loads process configuration from the environment with
// sane defaults. The policy constants here are consumed, not owned, by the
// search subsystem.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string
	RedisAddr   string
	ListenAddr  string
	JWTSecret   string

	RegularMaxRangeDays int
	PremiumMaxRangeDays int
	DefaultMaxRangeDays int

	AsyncThresholdDays int
	FulltextWindowDays int
	HardResultCap      int
	CacheTTL           time.Duration
	QueueBufferSize    int

	SeedDemoData bool
}

func Load() Config {
	v := viper.New()

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("JWT_SECRET", "super-secret-key")
	v.SetDefault("REGULAR_MAX_RANGE_DAYS", 90)
	v.SetDefault("PREMIUM_MAX_RANGE_DAYS", 365)
	v.SetDefault("DEFAULT_MAX_RANGE_DAYS", 90)
	v.SetDefault("ASYNC_THRESHOLD_DAYS", 180)
	v.SetDefault("FULLTEXT_WINDOW_DAYS", 90)
	v.SetDefault("HARD_RESULT_CAP", 10000)
	v.SetDefault("CACHE_TTL", "1s")
	v.SetDefault("QUEUE_BUFFER_SIZE", 64)
	v.SetDefault("SEED_DEMO_DATA", false)
	v.AutomaticEnv()

	return Config{
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		ListenAddr:          v.GetString("LISTEN_ADDR"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		RegularMaxRangeDays: v.GetInt("REGULAR_MAX_RANGE_DAYS"),
		PremiumMaxRangeDays: v.GetInt("PREMIUM_MAX_RANGE_DAYS"),
		DefaultMaxRangeDays: v.GetInt("DEFAULT_MAX_RANGE_DAYS"),
		AsyncThresholdDays:  v.GetInt("ASYNC_THRESHOLD_DAYS"),
		FulltextWindowDays:  v.GetInt("FULLTEXT_WINDOW_DAYS"),
		HardResultCap:       v.GetInt("HARD_RESULT_CAP"),
		CacheTTL:            v.GetDuration("CACHE_TTL"),
		QueueBufferSize:     v.GetInt("QUEUE_BUFFER_SIZE"),
		SeedDemoData:        v.GetBool("SEED_DEMO_DATA"),
	}
}
