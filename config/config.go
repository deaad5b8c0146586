package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the pipeline needs from the environment. It is
// built once in main and passed to constructors; nothing reads the
// environment after startup.
type Config struct {
	// Corpus resolution
	UseExistingData  bool
	ExistingDataFile string

	// HTTP server
	ServerAddr string

	// Rendered chart cache (valkey)
	CacheEnabled   bool
	CacheTTL       time.Duration
	ValkeyAddr     string
	ValkeyPassword string

	// Aggregate events (kafka); disabled when broker is empty
	KafkaBroker          string
	KafkaAggregatesTopic string

	// Optional TTF override for chart text. The embedded Go fonts cover
	// Latin and Cyrillic, so this is only needed for custom styling.
	ChartFont string

	// RatingMissingAsZero controls how rows without a rating enter the
	// avg_rating denominator: false (default) skips them, matching the
	// source data pipeline; true counts them as zeros.
	RatingMissingAsZero bool
}

func FromEnv() Config {
	return Config{
		UseExistingData:      envBool("USE_EXISTING_DATA", true),
		ExistingDataFile:     os.Getenv("EXISTING_DATA_FILE"),
		ServerAddr:           envString("SERVER_ADDR", ":8080"),
		CacheEnabled:         envBool("ENABLE_CACHE", true),
		CacheTTL:             time.Duration(envInt("CACHE_TTL", 3600)) * time.Second,
		ValkeyAddr:           os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:       os.Getenv("VALKEY_PASSWORD"),
		KafkaBroker:          os.Getenv("KAFKA_BROKER"),
		KafkaAggregatesTopic: envString("KAFKA_AGGREGATES_TOPIC", "kinopulse.aggregates"),
		ChartFont:            os.Getenv("CHART_FONT"),
		RatingMissingAsZero:  envBool("RATING_MISSING_AS_ZERO", false),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
