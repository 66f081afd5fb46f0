package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all environment-driven settings for the server.
// Values fall back to sensible defaults so a bare `go run .` works
// against a local Redis.
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// DevOwnerID, when set, is used as the owner identity for requests
	// that carry no X-Owner-ID header. Leave empty in multi-tenant
	// deployments so unauthenticated requests are rejected.
	DevOwnerID string

	// Redis connection
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Cohere summarization
	CohereAPIKey     string
	SummaryModel     string
	SummaryMaxTokens int

	// Optional S3 archive mirror. Disabled when Bucket is empty.
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool
}

// Load reads configuration from the environment.
func Load() Config {
	cfg := Config{
		Addr:             ":8080",
		DevOwnerID:       strings.TrimSpace(os.Getenv("DEV_OWNER_ID")),
		RedisAddr:        getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		CohereAPIKey:     os.Getenv("COHERE_API_KEY"),
		SummaryModel:     getEnvOrDefault("SUMMARY_MODEL", DefaultSummaryModel),
		SummaryMaxTokens: DefaultSummaryMaxTokens,
		S3Bucket:         strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:         strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:        strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle:   strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}
	if v := os.Getenv("SUMMARY_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SummaryMaxTokens = n
		}
	}
	if p := strings.TrimSpace(os.Getenv("S3_PREFIX")); p != "" {
		cfg.S3Prefix = strings.Trim(p, "/") + "/"
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
