package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	DatabaseURL       string
	StoreDriver       string
	SQLitePath        string
	ObjectStoreType   string
	LocalStoreDir     string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	LLMProvider       string
	LLMModel          string
	LLMBaseURL        string
	LLMAPIKey         string
	RetentionMax      int
	RetentionSchedule string
	RateLimitRPS      float64
	RateLimitBurst    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort for local dev; real env always wins.
	if files := existing(".env", "cmd/.env"); len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			log.Printf("config: load env files: %v", err)
		}
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" && getEnv("STORE_DRIVER", "") != "sqlite" {
		log.Printf("DATABASE_URL is required in production")
	}

	apiKey := getEnv("LLM_API_KEY", os.Getenv("MISTRAL_API_KEY"))
	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:       dbURL,
		StoreDriver:       normalizeStoreDriver(getEnv("STORE_DRIVER", ""), dbURL),
		SQLitePath:        getEnv("SQLITE_PATH", "./data/plans.db"),
		ObjectStoreType:   normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:     getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		LLMProvider:       normalizeLLMProvider(getEnv("LLM_PROVIDER", ""), apiKey),
		LLMModel:          getEnv("LLM_MODEL", "mistral-small-latest"),
		LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:         apiKey,
		RetentionMax:      getEnvInt("PLAN_RETENTION_MAX", 1000),
		RetentionSchedule: getEnv("PLAN_RETENTION_CRON", "@every 1h"),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

func existing(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid float: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

// normalizeStoreDriver picks the plan repository. An explicit driver wins,
// otherwise a DATABASE_URL means postgres and nothing means memory.
func normalizeStoreDriver(raw, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "memory":
		return "memory"
	}
	if strings.TrimSpace(dbURL) != "" {
		return "postgres"
	}
	return "memory"
}

// normalizeLLMProvider enables mistral when a key is present and nothing
// else was asked for.
func normalizeLLMProvider(raw, apiKey string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mistral":
		return "mistral"
	case "none", "off":
		return "none"
	}
	if strings.TrimSpace(apiKey) != "" {
		return "mistral"
	}
	return "none"
}
