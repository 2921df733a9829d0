package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerAddr string
	GRPCAddr   string
	LogLevel   string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	QdrantHost       string
	QdrantPort       int
	QdrantAPIKey     string
	QdrantCollection string

	VoiceAPIURL      string
	VoiceWSURL       string
	VoiceAPIKey      string
	VoiceAssistantID string

	CallDetailsURL    string
	PollInterval      time.Duration
	FetchResultOnStop bool

	LiveKitAPIKey    string
	LiveKitAPISecret string
	LiveKitURL       string

	GeminiAPIKey        string
	EmbeddingModel      string
	EmbeddingDimensions int
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		GRPCAddr:   getEnv("GRPC_ADDR", ":50051"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DatabaseDSN: getEnv("DATABASE_DSN", "file:voice-console.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		QdrantHost:       getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:       getEnvInt("QDRANT_PORT", 6334),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "conversations"),

		VoiceAPIURL:      getEnv("VOICE_API_URL", ""),
		VoiceWSURL:       getEnv("VOICE_WS_URL", ""),
		VoiceAPIKey:      getEnv("VOICE_API_KEY", ""),
		VoiceAssistantID: getEnv("VOICE_ASSISTANT_ID", ""),

		CallDetailsURL:    getEnv("CALL_DETAILS_URL", "http://localhost:8080/call-details"),
		PollInterval:      getEnvDuration("POLL_INTERVAL", 3*time.Second),
		FetchResultOnStop: getEnvBool("FETCH_RESULT_ON_STOP", false),

		LiveKitAPIKey:    getEnv("LIVEKIT_API_KEY", ""),
		LiveKitAPISecret: getEnv("LIVEKIT_API_SECRET", ""),
		LiveKitURL:       getEnv("LIVEKIT_URL", ""),

		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 384),
	}
}

// UsesSQLite reports whether the DSN points at a local sqlite file rather
// than postgres.
func (c *Config) UsesSQLite() bool {
	return strings.HasPrefix(c.DatabaseDSN, "file:") || strings.HasSuffix(c.DatabaseDSN, ".db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("3s") and bare seconds ("3").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
