package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings: listen address, page size, index cache TTL and size,
// media root and upload limit, and session signing.
type Config struct {
	Addr           string
	PostsPerPage   int
	IndexCacheTTL  time.Duration
	PageCacheSize  int
	MediaRoot      string
	MaxUploadBytes int64
	JWTSecret      string
	SessionTTL     time.Duration
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("environment variable %s is not set", key)
	}
	return value
}

func GetEnvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("invalid value %q for %s, using %d", raw, key, fallback)
		return fallback
	}
	return value
}

// Load reads the configuration from the environment. JWT_SECRET is the only required variable.
func Load() Config {
	return Config{
		Addr:           GetEnvDefault("ADDR", ":8000"),
		PostsPerPage:   getEnvInt("POSTS_PER_PAGE", 10),
		IndexCacheTTL:  time.Duration(getEnvInt("INDEX_CACHE_SECONDS", 20)) * time.Second,
		PageCacheSize:  getEnvInt("PAGE_CACHE_SIZE", 128),
		MediaRoot:      GetEnvDefault("MEDIA_ROOT", "media"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),
		JWTSecret:      GetEnv("JWT_SECRET"),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 72)) * time.Hour,
	}
}
