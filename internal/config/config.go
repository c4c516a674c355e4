package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	JWTSecret     string
	CORSOrigins   string
	PublicBaseURL string // prefix of the public lookup URL encoded in QR codes
	RedisAddr     string // empty disables the QR cache
	RedisPassword string
	QRCacheTTL    time.Duration
	AgencyName    string
	AgencyOffice  string
	CookieSecure  bool
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=parms port=5432 sslmode=disable"

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] could not read .env: %v", err)
	}

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8080"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		QRCacheTTL:    getDuration("QR_CACHE_TTL", 7*24*time.Hour),
		AgencyName:    getEnv("AGENCY_NAME", "Republic of the Philippines"),
		AgencyOffice:  getEnv("AGENCY_OFFICE", "Property and Supply Management Office"),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the development default")
	}
	if strings.HasPrefix(cfg.PublicBaseURL, "http://localhost") {
		log.Println("[WARN] PUBLIC_BASE_URL points at localhost, printed QR codes will not resolve for other devices")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] invalid %s value %q, using %s", key, v, def)
		return def
	}
	return d
}
