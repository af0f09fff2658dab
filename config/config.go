package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Neo4j     Neo4jConfig
	App       AppConfig
	Genealogy GenealogyConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	RateLimit      float64 // requests per second per client, 0 disables
	RateBurst      int
}

type DatabaseConfig struct {
	Driver   string // pgx or postgres
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

type GenealogyConfig struct {
	Source      string // mock, file or postgres
	DataDir     string
	Policy      string
	CacheTTL    time.Duration
	CronSpec    string
	WarmWorkers int
	DotBin      string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimit:      getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateBurst:      getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "pgx"),
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "genealogy"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Neo4j: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", ""),
			User:     getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
			Database: getEnv("NEO4J_DATABASE", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Genealogy: GenealogyConfig{
			Source:      strings.ToLower(getEnv("GENEALOGY_SOURCE", "mock")),
			DataDir:     getEnv("GENEALOGY_DATA_DIR", "data"),
			Policy:      getEnv("GENEALOGY_DANGLING_POLICY", "skip"),
			CacheTTL:    getEnvAsDuration("GENEALOGY_CACHE_TTL", 24*time.Hour),
			CronSpec:    getEnv("GENEALOGY_AUDIT_CRON", "0 0 0 * * *"),
			WarmWorkers: getEnvAsInt("GENEALOGY_WARM_WORKERS", 4),
			DotBin:      getEnv("DOT_BIN", "dot"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Genealogy.Source {
	case "mock":
	case "file":
		if c.Genealogy.DataDir == "" {
			return fmt.Errorf("GENEALOGY_DATA_DIR is required for the file source")
		}
	case "postgres":
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_DSN or DB_HOST is required for the postgres source")
		}
	default:
		return fmt.Errorf("GENEALOGY_SOURCE must be mock, file or postgres, got %q", c.Genealogy.Source)
	}

	switch strings.ToLower(c.Genealogy.Policy) {
	case "", "skip", "strict":
	default:
		return fmt.Errorf("GENEALOGY_DANGLING_POLICY must be skip or strict, got %q", c.Genealogy.Policy)
	}

	switch c.Database.Driver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be pgx or postgres, got %q", c.Database.Driver)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
