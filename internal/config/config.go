package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the services need, built once in main and
// passed down explicitly. No package reads the environment after Load.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Weather  ProviderConfig
	Places   ProviderConfig
	Routing  RoutingConfig
	AI       AIConfig
	SMTP     SMTPConfig
	JWT      JWTConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Port           string
	UseMemoryStore bool
}

type DatabaseConfig struct {
	User                   string
	Password               string
	Name                   string
	InstanceConnectionName string // Cloud SQL socket path, empty for local TCP
}

// ProviderConfig covers the simple GET providers (weather, places).
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type RoutingConfig struct {
	BaseURL string
	Timeout time.Duration
	// Fixed departure point for driving-distance estimates (Bengaluru).
	OriginLat float64
	OriginLon float64
}

type AIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type JWTConfig struct {
	Secret   string
	Duration time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads .env (if present) and builds the config from environment
// variables with development defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("environments/.env.development"); err != nil {
			fmt.Println("⚠️  No .env file found - using environment variables")
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			UseMemoryStore: getEnvBool("USE_MEMORY_STORE", false),
		},
		Database: DatabaseConfig{
			User:                   getEnv("DB_USER", "postgres"),
			Password:               getEnv("DB_PASS", ""),
			Name:                   getEnv("DB_NAME", "travelplanner"),
			InstanceConnectionName: getEnv("INSTANCE_CONNECTION_NAME", ""),
		},
		Weather: ProviderConfig{
			BaseURL: getEnv("OPENWEATHER_URL", "https://api.openweathermap.org"),
			APIKey:  getEnv("OPENWEATHER_API", ""),
			Timeout: getEnvDuration("OPENWEATHER_TIMEOUT", 10*time.Second),
		},
		Places: ProviderConfig{
			BaseURL: getEnv("GEOAPIFY_URL", "https://api.geoapify.com"),
			APIKey:  getEnv("GEOAPIFY_API", ""),
			Timeout: getEnvDuration("GEOAPIFY_TIMEOUT", 10*time.Second),
		},
		Routing: RoutingConfig{
			BaseURL:   getEnv("OSRM_URL", "https://router.project-osrm.org"),
			Timeout:   getEnvDuration("OSRM_TIMEOUT", 10*time.Second),
			OriginLat: 12.9716,
			OriginLon: 77.5946,
		},
		AI: AIConfig{
			BaseURL:     getEnv("OPENROUTER_URL", "https://openrouter.ai"),
			APIKey:      getEnv("OPENROUTER_API_KEY", ""),
			Model:       getEnv("OPENROUTER_MODEL", "openai/gpt-3.5-turbo"),
			Temperature: 0.7,
			Timeout:     getEnvDuration("OPENROUTER_TIMEOUT", 30*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", "tickets@travelplanner.local"),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			Duration: getEnvDuration("JWT_DURATION", 24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
