// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	Server     ServerConfig
	Logging    LoggingConfig
	CORS       CORSConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	Enrichment EnrichmentConfig
	TTS        TTSConfig
	Media      MediaConfig
	Reminder   ReminderConfig
	Study      StudyConfig
	APIKey     string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address of the Redis server
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds study session token settings
type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
}

// SMTPConfig holds SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EnrichmentConfig holds settings of the AI enrichment client
type EnrichmentConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	Language string
	CacheTTL time.Duration
}

// TTSConfig holds settings of the speech synthesis client
type TTSConfig struct {
	APIKey   string
	BaseURL  string
	Language string
}

// MediaConfig holds audio file storage settings
type MediaConfig struct {
	BasePath string
	BaseURL  string
}

// ReminderConfig holds settings of the due-word digest
type ReminderConfig struct {
	Cron  string
	Email string
}

// StudyConfig holds study session settings
type StudyConfig struct {
	SessionSize int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	cfg.Logging.Level = stringEnv("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	sessionTTL, err := durationEnv("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWT.SessionTTL = sessionTTL

	// API Key configuration (admin endpoints are disabled without it)
	cfg.APIKey = os.Getenv("API_KEY")

	// Redis configuration
	cfg.Redis.Host = stringEnv("REDIS_HOST", "localhost")
	redisPort, err := intEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, err
	}
	cfg.Redis.Port = redisPort
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional
	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.Redis.DB = redisDB

	// SMTP configuration
	cfg.SMTP.Host = stringEnv("SMTP_HOST", "localhost")
	smtpPort, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTP.Port = smtpPort
	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME") // optional
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD") // optional
	cfg.SMTP.From = stringEnv("SMTP_FROM", "noreply@vocabstudent.local")

	// Enrichment configuration
	cfg.Enrichment.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.Enrichment.Model = os.Getenv("ANTHROPIC_MODEL")        // client default when empty
	cfg.Enrichment.BaseURL = os.Getenv("ANTHROPIC_BASE_URL")   // client default when empty
	cfg.Enrichment.Language = os.Getenv("ENRICHMENT_LANGUAGE") // client default when empty
	cacheTTL, err := durationEnv("ENRICHMENT_CACHE_TTL", 720*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.Enrichment.CacheTTL = cacheTTL

	// TTS configuration (speech is unsupported without a key)
	cfg.TTS.APIKey = os.Getenv("TTS_API_KEY")
	cfg.TTS.BaseURL = os.Getenv("TTS_BASE_URL")
	cfg.TTS.Language = os.Getenv("TTS_LANGUAGE")

	// Media configuration
	cfg.Media.BasePath = stringEnv("MEDIA_BASE_PATH", "./media")
	cfg.Media.BaseURL = stringEnv("MEDIA_BASE_URL", fmt.Sprintf("http://localhost:%d/api/v1/audio", cfg.Server.Port))

	// Reminder configuration
	reminderCron := stringEnv("REMINDER_CRON", "0 8 * * *")
	if _, err := cron.ParseStandard(reminderCron); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_CRON: %w", err)
	}
	cfg.Reminder.Cron = reminderCron
	cfg.Reminder.Email = os.Getenv("REMINDER_EMAIL") // digest is skipped when empty

	// Study configuration
	sessionSize, err := intEnv("STUDY_SESSION_SIZE", 10)
	if err != nil {
		return nil, err
	}
	if sessionSize <= 0 {
		return nil, fmt.Errorf("invalid STUDY_SESSION_SIZE: must be positive")
	}
	cfg.Study.SessionSize = sessionSize

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

func stringEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// parseOrigins splits a comma-separated origin list, allowing all origins when none is given
func parseOrigins(value string) []string {
	origins := []string{}
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
