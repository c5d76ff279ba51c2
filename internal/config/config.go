package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds everything the process needs, resolved once at startup.
// No other package reads environment variables directly.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Publish  PublishConfig
	OpenAI   OpenAIConfig
}

type ServerConfig struct {
	Port     string
	BasePath string
}

type DatabaseConfig struct {
	Driver   string // "sqlite" or "postgres"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// SQLitePath is used when Driver is "sqlite".
	SQLitePath string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type StorageConfig struct {
	// DataDir is the root for briefs/, content/, recipients/ and published/.
	DataDir string
}

type PublishConfig struct {
	// Mode is "local" or "sendgrid". Anything else, or missing SendGrid
	// credentials, silently selects the local publisher.
	Mode            string
	SendGridAPIKey  string
	SendGridFrom    string
	SendGridTo      []string
	SendGridBaseURL string
	SendGridTimeout time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Load resolves the full configuration from the environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			BasePath: getEnv("BASE_PATH", ""),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Host:       getEnv("DB_HOST", ""),
			Port:       getEnv("DB_PORT", ""),
			User:       getEnv("DB_USER", ""),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", ""),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "data/campaign.db"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
			TokenTTL:  time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Publish: PublishConfig{
			Mode:            strings.ToLower(getEnv("PUBLISH_MODE", "local")),
			SendGridAPIKey:  strings.TrimSpace(getEnv("SENDGRID_API_KEY", "")),
			SendGridFrom:    strings.TrimSpace(getEnv("SENDGRID_FROM", "")),
			SendGridTo:      splitList(getEnv("SENDGRID_TO", "")),
			SendGridBaseURL: getEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com"),
			SendGridTimeout: time.Duration(getEnvAsInt("SENDGRID_TIMEOUT_SECONDS", 20)) * time.Second,
		},
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(getEnv("OPENAI_API_KEY", "")),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout: time.Duration(getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 30)) * time.Second,
		},
	}
}

// SendGridReady reports whether the remote publisher has everything it needs.
func (p PublishConfig) SendGridReady() bool {
	return p.Mode == "sendgrid" && p.SendGridAPIKey != "" && p.SendGridFrom != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	}) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, fmt.Sprintf("%d", defaultValue))
	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return defaultValue
	}
	return value
}
