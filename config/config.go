package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every recognized environment option. A credential only
// counts as configured when it is non-empty and does not look like a
// copied-from-README placeholder.
type Config struct {
	Port           string
	FrontendOrigin string
	SessionSecret  string
	WebhookSecret  string
	AdminToken     string

	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	ZeppPhone    string
	ZeppPassword string

	KVRestURL   string
	KVRestToken string
	KVKey       string
	DBFile      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "4000"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		SessionSecret:  getEnv("SESSION_SECRET", "dev_secret_change_me"),
		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),

		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubCallbackURL:  getEnv("GITHUB_CALLBACK_URL", "http://localhost:4000/auth/github/callback"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:4000/auth/google/callback"),

		ZeppPhone:    os.Getenv("ZEPP_PHONE"),
		ZeppPassword: os.Getenv("ZEPP_PASSWORD"),

		KVRestURL:   os.Getenv("KV_REST_API_URL"),
		KVRestToken: os.Getenv("KV_REST_API_TOKEN"),
		KVKey:       getEnv("KV_STORE_KEY", "fitness-tracker-db"),
		DBFile:      getEnv("DB_FILE", "data/db.json"),
	}

	if !cfg.GitHubConfigured() && !cfg.GoogleConfigured() {
		log.Println("warning: no OAuth provider configured, login routes will return 503")
	}
	return cfg
}

func (c *Config) GitHubConfigured() bool {
	return IsConfigured(c.GitHubClientID) && IsConfigured(c.GitHubClientSecret)
}

func (c *Config) GoogleConfigured() bool {
	return IsConfigured(c.GoogleClientID) && IsConfigured(c.GoogleClientSecret)
}

func (c *Config) ZeppConfigured() bool {
	return IsConfigured(c.ZeppPhone) && IsConfigured(c.ZeppPassword)
}

func (c *Config) RemoteStoreConfigured() bool {
	return IsConfigured(c.KVRestURL) && IsConfigured(c.KVRestToken) && c.KVKey != ""
}

// IsConfigured rejects empty values and placeholder-looking strings
// such as "your_client_id_here".
func IsConfigured(v string) bool {
	if strings.TrimSpace(v) == "" {
		return false
	}
	lower := strings.ToLower(v)
	return !strings.Contains(lower, "your_") && !strings.Contains(lower, "placeholder")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
