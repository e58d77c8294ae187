package config

import (
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Telegram (bot entrypoint only; empty for the pure HTTP API)
	TelegramBotToken string
	WebhookURL       string

	// Postgres. Empty disables persistence: the bot and API still solve,
	// they just skip history and the photo cache.
	DatabaseURL string

	// Engines
	DefaultEngine  string
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	DeepseekAPIKey string
	DeepseekModel  string
	YCOAuthToken   string
	YCFolderID     string
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Load reads the environment, letting a local .env fill in anything the
// process env leaves unset. Nothing is hard-required here: each main
// checks for the settings it cannot run without.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		DefaultEngine:  strings.ToLower(getEnv("ENGINE", "gemini")),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		DeepseekAPIKey: getEnv("DEEPSEEK_API_KEY", ""),
		DeepseekModel:  getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
		YCOAuthToken:   getEnv("YC_OAUTH_TOKEN", ""),
		YCFolderID:     getEnv("YC_FOLDER_ID", ""),
	}
}

// ResolveDSN decides the Postgres connection string. DATABASE_URL wins;
// otherwise a URL is assembled from POSTGRES_* / PG* vars when any of
// them is set (the single-container compose default). Empty means run
// without a database.
func (c *Config) ResolveDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if os.Getenv("POSTGRES_DB") == "" && os.Getenv("POSTGRES_USER") == "" && os.Getenv("PGHOST") == "" {
		return ""
	}

	user := getEnv("POSTGRES_USER", "mathbot")
	pass := os.Getenv("POSTGRES_PASSWORD")
	host := getEnv("PGHOST", "db")
	port := getEnv("PGPORT", "5432")
	name := getEnv("POSTGRES_DB", "mathbot")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
