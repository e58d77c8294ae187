package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "TELEGRAM_BOT_TOKEN", "DATABASE_URL", "ENGINE",
		"GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_MODEL", "DEEPSEEK_MODEL",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gemini", cfg.DefaultEngine)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "deepseek-chat", cfg.DeepseekModel)
	assert.Empty(t, cfg.TelegramBotToken)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENGINE", "GPT")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/mathbot")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gpt", cfg.DefaultEngine, "engine name is lowercased")
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	assert.Equal(t, "postgres://u:p@localhost/mathbot", cfg.DatabaseURL)
}

func TestResolveDSN(t *testing.T) {
	for _, k := range []string{
		"DATABASE_URL", "POSTGRES_DB", "POSTGRES_USER", "POSTGRES_PASSWORD",
		"PGHOST", "PGPORT",
	} {
		t.Setenv(k, "")
	}

	// Nothing set: no database at all.
	cfg := &Config{}
	assert.Empty(t, cfg.ResolveDSN())

	// DATABASE_URL wins as-is.
	cfg = &Config{DatabaseURL: "postgres://u:p@pg:5432/solve"}
	assert.Equal(t, "postgres://u:p@pg:5432/solve", cfg.ResolveDSN())

	// POSTGRES_* vars assemble a URL with compose defaults filled in.
	t.Setenv("POSTGRES_DB", "solve")
	t.Setenv("POSTGRES_PASSWORD", "sekret")
	got := (&Config{}).ResolveDSN()
	assert.Equal(t, "postgres://mathbot:sekret@db:5432/solve?sslmode=disable", got)
}
