package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		path := writeConfig(t, `
database:
  host: localhost
  user: bomne
  database: bomne
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "gemini", cfg.Assistant.Provider)
		assert.Equal(t, "BOMNE", cfg.Assistant.ShopName)
		assert.Equal(t, "VN", cfg.Assistant.PhoneRegion)
		assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Assistant.Location().String())
		assert.Equal(t, "0 */15 * * * *", cfg.Scheduler.ReconcileRemaining)
		assert.Equal(t, "0 0 9 * * *", cfg.Scheduler.OverdueRentals)
		assert.Equal(t, "postgres://bomne:@localhost:5432/bomne?sslmode=disable", cfg.GetDatabaseConnectionString())
	})

	t.Run("Provider endpoint", func(t *testing.T) {
		a := AssistantConfig{Provider: "gemini", GeminiBaseURL: "http://gemini.local", OpenAIBaseURL: "https://openrouter.ai/api/v1"}
		assert.Equal(t, "http://gemini.local", a.BaseURL())
		a.Provider = "openai"
		assert.Equal(t, "https://openrouter.ai/api/v1", a.BaseURL())
	})

	t.Run("Credentials are escaped", func(t *testing.T) {
		cfg := &Config{Database: DatabaseConfig{
			Host: "db.internal", Port: 5432, User: "shop@bomne", Password: "p@ss/w:rd?",
			Database: "bomne", SSLMode: "require",
		}}

		u, err := url.Parse(cfg.GetDatabaseConnectionString())
		require.NoError(t, err)
		assert.Equal(t, "shop@bomne", u.User.Username())
		pw, _ := u.User.Password()
		assert.Equal(t, "p@ss/w:rd?", pw)
		assert.Equal(t, "db.internal:5432", u.Host)
		assert.Equal(t, "/bomne", u.Path)
		assert.Equal(t, "require", u.Query().Get("sslmode"))
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		path := writeConfig(t, `
database:
  host: localhost
  user: bomne
  database: bomne
assistant:
  provider: gemini
  gemini_api_key: from-file
`)
		t.Setenv("ASSISTANT_PROVIDER", "OpenAI")
		t.Setenv("OPENAI_API_KEY", "from-env")
		t.Setenv("DB_PORT", "6543")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "openai", cfg.Assistant.Provider)
		assert.Equal(t, "from-env", cfg.Assistant.APIKey())
		assert.Equal(t, 6543, cfg.Database.Port)
	})

	t.Run("Database URL", func(t *testing.T) {
		path := writeConfig(t, `
database:
  url: postgres://u:p@db.example.com:5432/postgres?sslmode=require
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@db.example.com:5432/postgres?sslmode=require", cfg.GetDatabaseConnectionString())
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Database: DatabaseConfig{Host: "localhost", User: "bomne", Database: "bomne"}}
	}

	t.Run("Missing host", func(t *testing.T) {
		cfg := base()
		cfg.Database.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Unknown provider", func(t *testing.T) {
		cfg := base()
		cfg.Assistant.Provider = "yandex"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Bad timezone", func(t *testing.T) {
		cfg := base()
		cfg.Assistant.Timezone = "Mars/Olympus"
		assert.Error(t, cfg.Validate())
	})
}
