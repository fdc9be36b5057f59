package config

import (
	"time"

	"github.com/dmitrijs2005/montflix/internal/locale"
	"github.com/dmitrijs2005/montflix/internal/session"
)

// Config holds runtime settings for the Montflix CLI.
//
// Units: ChatTimeout is a time.Duration (e.g., 20*time.Second).
type Config struct {
	DatabasePath string   `env:"MONTFLIX_DATABASE_PATH"`
	CatalogPath  string   `env:"MONTFLIX_CATALOG_PATH"`
	Language     string   `env:"MONTFLIX_LANGUAGE"`
	MasterEmail  string   `env:"MONTFLIX_MASTER_EMAIL"`
	AdminEmails  []string `env:"MONTFLIX_ADMIN_EMAILS" envSeparator:","`
	LogLevel     string   `env:"MONTFLIX_LOG_LEVEL"`

	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"MONTFLIX_GEMINI_MODEL"`
	ChatTimeout  time.Duration `env:"MONTFLIX_CHAT_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "montflix.db"
	c.CatalogPath = ""
	c.Language = string(locale.Portuguese)
	c.MasterEmail = "owner@montflix.app"
	c.AdminEmails = []string{"owner@montflix.app", "curator@montflix.app"}
	c.LogLevel = "warn"
	c.GeminiAPIKey = ""
	c.GeminiModel = "gemini-2.5-flash"
	c.ChatTimeout = 20 * time.Second
}

// Policy returns the privileged identities.
func (c *Config) Policy() session.Policy {
	return session.Policy{Master: c.MasterEmail, Admins: c.AdminEmails}
}

// Lang maps the configured language tag onto a supported language.
func (c *Config) Lang() locale.Language {
	return locale.Parse(c.Language)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
