package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/montflix/internal/flagx"
)

// Duration accepts either a Go duration string ("20s") or integer
// nanoseconds in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration: %s", b)
	}
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish absent keys from empty values.
type JsonConfig struct {
	DatabasePath *string   `json:"database_path"`
	CatalogPath  *string   `json:"catalog_path"`
	Language     *string   `json:"language"`
	MasterEmail  *string   `json:"master_email"`
	AdminEmails  []string  `json:"admin_emails"`
	LogLevel     *string   `json:"log_level"`
	GeminiModel  *string   `json:"gemini_model"`
	ChatTimeout  *Duration `json:"chat_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.CatalogPath, jc.CatalogPath)
	setString(&cfg.Language, jc.Language)
	setString(&cfg.MasterEmail, jc.MasterEmail)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.GeminiModel, jc.GeminiModel)
	if jc.AdminEmails != nil {
		cfg.AdminEmails = jc.AdminEmails
	}
	if jc.ChatTimeout != nil {
		cfg.ChatTimeout = jc.ChatTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
