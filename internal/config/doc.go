// Package config loads runtime configuration for the Montflix CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string     path of the SQLite database holding the slots
//	-k string     catalog YAML file (empty: built-in catalog)
//	-l string     interface language (pt, en)
//	-log string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations can be either strings like "20s" or integer nanoseconds:
//
//	{
//	  "database_path": "montflix.db",
//	  "catalog_path": "",
//	  "language": "pt",
//	  "master_email": "owner@montflix.app",
//	  "admin_emails": ["owner@montflix.app", "curator@montflix.app"],
//	  "log_level": "warn",
//	  "gemini_model": "gemini-2.5-flash",
//	  "chat_timeout": "20s"
//	}
//
// Only keys present in the file override the defaults.
//
// # Environment
//
//	MONTFLIX_DATABASE_PATH, MONTFLIX_CATALOG_PATH, MONTFLIX_LANGUAGE,
//	MONTFLIX_MASTER_EMAIL, MONTFLIX_ADMIN_EMAILS (comma separated),
//	MONTFLIX_LOG_LEVEL, MONTFLIX_GEMINI_MODEL, MONTFLIX_CHAT_TIMEOUT,
//	GEMINI_API_KEY
//
// The API key is read from the environment only.
package config
