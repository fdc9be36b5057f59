package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with the environment variables named in its env
// tags. Unset variables keep the current values.
//
// Panics on malformed values.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
