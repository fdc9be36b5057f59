package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/montflix/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string     database path
//	-k string     catalog YAML file
//	-l string     interface language
//	-log string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so flags handled
// elsewhere (-c, -config) do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-l", "-log"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database")
	fs.StringVar(&cfg.CatalogPath, "k", cfg.CatalogPath, "catalog YAML file")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "interface language (pt, en)")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
