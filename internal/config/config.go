// Package config resolves server settings from the environment, an
// optional .env file and command-line flags, in increasing priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	DBPath    string
	Addr      string
	AdminUser string
	LogPath   string
	// CookieSecure marks the session cookie Secure (serve over HTTPS only).
	CookieSecure bool
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		DBPath:    "zaloga.sqlite3",
		Addr:      ":8080",
		AdminUser: "Admin",
	}
}

// Usage is the help text for the server flags.
const Usage = `Usage: zaloga [flags]

Flags:
  -d, -db <path>          SQLite database path (default: zaloga.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        admin username on first run (default: Admin)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -e, -env <path>         .env file to load (default: .env if present)
  -h, -help               show this help and exit

Environment:
  ZALOGA_DB, ZALOGA_ADDR, ZALOGA_ADMIN_USER, ZALOGA_LOG, ZALOGA_COOKIE_SECURE
`

// Load parses args. Values come from the built-in defaults, then from the
// environment (after loading the .env file), then from flags.
func Load(args []string) (*Config, error) {
	envFile := envFileArg(args)
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Defaults()
	cfg.DBPath = getenvWithDefault("ZALOGA_DB", cfg.DBPath)
	cfg.Addr = getenvWithDefault("ZALOGA_ADDR", cfg.Addr)
	cfg.AdminUser = getenvWithDefault("ZALOGA_ADMIN_USER", cfg.AdminUser)
	cfg.LogPath = os.Getenv("ZALOGA_LOG")
	cfg.CookieSecure = parseBool(os.Getenv("ZALOGA_COOKIE_SECURE"))

	fs := flag.NewFlagSet("zaloga", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), Usage) }

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")
	fs.StringVar(&cfg.AdminUser, "user", cfg.AdminUser, "")
	fs.StringVar(&cfg.AdminUser, "u", cfg.AdminUser, "")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")
	var ignored string
	fs.StringVar(&ignored, "env", "", "")
	fs.StringVar(&ignored, "e", "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures that required settings are populated.
func (c *Config) Validate() error {
	switch {
	case c.DBPath == "":
		return errors.New("database path must not be empty")
	case c.Addr == "":
		return errors.New("listen address must not be empty")
	case c.AdminUser == "":
		return errors.New("admin username must not be empty")
	}
	return nil
}

// envFileArg finds the -env/-e flag value before the full parse, since the
// file must be loaded before flag defaults are read from the environment.
func envFileArg(args []string) string {
	for i, a := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || (name != "env" && name != "e") {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
