// Package config resolves runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"taskdeck/internal/api"
)

type Config struct {
	// BaseURL is the service's /api root.
	BaseURL string

	// Email/Password let scriptable CLI invocations authenticate without
	// prompting. The session cookie lives only in memory, so each CLI run
	// logs in fresh.
	Email    string
	Password string

	// Timeout bounds every adapter call.
	Timeout time.Duration

	// Theme forces the TUI palette: "light", "dark" or "auto".
	Theme string

	// DebugLog enables TUI event tracing to the given file when non-empty.
	DebugLog string
}

// Load reads .env (best-effort, missing file is fine) and the environment.
func Load() Config {
	_ = godotenv.Load()

	timeout := 15 * time.Second
	if s := os.Getenv("TASKDECK_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	return Config{
		BaseURL:  envOr("TASKDECK_BASE_URL", api.DefaultBaseURL),
		Email:    os.Getenv("TASKDECK_EMAIL"),
		Password: os.Getenv("TASKDECK_PASSWORD"),
		Timeout:  timeout,
		Theme:    envOr("TASKDECK_TUI_THEME", "auto"),
		DebugLog: os.Getenv("TASKDECK_TUI_DEBUG_LOG"),
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
