// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/poko950615-bit/mnist-app/internal/segment"
)

// Config carries everything the binary needs that is not a per-request
// parameter.
type Config struct {
	// Profile is the default processing profile for the server.
	Profile segment.Profile

	// LogLevel enables startup diagnostics when set to "debug".
	LogLevel string

	// TesseractLang is the OCR language code for the classifier adapter.
	TesseractLang string

	// Workers is the per-frame classification worker count.
	Workers int
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present; a missing file is not an error.
//
// Variables:
//
//	DIGIT_MCP_PROFILE        "interactive" (default) or "single-shot"
//	DIGIT_MCP_LOG_LEVEL      "debug" for startup diagnostics
//	DIGIT_MCP_TESSERACT_LANG Tesseract language code, default "eng"
//	DIGIT_MCP_WORKERS        classification workers, default 1
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Profile:       segment.Interactive(),
		LogLevel:      os.Getenv("DIGIT_MCP_LOG_LEVEL"),
		TesseractLang: os.Getenv("DIGIT_MCP_TESSERACT_LANG"),
		Workers:       1,
	}

	if name := os.Getenv("DIGIT_MCP_PROFILE"); name != "" {
		profile, ok := segment.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q (want interactive or single-shot)", name)
		}
		cfg.Profile = profile
	}

	if raw := os.Getenv("DIGIT_MCP_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid DIGIT_MCP_WORKERS %q", raw)
		}
		cfg.Workers = n
	}

	return cfg, nil
}
