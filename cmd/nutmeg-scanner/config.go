package main

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds defaults read from the environment. Command line flags
// override them.
type Config struct {
	Rules     string `env:"NUTMEG_SCANNER_RULES"`
	Compare   string `env:"NUTMEG_SCANNER_COMPARE"`
	Space     string `env:"NUTMEG_SCANNER_SPACE"`
	Words     string `env:"NUTMEG_SCANNER_WORDS"`
	LogLevel  string `env:"NUTMEG_SCANNER_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"NUTMEG_SCANNER_LOG_FORMAT" envDefault:"text"`
}

// loadConfig reads .env if present, then the environment.
func loadConfig() (Config, error) {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
