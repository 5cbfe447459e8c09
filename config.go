package hledger

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config collects the runtime knobs of a Journal. All fields have working
// zero-value defaults.
type Config struct {
	// File is the journal file to read and edit.
	File string
	// Bin is the engine binary, "hledger" when empty.
	Bin string
	// Timeout bounds each engine invocation.
	Timeout time.Duration
	// CacheTTL bounds how long cached reads are served.
	CacheTTL time.Duration
	// Currencies maps ambiguous commodities to their digit group size.
	Currencies Currencies
	// Addr is the listen address of the web server.
	Addr string
}

// LoadConfig reads the environment, after loading a .env file when one is
// present in the working directory:
//
//	HLEDGER_FILE        journal file (default "2025.journal")
//	HLEDGER_BIN         engine binary (default "hledger")
//	HLEDGER_TIMEOUT     per-invocation timeout, e.g. "10s"
//	HLEDGER_CACHE_TTL   read cache TTL, e.g. "30s"
//	HLEDGER_CURRENCIES  yaml file of ambiguous commodities
//	HLW_ADDR            web listen address (default ":8000")
func LoadConfig() (Config, error) {
	// missing .env is the common case, not an error
	_ = godotenv.Load()

	cfg := Config{
		File:       "2025.journal",
		Bin:        "hledger",
		Timeout:    DefaultTimeout,
		CacheTTL:   DefaultCacheTTL,
		Currencies: DefaultCurrencies(),
		Addr:       ":8000",
	}
	if v := os.Getenv("HLEDGER_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("HLEDGER_BIN"); v != "" {
		cfg.Bin = v
	}
	if v := os.Getenv("HLEDGER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse HLEDGER_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("HLEDGER_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse HLEDGER_CACHE_TTL %q: %w", v, err)
		}
		cfg.CacheTTL = d
	}
	if v := os.Getenv("HLEDGER_CURRENCIES"); v != "" {
		c, err := LoadCurrencies(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Currencies = c
	}
	if v := os.Getenv("HLW_ADDR"); v != "" {
		cfg.Addr = v
	}
	return cfg, nil
}
