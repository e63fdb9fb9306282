package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// BaseURL is the TrailLend API root, e.g. http://lend.campus.edu/api.
	BaseURL string

	// Timezone is the wall-clock zone reservation windows are composed in.
	// Empty or "Local" means the device zone.
	Timezone string

	HTTPTimeout time.Duration

	// DatabaseURL enables the local receipt archive when set.
	DatabaseURL string

	// ConfigDir holds the sealed session, PIN hash and logs.
	ConfigDir string

	Debug bool

	// Seal keys for the on-disk session blob. Normally the OS keyring
	// provides these; the env pair is the fallback for headless machines
	// (generate with `traillend keys`).
	HashKey  []byte
	BlockKey []byte
}

func FromEnv() (Config, error) {
	cfg := Config{
		BaseURL:     getenv("TRAILLEND_BASE_URL", "http://localhost:8000/api"),
		Timezone:    getenv("TRAILLEND_TIMEZONE", ""),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Debug:       strings.TrimSpace(os.Getenv("TRAILLEND_DEBUG")) == "1",
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	timeoutSec, err := strconv.Atoi(getenv("TRAILLEND_HTTP_TIMEOUT_SECONDS", "15"))
	if err != nil || timeoutSec < 1 {
		return Config{}, fmt.Errorf("invalid TRAILLEND_HTTP_TIMEOUT_SECONDS")
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	if _, err := cfg.Location(); err != nil {
		return Config{}, fmt.Errorf("invalid TRAILLEND_TIMEZONE: %w", err)
	}

	cfg.ConfigDir = strings.TrimSpace(os.Getenv("TRAILLEND_CONFIG_DIR"))
	if cfg.ConfigDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.ConfigDir = filepath.Join(base, "traillend")
	}

	// Optional: only needed when the OS keyring is unavailable.
	if v := strings.TrimSpace(os.Getenv("TRAILLEND_HASH_KEY")); v != "" {
		if cfg.HashKey, err = decodeB64(v); err != nil {
			return Config{}, fmt.Errorf("TRAILLEND_HASH_KEY: %w", err)
		}
	}
	if v := strings.TrimSpace(os.Getenv("TRAILLEND_BLOCK_KEY")); v != "" {
		if cfg.BlockKey, err = decodeB64(v); err != nil {
			return Config{}, fmt.Errorf("TRAILLEND_BLOCK_KEY: %w", err)
		}
	}

	return cfg, nil
}

// Location resolves the configured zone policy. The zero policy is the
// device-local zone, matching how reservations behave on the phone client.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func decodeB64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
