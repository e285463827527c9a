package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the configuration file
const (
	EnvStoreDriver = "QRLABEL_STORE_DRIVER"
	EnvStorePath   = "QRLABEL_STORE_PATH"
	EnvAddr        = "QRLABEL_ADDR"
	EnvMaxCount    = "QRLABEL_MAX_COUNT"
	// EnvPort is honoured for hosting platforms that only hand out a port
	EnvPort = "PORT"
)

// LoadDotEnv loads <dir>/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnv overrides cfg with QRLABEL_* variables
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvStoreDriver); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.Server.Addr = ":" + v
		}
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvMaxCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MaxCount = n
		}
	}
}
