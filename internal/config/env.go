package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvConfig            = "TOOLKIT_CONFIG"
	EnvDBPath            = "TOOLKIT_DB_PATH"
	EnvKeyPath           = "TOOLKIT_KEY_PATH"
	EnvActivityLog       = "TOOLKIT_ACTIVITY_LOG"
	EnvDebugLog          = "TOOLKIT_DEBUG_LOG"
	EnvLogLevel          = "TOOLKIT_LOG_LEVEL"
	EnvAdminUsername     = "TOOLKIT_ADMIN_USERNAME"
	EnvAdminPassword     = "TOOLKIT_ADMIN_PASSWORD"
	EnvAdminPasswordHash = "TOOLKIT_ADMIN_PASSWORD_HASH"
	EnvPasswordLength    = "TOOLKIT_PASSWORD_LENGTH"
)

const dotEnvFile = ".env"

// lookupEnv is a seam for tests.
var lookupEnv = os.LookupEnv

// loadDotEnv exports the variables of path into the process environment.
// Variables that are already set are left alone. A missing file is fine.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{EnvDBPath, &cfg.DBPath},
		{EnvKeyPath, &cfg.KeyPath},
		{EnvActivityLog, &cfg.ActivityLogPath},
		{EnvDebugLog, &cfg.DiagnosticLogPath},
		{EnvLogLevel, &cfg.LogLevel},
		{EnvAdminUsername, &cfg.AdminUsername},
		{EnvAdminPassword, &cfg.AdminPassword},
		{EnvAdminPasswordHash, &cfg.AdminPasswordHash},
	}
	for _, s := range strs {
		if v, ok := lookup(s.name); ok {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvPasswordLength); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPasswordLength, err)
		}
		cfg.GeneratedPasswordLength = n
	}
	return nil
}
