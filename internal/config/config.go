package config

import (
	"fmt"

	"github.com/dmitrijs2005/pstoolkit/internal/logging"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the toolkit.
//
// AdminPasswordHash is a bcrypt hash and takes precedence over
// AdminPassword, which only exists so a fresh install has a working login.
type Config struct {
	DBPath                  string
	KeyPath                 string
	ActivityLogPath         string
	DiagnosticLogPath       string
	LogLevel                string
	AdminUsername           string
	AdminPassword           string
	AdminPasswordHash       string
	GeneratedPasswordLength int
}

// LoadDefaults populates c with the defaults of a fresh install in the
// working directory.
func (c *Config) LoadDefaults() {
	c.DBPath = "toolkit.db"
	c.KeyPath = "secret.key"
	c.ActivityLogPath = "activity.log"
	c.DiagnosticLogPath = "toolkit-debug.log"
	c.LogLevel = "warn"
	c.AdminUsername = "admin"
	c.AdminPassword = "admin123"
	c.AdminPasswordHash = ""
	c.GeneratedPasswordLength = 12
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and finally the flags in fs (which must have been set up with
// RegisterFlags and parsed). fs may be nil.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, jsonConfigPath(fs, lookupEnv)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path must not be empty")
	}
	if c.KeyPath == "" {
		return fmt.Errorf("key path must not be empty")
	}
	if c.ActivityLogPath == "" {
		return fmt.Errorf("activity log path must not be empty")
	}
	if c.AdminUsername == "" {
		return fmt.Errorf("admin username must not be empty")
	}
	if c.GeneratedPasswordLength <= 0 {
		return fmt.Errorf("generated password length must be positive, got %d", c.GeneratedPasswordLength)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// AdminHash returns the bcrypt hash the admin login is checked against,
// hashing AdminPassword when no hash is configured.
func (c *Config) AdminHash() (string, error) {
	if c.AdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(c.AdminPasswordHash)); err != nil {
			return "", fmt.Errorf("admin password hash: %w", err)
		}
		return c.AdminPasswordHash, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(c.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(h), nil
}
