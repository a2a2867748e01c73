package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell "absent" apart from "set to the zero value".
type JsonConfig struct {
	DBPath                  *string `json:"db_path"`
	KeyPath                 *string `json:"key_path"`
	ActivityLogPath         *string `json:"activity_log_path"`
	DiagnosticLogPath       *string `json:"diagnostic_log_path"`
	LogLevel                *string `json:"log_level"`
	AdminUsername           *string `json:"admin_username"`
	AdminPassword           *string `json:"admin_password"`
	AdminPasswordHash       *string `json:"admin_password_hash"`
	GeneratedPasswordLength *int    `json:"generated_password_length"`
}

// jsonConfigPath resolves the JSON file: the --config flag first, then
// TOOLKIT_CONFIG.
func jsonConfigPath(fs *pflag.FlagSet, lookup func(string) (string, bool)) string {
	if fs != nil {
		if p, err := fs.GetString(FlagConfig); err == nil && p != "" {
			return p
		}
	}
	if p, ok := lookup(EnvConfig); ok {
		return p
	}
	return ""
}

// parseJson overlays cfg with the fields present in the JSON file at path.
// An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.KeyPath, jc.KeyPath)
	setString(&cfg.ActivityLogPath, jc.ActivityLogPath)
	setString(&cfg.DiagnosticLogPath, jc.DiagnosticLogPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.AdminUsername, jc.AdminUsername)
	setString(&cfg.AdminPassword, jc.AdminPassword)
	setString(&cfg.AdminPasswordHash, jc.AdminPasswordHash)
	if jc.GeneratedPasswordLength != nil {
		cfg.GeneratedPasswordLength = *jc.GeneratedPasswordLength
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
