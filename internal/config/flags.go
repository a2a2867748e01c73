package config

import (
	"github.com/spf13/pflag"
)

const (
	FlagConfig         = "config"
	FlagDBPath         = "db"
	FlagKeyPath        = "key"
	FlagActivityLog    = "activity-log"
	FlagDebugLog       = "debug-log"
	FlagLogLevel       = "log-level"
	FlagAdminUsername  = "admin-user"
	FlagPasswordLength = "password-length"
)

// RegisterFlags declares the configuration flags on fs. There is no admin
// password flag; use the JSON file or TOOLKIT_ADMIN_PASSWORD(_HASH).
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to JSON config file")
	fs.String(FlagDBPath, d.DBPath, "path to the SQLite store")
	fs.String(FlagKeyPath, d.KeyPath, "path to the encryption key file")
	fs.String(FlagActivityLog, d.ActivityLogPath, "path to the activity log")
	fs.String(FlagDebugLog, d.DiagnosticLogPath, "path to the diagnostic log (\"-\" for stderr)")
	fs.String(FlagLogLevel, d.LogLevel, "diagnostic log level: debug|info|warn|error")
	fs.String(FlagAdminUsername, d.AdminUsername, "admin login name")
	fs.Int(FlagPasswordLength, d.GeneratedPasswordLength, "default length of generated passwords")
}

// parseFlags copies the flags the operator set into cfg. Flags left at their
// default do not override JSON or environment values.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	strs := []struct {
		name string
		dst  *string
	}{
		{FlagDBPath, &cfg.DBPath},
		{FlagKeyPath, &cfg.KeyPath},
		{FlagActivityLog, &cfg.ActivityLogPath},
		{FlagDebugLog, &cfg.DiagnosticLogPath},
		{FlagLogLevel, &cfg.LogLevel},
		{FlagAdminUsername, &cfg.AdminUsername},
	}
	for _, s := range strs {
		if !fs.Changed(s.name) {
			continue
		}
		v, err := fs.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	if fs.Changed(FlagPasswordLength) {
		n, err := fs.GetInt(FlagPasswordLength)
		if err != nil {
			return err
		}
		cfg.GeneratedPasswordLength = n
	}
	return nil
}
