// Package config loads runtime configuration for the toolkit.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by --config/-c or TOOLKIT_CONFIG.
//  3. Environment variables TOOLKIT_*. A .env file in the working directory
//     is loaded first if present; real environment variables win over it.
//  4. Command-line flags the operator actually set.
//
// # JSON schema
//
//	{
//	  "db_path": "toolkit.db",
//	  "key_path": "secret.key",
//	  "activity_log_path": "activity.log",
//	  "diagnostic_log_path": "toolkit-debug.log",
//	  "log_level": "warn",
//	  "admin_username": "admin",
//	  "admin_password_hash": "$2a$10$...",
//	  "generated_password_length": 12
//	}
//
// # Environment
//
//	TOOLKIT_DB_PATH, TOOLKIT_KEY_PATH, TOOLKIT_ACTIVITY_LOG, TOOLKIT_DEBUG_LOG,
//	TOOLKIT_LOG_LEVEL, TOOLKIT_ADMIN_USERNAME, TOOLKIT_ADMIN_PASSWORD,
//	TOOLKIT_ADMIN_PASSWORD_HASH, TOOLKIT_PASSWORD_LENGTH
package config
