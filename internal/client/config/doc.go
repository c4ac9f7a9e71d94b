// Package config loads runtime configuration for the EmployEra CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config; the decoder is
//     picked by extension (.yaml/.yml means YAML, anything else JSON).
//  3. A .env file in the working directory (if any) and EMPLOYERA_* variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the marketplace API, e.g. http://127.0.0.1:8000/api
//	-t duration   per-request timeout (e.g. 10s)
//	-d string     path to the local SQLite state file
//	-l string     log level: debug, info, warn, error
//	-no-color     disable colored output
//
// Environment
//
//	EMPLOYERA_API_URL, EMPLOYERA_TIMEOUT, EMPLOYERA_DB, EMPLOYERA_LOG_LEVEL, NO_COLOR
//
// # File schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api",
//	  "request_timeout": "10s",
//	  "database_path": "employera.db",
//	  "log_level": "info",
//	  "no_color": false
//	}
package config
