// Package config loads the application configuration.
//
// Values are resolved in increasing order of precedence: struct defaults,
// MODELBIND_* environment variables, the optional YAML file, and finally
// command-line flags applied by the caller before Validate.
package config
