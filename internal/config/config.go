// Package config reads process configuration from the environment. Values
// arrive via the environment or a local .env file loaded by the entrypoints.
package config

import "os"

// Get returns the value of the environment variable key, or fallback when it
// is unset or empty. An explicitly-set empty variable counts as unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
