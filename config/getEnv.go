package config

import "os"

// GetEnv reads an environment variable, returning "" when unset. Defaults are
// the caller's concern so missing configuration stays visible at the call site.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault reads an environment variable with a fallback value.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
