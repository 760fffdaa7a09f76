// Package config loads and validates application configuration from
// environment variables. Both binaries call godotenv first, so a local .env
// file works the same as real environment variables.
package config

import (
	"os"
	"strings"
)

// DefaultItineraryFile is the conventional itinerary file name, used when
// ITINERARY_FILE is not set.
const DefaultItineraryFile = "itineraries.json"

// Config holds all configuration values for Tripfolio.
// Values are populated by Load from environment variables.
// There are no hard-required variables: the itinerary file has a default and
// the assistant degrades gracefully without an API key.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// ItineraryFile is the path of the persisted itinerary JSON file.
	ItineraryFile string

	// OpenAIAPIKey enables the travel assistant when set. Optional.
	OpenAIAPIKey string

	// OpenAIModel is the generation model name. Defaults to "gpt-4o-mini".
	OpenAIModel string

	// OpenAIBaseURL is the API base URL, overridable for tests and proxies.
	OpenAIBaseURL string
}

// Load reads configuration from environment variables and returns a Config.
func Load() (Config, error) {
	return Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		ItineraryFile: getEnv("ITINERARY_FILE", DefaultItineraryFile),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
	}, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
