/* config.go
 * Loads runtime configuration from the environment (and an optional .env file)
 * Authors: Zachary Bower
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"sports-results/api/shared"

	"github.com/joho/godotenv"
)

// Defaults applied when a variable is unset
const (
	DefaultHTTPAddr     = ":8080"
	DefaultLogLevel     = "info"
	DefaultFetchRate    = 1.0
	DefaultDatabaseName = "sports_results"
)

// Config is the runtime configuration shared by every sub command
type Config struct {
	MongoURI        string
	DBName          string
	Country         string
	HTTPAddr        string
	DiscordToken    string
	LogLevel        string
	FetchRatePerSec float64
	CORSOrigins     []string
	RoundsFile      string
	EnableBot       bool
}

// Load reads .env (if present) into the environment and builds a Config from it
// Preconditions: None
// Postconditions: Returns the Config, or an error if .env is malformed or a variable has an invalid value
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a variable lookup, applying defaults for unset values
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		MongoURI:     getenv("MONGO_URI"),
		DBName:       valueOr(getenv("DB_NAME"), DefaultDatabaseName),
		Country:      strings.ToUpper(valueOr(getenv("TARGET_COUNTRY"), shared.DefaultCountry)),
		HTTPAddr:     valueOr(getenv("HTTP_ADDR"), DefaultHTTPAddr),
		DiscordToken: getenv("DISCORD_TOKEN"),
		LogLevel:     valueOr(getenv("LOG_LEVEL"), DefaultLogLevel),
		RoundsFile:   getenv("ROUNDS_FILE"),
		CORSOrigins:  splitList(getenv("CORS_ORIGINS")),
	}

	cfg.FetchRatePerSec = DefaultFetchRate
	if raw := strings.TrimSpace(getenv("FETCH_RATE_PER_SEC")); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 {
			return Config{}, fmt.Errorf("FETCH_RATE_PER_SEC must be a positive number, got '%s'", raw)
		}
		cfg.FetchRatePerSec = rate
	}

	if raw := getenv("ENABLE_BOT"); strings.TrimSpace(raw) != "" {
		enabled, err := convertStrToBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("ENABLE_BOT: %w", err)
		}
		cfg.EnableBot = enabled
	}
	return cfg, nil
}

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// splitList splits a comma separated list, dropping empty items
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}
