// Package config reads configuration from the environment with
// fallbacks. Composition roots load .env via godotenv before the first
// Get call.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Get returns the value of an environment variable, or fallback when
// unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetFloat parses a float64 environment variable; unparseable values
// log a warning and fall back.
func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %g", key, v, fallback)
		return fallback
	}
	return f
}

// GetDurationSec reads a duration expressed in (fractional) seconds.
func GetDurationSec(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number of seconds, using %s", key, v, fallback)
		return fallback
	}
	return time.Duration(f * float64(time.Second))
}
