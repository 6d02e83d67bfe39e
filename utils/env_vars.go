package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type envValue interface {
	string | int | bool | float64 | time.Duration
}

// GetEnv reads an environment variable, falling back to defaultValue when it is unset or empty.
// A value that cannot be converted to T is fatal: configuration errors must stop the process at boot.
func GetEnv[T envValue](envVar string, defaultValue T) T {
	raw, ok := os.LookupEnv(envVar)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := parseEnvValue[T](raw)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: %s", envVar, err)
	}
	return value
}

func GetRequiredEnv[T envValue](envVar string) T {
	raw, ok := os.LookupEnv(envVar)
	if !ok || raw == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}
	value, err := parseEnvValue[T](raw)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: %s", envVar, err)
	}
	return value
}

func parseEnvValue[T envValue](raw string) (T, error) {
	var out T
	var parsed any
	var err error

	switch any(out).(type) {
	case string:
		parsed = raw
	case int:
		parsed, err = strconv.Atoi(raw)
	case bool:
		parsed, err = strconv.ParseBool(raw)
	case float64:
		parsed, err = strconv.ParseFloat(raw, 64)
	case time.Duration:
		parsed, err = time.ParseDuration(raw)
	}
	if err != nil {
		return out, fmt.Errorf("'%s' cannot be converted to %T: %w", raw, out, err)
	}
	return parsed.(T), nil
}
