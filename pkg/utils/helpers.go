package utils

import "time"

// ParseDuration safely parses a duration string like "10m", falling
// back to a sane default for empty or malformed input.
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 10 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 10 * time.Minute
	}
	return duration
}
