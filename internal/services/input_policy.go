package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxNameLength  = 120
	maxNotesLength = 4000
)

var localTimestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp accepts RFC 3339 values, or a wall-clock value interpreted in location.
func ParseTimestamp(raw string, location *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, invalid("timestamp is required")
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	if location == nil {
		location = time.UTC
	}
	for _, layout := range localTimestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, location); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, invalid("invalid timestamp %q", value)
}

// ParseDay parses a YYYY-MM-DD calendar day and returns it as UTC midnight.
func ParseDay(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, invalid("invalid date %q", value)
	}
	return parsed, nil
}

// ParseLocalDay reads a YYYY-MM-DD day as the instant it starts in location.
func ParseLocalDay(raw string, location *time.Location) (time.Time, error) {
	day, err := ParseDay(raw)
	if err != nil {
		return time.Time{}, err
	}
	if location == nil {
		location = time.UTC
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, location).UTC(), nil
}

func normalizeRequiredName(field string, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("%s is required", field)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", invalid("%s is too long", field)
	}
	return name, nil
}

func normalizeNotes(field string, raw string) (string, error) {
	notes := strings.TrimSpace(raw)
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return "", invalid("%s is too long", field)
	}
	return notes, nil
}

func normalizeCurrency(raw string, fallback string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency == "" {
		currency = fallback
	}
	if len(currency) != 3 {
		return "", invalid("currency must be a three-letter code")
	}
	for _, char := range currency {
		if char < 'A' || char > 'Z' {
			return "", invalid("currency must be a three-letter code")
		}
	}
	return currency, nil
}

func requireNonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return invalid("%s must not be negative", field)
	}
	return nil
}
