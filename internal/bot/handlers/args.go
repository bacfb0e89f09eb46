package handlers

import (
	"errors"
	"strconv"
	"strings"
)

// Argument validation errors. Every one of these resolves to a usage string
// sent back to the admin; none of them ever reaches the remote API.
var (
	errNotNumeric    = errors.New("telegram ID must contain only digits")
	errDaysNotNumber = errors.New("day count must be a number")
	errDaysTooSmall  = errors.New("day count must be greater than 0")
	errBadToggle     = errors.New("expected on or off")
)

// splitArgs tokenizes a command message on whitespace. The first token is
// the command itself.
func splitArgs(text string) []string {
	return strings.Fields(text)
}

// parseTelegramID parses a numeric-only Telegram user identifier.
func parseTelegramID(s string) (int64, error) {
	if s == "" {
		return 0, errNotNumeric
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotNumeric
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errNotNumeric
	}
	return id, nil
}

// parseDays parses a positive integer day count.
func parseDays(s string) (int, error) {
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, errDaysNotNumber
	}
	if days <= 0 {
		return 0, errDaysTooSmall
	}
	return days, nil
}

// parseOnOff parses the literal on/off toggle token (case-insensitive).
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, errBadToggle
	}
}
