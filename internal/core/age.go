package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// maxAgeDays keeps the resulting duration well inside time.Duration's range.
const maxAgeDays = 100_000

// ParseAge parses an age like "30d", "4w", "3m" or "1y".
// Months count as 30 days and years as 365 days.
func ParseAge(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty age")
	}

	var perUnit int64
	switch s[len(s)-1] {
	case 'd':
		perUnit = 1
	case 'w':
		perUnit = 7
	case 'm':
		perUnit = 30
	case 'y':
		perUnit = 365
	default:
		return 0, fmt.Errorf("invalid age format %q: use e.g. 30d (days), 4w (weeks), 3m (months), 1y (years)", s)
	}

	numStr := s[:len(s)-1]
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil || num < 0 {
		return 0, fmt.Errorf("invalid number in age %q", numStr)
	}

	days := num * perUnit
	if num != 0 && (days/perUnit != num || days > maxAgeDays) {
		return 0, fmt.Errorf("age %q is too large", s)
	}
	return time.Duration(days) * day, nil
}
