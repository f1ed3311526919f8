package utils

import (
	"time"
)

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	time.RFC3339,
}

func IsValidDate(dateStr string) bool {
	if dateStr == "" {
		return false
	}

	for _, format := range dateFormats {
		if _, err := time.Parse(format, dateStr); err == nil {
			return true
		}
	}

	return false
}

// ParseFlexibleDate aceita os mesmos formatos de IsValidDate. Datas
// malformadas retornam ok=false, nunca erro fatal.
func ParseFlexibleDate(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
