// Package utils contains small helper functions used across the project.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// DisplayDateLayout renders dates as "Sun Jan 01 2023".
const DisplayDateLayout = "Mon Jan 02 2006"

// inputDateLayouts are tried in order. Layouts without a zone are read as UTC.
var inputDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a client supplied date. Surrounding whitespace is ignored.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// FormatDate renders t in DisplayDateLayout, in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}
