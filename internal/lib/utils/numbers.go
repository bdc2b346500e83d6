package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var leadingIntPattern = regexp.MustCompile(`^[+-]?\d+`)

// ParseLeadingInt reads the integer prefix of value and ignores whatever
// follows it, so "30.5" is 30 and "2abc" is 2. Leading whitespace is skipped.
// An error is returned when value does not start with a digit or the prefix
// overflows int.
func ParseLeadingInt(value string) (int, error) {
	prefix := leadingIntPattern.FindString(strings.TrimSpace(value))
	if prefix == "" {
		return 0, fmt.Errorf("no integer prefix in %q", value)
	}
	return strconv.Atoi(prefix)
}
