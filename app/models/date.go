package models

import (
	"regexp"
	"time"
)

// DateLayout is the only accepted date format for posts.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether s is a real calendar date written exactly as
// YYYY-MM-DD. The shape check rejects formats like 06-07-2023, the parse
// rejects impossible dates like 2023-02-30.
func IsValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDateOrZero parses a stored post date, returning the zero time
// (0001-01-01) when the value is missing or malformed so such posts sort
// before every dated post in ascending order.
func ParseDateOrZero(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
