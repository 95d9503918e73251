// Package dates normalizes the Brazilian-locale date and time strings the
// mobile client sends. Dates are stored canonically as YYYY-MM-DD and shown
// as DD/MM/YYYY; all parsing is anchored at UTC midnight so the stored day
// never shifts with the caller's timezone.
package dates

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	canonicalLayout = "2006-01-02"
	displayLayout   = "02/01/2006"

	// zeroDate is the MySQL-style sentinel some legacy rows carry.
	zeroDate = "0000-00-00"
)

var ErrInvalidDate = errors.New("invalid date")

var (
	timeWithSeconds = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	timeRawDigits   = regexp.MustCompile(`^\d{4}$`)
)

// ToCanonical converts a DD/MM/YYYY display date (or an already canonical
// YYYY-MM-DD one) to canonical form, validating it against the calendar.
// Empty and sentinel inputs yield an empty string.
func ToCanonical(s string) (string, error) {
	if s == "" || s == zeroDate {
		return "", nil
	}

	canonical := s
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return "", ErrInvalidDate
		}
		canonical = parts[2] + "-" + parts[1] + "-" + parts[0]
	}

	if _, err := time.ParseInLocation(canonicalLayout, canonical, time.UTC); err != nil {
		return "", ErrInvalidDate
	}
	return canonical, nil
}

// ToDisplay converts a canonical YYYY-MM-DD date to DD/MM/YYYY for read
// paths. Empty, sentinel and unparseable values come back as an empty string,
// matching how legacy rows with bad dates are rendered.
func ToDisplay(s string) string {
	if s == "" || s == zeroDate {
		return ""
	}
	t, err := time.ParseInLocation(canonicalLayout, s, time.UTC)
	if err != nil {
		return ""
	}
	return t.Format(displayLayout)
}

// NormalizeTime coerces free-form time-of-day input into HH:MM. Seconds are
// dropped only when they are ":00"; four raw digits get a separator; anything
// unrecognized passes through unchanged.
func NormalizeTime(s string) string {
	if s == "" {
		return ""
	}
	if timeWithSeconds.MatchString(s) {
		if strings.HasSuffix(s, ":00") {
			return s[:5]
		}
		return s
	}
	if timeRawDigits.MatchString(s) {
		return s[:2] + ":" + s[2:]
	}
	return s
}
