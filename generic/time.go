package generic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// WEEK ID - ISO year + ISO week, e.g. 202551
// =============================================================================

// WeekID namespaces the input and output files of one reconciliation period.
type WeekID string

// WeekOf returns the ISO week id of t.
func WeekOf(t time.Time) WeekID {
	year, week := t.ISOWeek()
	return WeekID(fmt.Sprintf("%04d%02d", year, week))
}

// ParseWeekID validates s as YYYYww with ww in 01..53. Week 53 is accepted
// only for ISO years that have one.
func ParseWeekID(s string) (WeekID, error) {
	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q: expected YYYYww", ErrInvalidWeek, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q: expected digits only", ErrInvalidWeek, s)
		}
	}
	year, _ := strconv.Atoi(s[:4])
	week, _ := strconv.Atoi(s[4:])
	if week < 1 || week > 53 {
		return "", fmt.Errorf("%w: %q: week must be between 01 and 53", ErrInvalidWeek, s)
	}
	if week > weeksInYear(year) {
		return "", fmt.Errorf("%w: %q: ISO year %d has %d weeks", ErrInvalidWeek, s, year, weeksInYear(year))
	}
	return WeekID(s), nil
}

// weeksInYear returns 52 or 53. December 28 always falls in the last ISO
// week of its year.
func weeksInYear(year int) int {
	_, last := time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return last
}

// WeekFromPrefix extracts the week id from names like "202551 Kloklijst.csv".
func WeekFromPrefix(name string) (WeekID, bool) {
	if len(name) < 7 || name[6] != ' ' {
		return "", false
	}
	w, err := ParseWeekID(name[:6])
	if err != nil {
		return "", false
	}
	return w, true
}

func (w WeekID) Year() int {
	y, _ := strconv.Atoi(string(w[:4]))
	return y
}

func (w WeekID) Week() int {
	n, _ := strconv.Atoi(string(w[4:]))
	return n
}

func (w WeekID) String() string { return string(w) }

// =============================================================================
// DATE KEYS
// =============================================================================

// DateKey trims a date cell to its date-only prefix:
// "2025-12-15 00:00:00" becomes "2025-12-15".
func DateKey(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
