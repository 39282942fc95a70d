package utils

import (
	"fmt"
	"regexp"
	"time"
)

const DateLayout = "2006-01-02"

var (
	datePattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	timeRangePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)
)

// Wire patterns shared by the validator, the JSON schema and the prompts.
const (
	DatePatternSource      = `^\d{4}-\d{2}-\d{2}$`
	ClockPatternSource     = `^([01]\d|2[0-3]):[0-5]\d$`
	TimeRangePatternSource = `^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`
)

func IsISODate(s string) bool { return datePattern.MatchString(s) }

func IsClock(s string) bool { return clockPattern.MatchString(s) }

func IsTimeRange(s string) bool { return timeRangePattern.MatchString(s) }

// ParseISODate parses a YYYY-MM-DD calendar date in UTC.
func ParseISODate(s string) (time.Time, error) {
	if !IsISODate(s) {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// InclusiveDayCount returns end - start in days plus one. It is <= 0 when end precedes start.
func InclusiveDayCount(start, end string) (int, error) {
	s, err := ParseISODate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseISODate(end)
	if err != nil {
		return 0, err
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

func FormatRFC3339(unixSeconds int64) string {
	if unixSeconds <= 0 {
		return ""
	}
	return time.Unix(unixSeconds, 0).UTC().Format(time.RFC3339)
}
