package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nleeper/goment"
)

// defaultHour is used when a keyword date ("tomorrow", "friday") comes
// without a time of day.
const defaultHour = 9

// Long, short and minimal weekday spellings, ISO numbering.
var weekdays = map[string]int{
	"monday": 1, "mon": 1, "mo": 1,
	"tuesday": 2, "tue": 2, "tu": 2,
	"wednesday": 3, "wed": 3, "we": 3,
	"thursday": 4, "thu": 4, "th": 4,
	"friday": 5, "fri": 5, "fr": 5,
	"saturday": 6, "sat": 6, "sa": 6,
	"sunday": 7, "sun": 7, "su": 7,
}

var whenFormats = []string{
	"YYYY-MM-DD HH:mm:ss",
	"YYYY-MM-DD HH:mm",
	"YYYY-MM-DD",
	"DD.MM.YYYY HH:mm",
	"DD.MM.YYYY",
	"DD/MM/YYYY HH:mm",
	"DD/MM/YYYY",
}

var clockRe = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))?(am|pm)?$`)

// ParseWhen resolves a free-form date/time string to an absolute timestamp in
// local time. It accepts keyword dates ("today 18:00", "tomorrow", "friday
// 9am") and a handful of explicit formats. This is the absolute-reschedule
// path: unlike codes, it never applies jitter.
func ParseWhen(s string) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date/time string")
	}

	if t, ok := parseKeywordWhen(strings.Fields(strings.ToLower(raw))); ok {
		return t, nil
	}

	for _, format := range whenFormats {
		if g, err := goment.New(raw, format); err == nil {
			return g.ToTime(), nil
		}
	}
	if g, err := goment.New(raw); err == nil {
		return g.ToTime(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date/time %q", raw)
}

func parseKeywordWhen(fields []string) (time.Time, bool) {
	g, err := goment.New()
	if err != nil {
		return time.Time{}, false
	}

	switch fields[0] {
	case "now":
		if len(fields) == 1 {
			return g.ToTime(), true
		}
		return time.Time{}, false
	case "today":
	case "tomorrow", "tmr":
		g.Add(1, "day")
	default:
		weekday, ok := weekdays[fields[0]]
		if !ok {
			return time.Time{}, false
		}
		diff := weekday - g.ISOWeekday()
		if diff <= 0 {
			diff += 7
		}
		g.Add(diff, "days")
	}

	hour, minute := defaultHour, 0
	if len(fields) > 1 {
		h, m, err := parseClock(fields[1])
		if err != nil {
			return time.Time{}, false
		}
		hour, minute = h, m
	}
	g.SetHour(hour)
	g.SetMinute(minute)
	g.SetSecond(0)
	g.SetMillisecond(0)
	return g.ToTime(), true
}

// parseClock handles "18:00", "18.00", "9am", "4:20pm".
func parseClock(s string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("cannot parse time %q", s)
	}
	hour, err = strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour %q", m[1])
	}
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return 0, 0, fmt.Errorf("invalid minute %q", m[2])
		}
	}
	if m[3] == "pm" && hour < 12 {
		hour += 12
	}
	if m[3] == "am" && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}
