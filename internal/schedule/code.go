package schedule

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Unit is the single-letter offset unit of a reschedule code.
type Unit byte

const (
	UnitMinute Unit = 'm'
	UnitHour   Unit = 'h'
	UnitDay    Unit = 'd'
	UnitWeek   Unit = 'w'
	UnitMonth  Unit = 'M'
)

// Fixed durations for the non-calendar units. Days and weeks deliberately
// ignore DST and leap seconds: a day is always 86400 seconds.
var unitDurations = map[Unit]time.Duration{
	UnitMinute: time.Minute,
	UnitHour:   time.Hour,
	UnitDay:    24 * time.Hour,
	UnitWeek:   7 * 24 * time.Hour,
}

// InvalidCodeError reports a reschedule code that does not match the
// <integer><unit>[~] grammar.
type InvalidCodeError struct {
	Code   string
	Reason string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid reschedule code %q: %s", e.Code, e.Reason)
}

// Code is a parsed reschedule code such as "3d", "-2h" or "2w~".
// The trailing tilde asks for jitter: a random 1-59 minutes added on top,
// so recurring reminders don't fire at the exact same minute every cycle.
type Code struct {
	Magnitude int
	Unit      Unit
	Jitter    bool
}

// ParseCode parses a compact reschedule code. Units are m (minutes),
// h (hours), d (days), w (weeks) and M (calendar months).
func ParseCode(s string) (Code, error) {
	code := strings.TrimSpace(s)
	if code == "" {
		return Code{}, &InvalidCodeError{Code: s, Reason: "empty code"}
	}

	var jitter bool
	if strings.HasSuffix(code, "~") {
		jitter = true
		code = strings.TrimSuffix(code, "~")
	}
	if code == "" {
		return Code{}, &InvalidCodeError{Code: s, Reason: "missing magnitude and unit"}
	}

	unit := Unit(code[len(code)-1])
	switch unit {
	case UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth:
	default:
		return Code{}, &InvalidCodeError{Code: s, Reason: fmt.Sprintf("unknown unit %q", string(rune(unit)))}
	}

	magnitude, err := strconv.Atoi(code[:len(code)-1])
	if err != nil {
		return Code{}, &InvalidCodeError{Code: s, Reason: "magnitude is not an integer"}
	}

	return Code{Magnitude: magnitude, Unit: unit, Jitter: jitter}, nil
}

func (c Code) String() string {
	s := fmt.Sprintf("%d%c", c.Magnitude, c.Unit)
	if c.Jitter {
		s += "~"
	}
	return s
}

// Apply evaluates the code against a reference time and returns the next
// trigger timestamp. Jittered codes are intentionally non-deterministic;
// the random offset is drawn fresh on every call.
func (c Code) Apply(from time.Time) time.Time {
	return c.apply(from, rand.Intn)
}

// apply takes the random source as a parameter so tests can pin it down.
func (c Code) apply(from time.Time, intn func(int) int) time.Time {
	var next time.Time
	switch c.Unit {
	case UnitMonth:
		next = addMonths(from, c.Magnitude)
	default:
		next = from.Add(time.Duration(c.Magnitude) * unitDurations[c.Unit])
	}
	if c.Jitter {
		next = next.Add(time.Duration(intn(59)+1) * time.Minute)
	}
	return next
}

// ComputeNextTrigger parses and evaluates a code in one step.
func ComputeNextTrigger(code string, from time.Time) (time.Time, error) {
	c, err := ParseCode(code)
	if err != nil {
		return time.Time{}, err
	}
	return c.Apply(from), nil
}

// addMonths advances the calendar month while preserving time-of-day.
// When the target month is shorter, the day-of-month is clamped to its last
// day (2024-01-31 plus one month is 2024-02-29), never rolled over.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	months := int(month) - 1 + n
	year += months / 12
	months %= 12
	if months < 0 {
		months += 12
		year--
	}
	target := time.Month(months + 1)
	if last := daysIn(year, target); day > last {
		day = last
	}
	return time.Date(year, target, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
