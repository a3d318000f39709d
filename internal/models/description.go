package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nleeper/goment"
)

// BirthdayTagPrefix marks a description carrying the structured birthday
// format: "bday[<name>, <birthdate>]". Everything after the closing bracket
// is a generated annotation and gets rewritten on each autofill.
const BirthdayTagPrefix = "bday["

var bdayTagRe = regexp.MustCompile(`^bday\[([^,\]]+),([^\]]+)\]`)

// MalformedTagError reports a description that starts like a birthday tag but
// cannot be parsed as one.
type MalformedTagError struct {
	Descr  string
	Reason string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("malformed tag in %q: %s", e.Descr, e.Reason)
}

// Description is the parsed form of a reminder's descr column.
type Description interface {
	isDescription()
}

// PlainDescription is free text with no embedded structure.
type PlainDescription string

func (PlainDescription) isDescription() {}

// BirthdayDescription is the structured variant: a person and their
// birthdate, extracted from the bracketed tag. RawDate keeps the birthdate
// exactly as the user wrote it so rewrites preserve the original spelling.
type BirthdayDescription struct {
	Name    string
	RawDate string
	Date    time.Time
}

func (BirthdayDescription) isDescription() {}

// ParseDescription classifies a descr value. Only descriptions beginning with
// the birthday tag prefix are treated as structured; anything else is plain
// text, brackets and all.
func ParseDescription(descr string) (Description, error) {
	if !strings.HasPrefix(descr, BirthdayTagPrefix) {
		return PlainDescription(descr), nil
	}
	m := bdayTagRe.FindStringSubmatch(descr)
	if m == nil {
		return nil, &MalformedTagError{Descr: descr, Reason: "expected bday[<name>, <birthdate>]"}
	}
	name := strings.TrimSpace(m[1])
	rawDate := strings.TrimSpace(m[2])
	if name == "" {
		return nil, &MalformedTagError{Descr: descr, Reason: "empty name"}
	}
	date, err := parseBirthdate(rawDate)
	if err != nil {
		return nil, &MalformedTagError{Descr: descr, Reason: fmt.Sprintf("cannot parse birthdate %q", rawDate)}
	}
	return BirthdayDescription{Name: name, RawDate: rawDate, Date: date}, nil
}

func parseBirthdate(raw string) (time.Time, error) {
	if g, err := goment.New(raw, "YYYY-MM-DD"); err == nil {
		return g.ToTime(), nil
	}
	g, err := goment.New(raw)
	if err != nil {
		return time.Time{}, err
	}
	return g.ToTime(), nil
}

// Autofill regenerates the annotation on a birthday-tagged description: the
// next occurrence of the birthday on or after the reminder's trigger date,
// and the age reached then. Plain descriptions and dormant reminders pass
// through untouched. Safe to run repeatedly; only the bracketed portion is
// read, the trailing clause is always rebuilt from scratch.
func Autofill(r *Reminder) error {
	desc, err := ParseDescription(r.Descr)
	if err != nil {
		return err
	}
	bd, ok := desc.(BirthdayDescription)
	if !ok || r.TriggerOn == nil {
		return nil
	}

	ref := *r.TriggerOn
	refDate := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	occurrence := time.Date(ref.Year(), bd.Date.Month(), bd.Date.Day(), 0, 0, 0, 0, ref.Location())
	if occurrence.Before(refDate) {
		occurrence = occurrence.AddDate(1, 0, 0)
	}
	age := occurrence.Year() - bd.Date.Year()

	g, err := goment.New(occurrence)
	if err != nil {
		return err
	}
	r.Descr = fmt.Sprintf("bday[%s, %s] : %d years old on %s",
		bd.Name, bd.RawDate, age, g.Format("DD MMMM YYYY (dddd)"))
	return nil
}
