package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDescriptionPlain(t *testing.T) {
	for _, in := range []string{
		"water the plants",
		"call [mom]",
		"birthday shopping",
	} {
		d, err := ParseDescription(in)
		if err != nil {
			t.Errorf("ParseDescription(%q) error = %v", in, err)
			continue
		}
		if _, ok := d.(PlainDescription); !ok {
			t.Errorf("ParseDescription(%q) = %T, want PlainDescription", in, d)
		}
	}
}

func TestParseDescriptionBirthday(t *testing.T) {
	d, err := ParseDescription("bday[Alice, 1990-05-03]")
	if err != nil {
		t.Fatalf("ParseDescription error = %v", err)
	}
	bd, ok := d.(BirthdayDescription)
	if !ok {
		t.Fatalf("ParseDescription = %T, want BirthdayDescription", d)
	}
	if bd.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", bd.Name)
	}
	if bd.RawDate != "1990-05-03" {
		t.Errorf("RawDate = %q, want 1990-05-03", bd.RawDate)
	}
	if bd.Date.Year() != 1990 || bd.Date.Month() != time.May || bd.Date.Day() != 3 {
		t.Errorf("Date = %s, want 1990-05-03", bd.Date)
	}
}

func TestParseDescriptionMalformed(t *testing.T) {
	for _, in := range []string{
		"bday[Alice]",
		"bday[, 1990-05-03]",
		"bday[Alice, not a date]",
		"bday[Alice, 1990-05-03",
	} {
		_, err := ParseDescription(in)
		if err == nil {
			t.Errorf("ParseDescription(%q) expected error, got none", in)
			continue
		}
		var malformed *MalformedTagError
		if !errors.As(err, &malformed) {
			t.Errorf("ParseDescription(%q) error = %T, want *MalformedTagError", in, err)
		}
	}
}

func TestAutofillBirthday(t *testing.T) {
	trigger := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r := &Reminder{Descr: "bday[Alice, 1990-05-03]", Priority: 10, TriggerOn: &trigger}

	if err := Autofill(r); err != nil {
		t.Fatalf("Autofill error = %v", err)
	}
	want := "bday[Alice, 1990-05-03] : 34 years old on 03 May 2024 (Friday)"
	if r.Descr != want {
		t.Errorf("Descr = %q, want %q", r.Descr, want)
	}
}

func TestAutofillIdempotent(t *testing.T) {
	trigger := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r := &Reminder{Descr: "bday[Alice, 1990-05-03]", Priority: 10, TriggerOn: &trigger}

	if err := Autofill(r); err != nil {
		t.Fatal(err)
	}
	first := r.Descr
	if err := Autofill(r); err != nil {
		t.Fatal(err)
	}
	if r.Descr != first {
		t.Errorf("second Autofill changed descr: %q -> %q", first, r.Descr)
	}
}

func TestAutofillRollsToNextYear(t *testing.T) {
	// Trigger lands after this year's occurrence, so the annotation points at
	// next year's birthday.
	trigger := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	r := &Reminder{Descr: "bday[Alice, 1990-05-03]", Priority: 10, TriggerOn: &trigger}

	if err := Autofill(r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.Descr, "35 years old on 03 May 2025") {
		t.Errorf("Descr = %q, want next-year occurrence", r.Descr)
	}
}

func TestAutofillOnTheDay(t *testing.T) {
	// A trigger on the birthday itself counts as this year's occurrence.
	trigger := time.Date(2024, 5, 3, 23, 0, 0, 0, time.UTC)
	r := &Reminder{Descr: "bday[Alice, 1990-05-03]", Priority: 10, TriggerOn: &trigger}

	if err := Autofill(r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.Descr, "34 years old on 03 May 2024") {
		t.Errorf("Descr = %q, want same-day occurrence", r.Descr)
	}
}

func TestAutofillPlainUntouched(t *testing.T) {
	trigger := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r := &Reminder{Descr: "water the plants", Priority: 10, TriggerOn: &trigger}

	if err := Autofill(r); err != nil {
		t.Fatal(err)
	}
	if r.Descr != "water the plants" {
		t.Errorf("plain descr was rewritten: %q", r.Descr)
	}
}

func TestAutofillDormantUntouched(t *testing.T) {
	r := &Reminder{Descr: "bday[Alice, 1990-05-03]", Priority: -1}

	if err := Autofill(r); err != nil {
		t.Fatal(err)
	}
	if r.Descr != "bday[Alice, 1990-05-03]" {
		t.Errorf("dormant descr was rewritten: %q", r.Descr)
	}
}

func TestAutofillMalformedTagFails(t *testing.T) {
	trigger := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r := &Reminder{Descr: "bday[broken", Priority: 10, TriggerOn: &trigger}

	if err := Autofill(r); err == nil {
		t.Error("expected error for malformed tag, got none")
	}
}
