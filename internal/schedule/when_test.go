package schedule

import (
	"testing"
	"time"
)

func TestParseWhenExplicit(t *testing.T) {
	got, err := ParseWhen("2024-05-03 18:30")
	if err != nil {
		t.Fatalf("ParseWhen error = %v", err)
	}
	y, m, d := got.Date()
	if y != 2024 || m != time.May || d != 3 {
		t.Errorf("date = %04d-%02d-%02d, want 2024-05-03", y, m, d)
	}
	if got.Hour() != 18 || got.Minute() != 30 {
		t.Errorf("time = %02d:%02d, want 18:30", got.Hour(), got.Minute())
	}
}

func TestParseWhenDateOnly(t *testing.T) {
	got, err := ParseWhen("2024-05-03")
	if err != nil {
		t.Fatalf("ParseWhen error = %v", err)
	}
	y, m, d := got.Date()
	if y != 2024 || m != time.May || d != 3 {
		t.Errorf("date = %04d-%02d-%02d, want 2024-05-03", y, m, d)
	}
}

func TestParseWhenTomorrow(t *testing.T) {
	got, err := ParseWhen("tomorrow 18:00")
	if err != nil {
		t.Fatalf("ParseWhen error = %v", err)
	}
	wantDay := time.Now().AddDate(0, 0, 1)
	y, m, d := got.Date()
	wy, wm, wd := wantDay.Date()
	if y != wy || m != wm || d != wd {
		t.Errorf("date = %04d-%02d-%02d, want %04d-%02d-%02d", y, m, d, wy, wm, wd)
	}
	if got.Hour() != 18 || got.Minute() != 0 {
		t.Errorf("time = %02d:%02d, want 18:00", got.Hour(), got.Minute())
	}
}

func TestParseWhenKeywordDefaultsMorning(t *testing.T) {
	got, err := ParseWhen("tomorrow")
	if err != nil {
		t.Fatalf("ParseWhen error = %v", err)
	}
	if got.Hour() != defaultHour || got.Minute() != 0 {
		t.Errorf("time = %02d:%02d, want %02d:00", got.Hour(), got.Minute(), defaultHour)
	}
}

func TestParseWhenWeekday(t *testing.T) {
	got, err := ParseWhen("friday 9am")
	if err != nil {
		t.Fatalf("ParseWhen error = %v", err)
	}
	if got.Weekday() != time.Friday {
		t.Errorf("weekday = %s, want Friday", got.Weekday())
	}
	if !got.After(time.Now()) {
		t.Errorf("weekday target %s is not in the future", got)
	}
	if got.Sub(time.Now()) > 8*24*time.Hour {
		t.Errorf("weekday target %s is more than a week away", got)
	}
	if got.Hour() != 9 {
		t.Errorf("hour = %d, want 9", got.Hour())
	}
}

func TestParseWhenPM(t *testing.T) {
	got, err := ParseWhen("today 4:20pm")
	if err != nil {
		t.Fatalf("ParseWhen error = %v", err)
	}
	if got.Hour() != 16 || got.Minute() != 20 {
		t.Errorf("time = %02d:%02d, want 16:20", got.Hour(), got.Minute())
	}
}

func TestParseWhenInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date at all"} {
		if _, err := ParseWhen(in); err == nil {
			t.Errorf("ParseWhen(%q) expected error, got none", in)
		}
	}
}
