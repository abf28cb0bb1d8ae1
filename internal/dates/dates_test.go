package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	d, err := Parse("2026-08-25")
	if err != nil {
		t.Fatalf("failed to parse date: %v", err)
	}
	if d.String() != "2026-08-25" {
		t.Errorf("expected 2026-08-25, got %q", d.String())
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("08/25/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestFromTime_DropsClock(t *testing.T) {
	d := FromTime(time.Date(2026, time.March, 3, 23, 59, 58, 0, time.Local))
	if d.String() != "2026-03-03" {
		t.Errorf("expected 2026-03-03, got %q", d.String())
	}
}

func TestOrdering(t *testing.T) {
	a := New(2026, time.January, 1)
	b := New(2026, time.January, 2)

	if !a.Before(b) {
		t.Error("expected a before b")
	}
	if !b.After(a) {
		t.Error("expected b after a")
	}
	if a.Equal(b) {
		t.Error("expected a != b")
	}
	if !a.Equal(a.AddDays(0)) {
		t.Error("expected a == a+0d")
	}
	if !a.AddDays(1).Equal(b) {
		t.Error("expected a+1d == b")
	}
}

func TestDaysUntil(t *testing.T) {
	a := New(2026, time.January, 1)
	b := New(2026, time.February, 1)

	if got := a.DaysUntil(b); got != 31 {
		t.Errorf("expected 31 days, got %d", got)
	}
	if got := b.DaysUntil(a); got != -31 {
		t.Errorf("expected -31 days, got %d", got)
	}
	if got := a.DaysUntil(a); got != 0 {
		t.Errorf("expected 0 days, got %d", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2026, time.August, 25)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `"2026-08-25"` {
		t.Errorf("expected quoted date string, got %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip changed date: %s != %s", back, d)
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Error("expected error for non-string date")
	}
	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Error("expected error for malformed date")
	}
}
