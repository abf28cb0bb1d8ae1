package version

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	major, minor, patch, err := Parse("1.12.3")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if major != 1 || minor != 12 || patch != 3 {
		t.Errorf("got %d.%d.%d", major, minor, patch)
	}

	for _, bad := range []string{"", "1", "1.2", "1.2.3.4", "a.b.c", "1.2.-3", "01.2.3", "v1.2.3", "1.2.3-rc1"} {
		if _, _, _, err := Parse(bad); !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("Parse(%q): expected ErrInvalidVersion, got %v", bad, err)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"0.0.0", "1.2.3", "10.20.30"}
	for _, v := range valid {
		if !IsValid(v) {
			t.Errorf("IsValid(%q) = false", v)
		}
	}
	invalid := []string{"", "1.2", "1.2.3.4", "v1.2.3", "01.0.0"}
	for _, v := range invalid {
		if IsValid(v) {
			t.Errorf("IsValid(%q) = true", v)
		}
	}
}

func TestCompare(t *testing.T) {
	if Compare("1.0.0", "1.0.0") != 0 {
		t.Error("equal versions should compare 0")
	}
	if Compare("0.9.9", "0.10.0") >= 0 {
		t.Error("0.9.9 should order below 0.10.0")
	}
	if Compare("2.0.0", "1.99.99") <= 0 {
		t.Error("2.0.0 should order above 1.99.99")
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		version string
		kind    Kind
		want    string
	}{
		{"0.1.0", KindPatch, "0.1.1"},
		{"0.1.9", KindMinor, "0.2.0"},
		{"1.4.2", KindMajor, "2.0.0"},
	}
	for _, tt := range tests {
		got, err := Next(tt.version, tt.kind)
		if err != nil {
			t.Fatalf("Next(%q, %s): %v", tt.version, tt.kind, err)
		}
		if got != tt.want {
			t.Errorf("Next(%q, %s) = %q, want %q", tt.version, tt.kind, got, tt.want)
		}
	}

	if _, err := Next("1.0.0", "biggest"); !errors.Is(err, ErrInvalidBump) {
		t.Errorf("expected ErrInvalidBump, got %v", err)
	}
	if _, err := Next("oops", KindPatch); !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, value := range []string{"patch", "minor", "major"} {
		kind, err := ParseKind(value)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", value, err)
		}
		if string(kind) != value {
			t.Errorf("ParseKind(%q) = %q", value, kind)
		}
	}
	if _, err := ParseKind("MAJOR"); !errors.Is(err, ErrInvalidBump) {
		t.Errorf("expected ErrInvalidBump, got %v", err)
	}
}

func TestKindForChangeType(t *testing.T) {
	tests := []struct {
		changeType string
		want       Kind
	}{
		{"feature", KindMinor},
		{"breaking", KindMajor},
		{"major", KindMajor},
		{"bug", KindPatch},
		{"docs", KindPatch},
		{"anything else", KindPatch},
	}
	for _, tt := range tests {
		if got := KindForChangeType(tt.changeType); got != tt.want {
			t.Errorf("KindForChangeType(%q) = %s, want %s", tt.changeType, got, tt.want)
		}
	}
}
