package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-02-29", // leap day
		"2023-12-31",
	}

	for _, s := range testCases {
		d, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", s, err)
			continue
		}
		if d.String() != s {
			t.Errorf("ParseDate(%q).String() = %q, want %q", s, d.String(), s)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2023-02-30", // normalizes under time.Parse, must still fail
		"2023-02-29", // not a leap year
		"2024-04-31",
	}

	for _, s := range testCases {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", s)
		}
	}
}

func TestDate_AddDays(t *testing.T) {
	d, _ := ParseDate("2024-02-28")

	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Errorf("AddDays(1) = %q, want 2024-02-29", got)
	}
	if got := d.AddDays(-6).String(); got != "2024-02-22" {
		t.Errorf("AddDays(-6) = %q, want 2024-02-22", got)
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	d, _ := ParseDate("2024-03-01")

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v, want nil", err)
	}
	if string(b) != `"2024-03-01"` {
		t.Errorf("Marshal() = %s, want \"2024-03-01\"", b)
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{`"2024-03-01"`, "2024-03-01"},
		// full timestamps keep only the day
		{`"2024-03-01T10:30:00Z"`, "2024-03-01"},
	}

	for _, tc := range testCases {
		var d Date
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Errorf("Unmarshal(%s) error = %v, want nil", tc.in, err)
			continue
		}
		if d.String() != tc.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tc.in, d.String(), tc.want)
		}
	}
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2023-02-30"`), &d); err == nil {
		t.Error("Unmarshal(\"2023-02-30\") error = nil, want error")
	}
}

func TestDate_Value(t *testing.T) {
	d, _ := ParseDate("2024-03-15")

	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value() error = %v, want nil", err)
	}
	if v != "2024-03-15" {
		t.Errorf("Value() = %v, want 2024-03-15", v)
	}
}

func TestDate_Scan(t *testing.T) {
	testCases := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string", "2024-03-15", "2024-03-15"},
		{"bytes", []byte("2024-03-15"), "2024-03-15"},
		{"datetime string", "2024-03-15 00:00:00", "2024-03-15"},
		{"time", time.Date(2024, 3, 15, 14, 5, 0, 0, time.UTC), "2024-03-15"},
	}

	for _, tc := range testCases {
		var d Date
		if err := d.Scan(tc.in); err != nil {
			t.Errorf("%s: Scan(%v) error = %v, want nil", tc.name, tc.in, err)
			continue
		}
		if d.String() != tc.want {
			t.Errorf("%s: Scan(%v) = %q, want %q", tc.name, tc.in, d.String(), tc.want)
		}
	}
}

func TestDate_ScanNil(t *testing.T) {
	d, _ := ParseDate("2024-03-15")
	if err := d.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v, want nil", err)
	}
	if !d.IsZero() {
		t.Errorf("Scan(nil) = %q, want zero date", d.String())
	}
}
