package format

import (
	"testing"
	"time"
)

func TestLira(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234.5, "1.234,50 TL"},
		{0, "0,00 TL"},
		{150, "150,00 TL"},
		{13.64, "13,64 TL"},
		{1234567.89, "1.234.567,89 TL"},
	}
	for _, tc := range cases {
		if got := Lira(tc.in); got != tc.want {
			t.Fatalf("Lira(%v)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-05", "05.03.2024"},
		{"2024-12-31", "31.12.2024"},
		{"2024-03-05T10:30:00Z", "05.03.2024"},
		{"", ""},
		{"garbage", ""},
	}
	for _, tc := range cases {
		if got := Date(tc.in); got != tc.want {
			t.Fatalf("Date(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDateTime(t *testing.T) {
	if got := DateTime("2024-03-05T10:30:00Z"); got != "05.03.2024 10:30" {
		t.Fatalf("DateTime=%q", got)
	}
	if got := DateTime(""); got != "" {
		t.Fatalf("DateTime empty=%q", got)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)
	if got := ExportFilename(now); got != "fisler_2024-03-05.xlsx" {
		t.Fatalf("ExportFilename=%q", got)
	}
}
