// Package format renders amounts and dates the way the dashboard shows
// them: Turkish locale, two fixed decimals, day.month.year. All functions
// are pure.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Turkish)

// Lira formats an amount with Turkish grouping and decimal conventions
// and the TL suffix: 1234.5 -> "1.234,50 TL". Absent backend amounts
// decode to zero and therefore render as "0,00 TL".
func Lira(amount float64) string {
	return printer.Sprintf("%v TL", number.Decimal(amount, number.Scale(2)))
}

// Accepted layouts for backend date strings. The business date comes as
// plain YYYY-MM-DD, timestamps as RFC 3339 with or without fraction.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parse(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date formats a backend date string as DD.MM.YYYY. Empty or unparseable
// input renders as the empty string, never as the zero time.
func Date(s string) string {
	if s == "" {
		return ""
	}
	t, ok := parse(s)
	if !ok {
		return ""
	}
	return t.Format("02.01.2006")
}

// DateTime formats a backend timestamp as DD.MM.YYYY HH:MM.
func DateTime(s string) string {
	if s == "" {
		return ""
	}
	t, ok := parse(s)
	if !ok {
		return ""
	}
	return t.Format("02.01.2006 15:04")
}

// ExportFilename builds the spreadsheet download name for the given
// moment, e.g. "fisler_2024-03-05.xlsx".
func ExportFilename(now time.Time) string {
	return "fisler_" + now.Format("2006-01-02") + ".xlsx"
}
