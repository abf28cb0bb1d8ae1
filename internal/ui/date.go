package ui

import (
	"fmt"

	"github.com/askern/tracker/internal/dates"
)

// FormatDate renders an optional date, "-" when absent.
func FormatDate(d *dates.Date) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return d.String()
}

// FormatRelativeDays renders the day distance between a date and today,
// like "today", "3d ago" or "in 5d".
func FormatRelativeDays(d dates.Date, today dates.Date) string {
	days := d.DaysUntil(today)
	switch {
	case days == 0:
		return "today"
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	default:
		return fmt.Sprintf("in %dd", -days)
	}
}

// FormatTargetDate renders an optional target date, marking overdue targets
// on incomplete work.
func FormatTargetDate(d *dates.Date, today dates.Date, complete bool) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	if !complete && d.Before(today) {
		return d.String() + " (overdue)"
	}
	return d.String()
}
