package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate      = "2006-01-02"
	layoutClock     = "15:04"
	layoutLongDate  = "2 Jan 2006"
	layoutShortDate = "02/01/2006"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatClock renders the HH:MM part used on journey cards.
func FormatClock(t time.Time) string {
	return t.In(time.Local).Format(layoutClock)
}

// FormatLongDate renders "2 Jan 2006" as on the ticket header.
func FormatLongDate(t time.Time) string {
	return t.In(time.Local).Format(layoutLongDate)
}

// FormatShortDate renders dd/mm/yyyy for list rows.
func FormatShortDate(t time.Time) string {
	return t.In(time.Local).Format(layoutShortDate)
}

// FormatDuration renders a journey length as "7h 30m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%dh %dm", h, m)
}

// TruncateToMinute drops seconds and below. Bookings created by one checkout
// land within the same minute, which is what journey grouping keys on.
func TruncateToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
