package exporter

import (
	"fmt"
	"time"
)

// formatDuration renders a duration as H:MM:SS with a leading minus for
// negative values. Hours do not wrap at 24.
func formatDuration(d *time.Duration) string {
	if d == nil {
		return ""
	}

	v := *d
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	h := v / time.Hour
	m := (v % time.Hour) / time.Minute
	s := (v % time.Minute) / time.Second
	return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
}

// formatDate renders the date part of a planning bound, empty when absent.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// formatClock renders the time-of-day part of a planning bound.
func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

// formatDateTime renders a full timestamp, as used for corrected ends on
// the anomaly sheet.
func formatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
