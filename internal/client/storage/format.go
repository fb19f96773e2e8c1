package storage

import "time"

// FormatDate renders a timestamp for display. A nil or zero time renders as
// the literal "N/A"; otherwise date plus zero-padded 24-hour time.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format("01/02/2006 15:04")
}
