package store

import "time"

// timeLayout is the stored timestamp format. Values in this layout sort
// lexicographically, so range comparisons can run in SQL.
const timeLayout = "2006-01-02T15:04:05.000Z"

// now returns the current UTC time formatted as a HubSpot-compatible timestamp.
func now() string {
	return formatTime(time.Now())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
