package utils

import (
	"time"
)

const scanTimestampLayout = "2006-01-02 15:04:05"

// FormatScanTimestamp returns the provided time formatted for the report header,
// using the local time zone with second precision.
func FormatScanTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(scanTimestampLayout)
}
