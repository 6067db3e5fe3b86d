package internal

import "time"

// Persisted timestamps are human-readable and localized to western
// Indonesian time, matching what the mobile client displays verbatim.
// A fixed zone is used so the output does not depend on host tzdata.
var jakarta = time.FixedZone("WIB", 7*60*60)

const timestampLayout = "January 02, 2006 at 3:04:05 PM UTC-07"

// FormatTimestamp renders t in the fixed record-timestamp format, e.g.
// "December 13, 2024 at 9:15:00 AM UTC+07".
func FormatTimestamp(t time.Time) string {
	return t.In(jakarta).Format(timestampLayout)
}
