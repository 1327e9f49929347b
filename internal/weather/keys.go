package weather

import "time"

// ISOLayout matches the millisecond UTC timestamps used as request times.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// FormatRequestTime renders t as a UTC request timestamp.
func FormatRequestTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// RequestHour truncates an ISO timestamp to its date-hour prefix ("2006-01-02T15").
func RequestHour(ts string) string {
	if len(ts) < 13 {
		return ts
	}
	return ts[:13]
}

// HourOfDay returns the two-digit hour of an ISO timestamp, or "" when the
// timestamp is too short to carry one.
func HourOfDay(ts string) string {
	if len(ts) < 13 {
		return ""
	}
	return ts[11:13]
}

// BucketKey builds the composite key records are grouped under.
func BucketKey(locationID, requestHour string) string {
	return locationID + "-" + requestHour
}
