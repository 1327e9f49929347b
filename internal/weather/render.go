package weather

import (
	"strings"
	"time"
)

const (
	hoursPerLine   = 4
	zeroWidthSpace = "\u200b"
	fetchTimeShape = "1/2/2006, 3:04:05 PM"
)

// RenderForecast formats a bucket as the chat message for loc.
func RenderForecast(loc Location, bucket DisplayBucket) string {
	first, rest := bucket.Hours, []ClassifiedHour(nil)
	if len(first) > hoursPerLine {
		first, rest = bucket.Hours[:hoursPerLine], bucket.Hours[hoursPerLine:]
	}

	var b strings.Builder
	b.WriteString("Weather forecast for ")
	b.WriteString(formatLocation(loc))
	b.WriteString("\n")
	b.WriteString(formatFetchTime(bucket.FetchTime))
	b.WriteString("\n")
	b.WriteString(formatHours(first))
	b.WriteString("\n")
	b.WriteString(formatHours(rest))
	b.WriteString("\n")
	return b.String()
}

func formatLocation(loc Location) string {
	if loc.Link == "" {
		return loc.Name
	}
	return "[" + loc.Name + "](<" + loc.Link + ">)"
}

// formatFetchTime renders the request time in US locale form with a fixed UTC
// suffix. Unparseable values are passed through unchanged.
func formatFetchTime(requestTime string) string {
	t, err := time.Parse(time.RFC3339, requestTime)
	if err != nil {
		return requestTime + " UTC"
	}
	return t.UTC().Format(fetchTimeShape) + " UTC"
}

func formatHours(hours []ClassifiedHour) string {
	var b strings.Builder
	for _, h := range hours {
		b.WriteString(h.Hour)
		b.WriteString(":")
		b.WriteString(zeroWidthSpace)
		b.WriteString(h.Condition.Glyph())
		b.WriteString("  ")
	}
	return strings.TrimRight(b.String(), " ")
}
