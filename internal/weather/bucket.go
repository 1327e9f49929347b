package weather

import (
	"sort"
	"time"
)

// DisplayHours is the number of forecast hours shown per report.
const DisplayHours = 8

// OrderRecords sorts a bucket's records ascending by forecast time. The input
// slice is not modified. It returns ErrNoForecast for an empty bucket.
func OrderRecords(records []ForecastRecord) ([]ForecastRecord, error) {
	if len(records) == 0 {
		return nil, ErrNoForecast
	}

	type keyed struct {
		rec    ForecastRecord
		at     time.Time
		parsed bool
	}
	items := make([]keyed, len(records))
	for i, r := range records {
		at, err := time.Parse(time.RFC3339, r.DateTime)
		items[i] = keyed{rec: r, at: at, parsed: err == nil}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.parsed && b.parsed {
			return a.at.Before(b.at)
		}
		return a.rec.DateTime < b.rec.DateTime
	})

	ordered := make([]ForecastRecord, len(items))
	for i, it := range items {
		ordered[i] = it.rec
	}
	return ordered, nil
}

// WindowRecords classifies the first DisplayHours records of an ordered bucket.
// FetchTime comes from the first record of the full sequence.
func WindowRecords(ordered []ForecastRecord, classifier *Classifier) DisplayBucket {
	if len(ordered) == 0 {
		return DisplayBucket{}
	}

	n := len(ordered)
	if n > DisplayHours {
		n = DisplayHours
	}

	hours := make([]ClassifiedHour, 0, n)
	for _, r := range ordered[:n] {
		hours = append(hours, classifier.ClassifyRecord(r))
	}

	return DisplayBucket{
		FetchTime: ordered[0].RequestTime,
		Hours:     hours,
	}
}
