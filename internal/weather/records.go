package weather

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered UUIDv7 identifiers.
type UUIDGenerator struct{}

// NewID returns a fresh identifier. It falls back to a random UUID if the
// v7 generator fails.
func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// BuildRecords turns one provider pull into records, one per entry, all
// stamped with the same request time and location fields.
func BuildRecords(loc Location, requestTime string, entries []RawForecastEntry, ids IDGenerator) []ForecastRecord {
	records := make([]ForecastRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, ForecastRecord{
			ID:           ids.NewID(),
			LocationID:   loc.ID,
			LocationName: loc.Name,
			RequestTime:  requestTime,
			DateTime:     e.DateTime,
			WeatherIcon:  e.WeatherIcon,
			IsDaylight:   e.IsDaylight,
			WindSpeed:    e.WindSpeed,
			WindGust:     e.WindGust,
		})
	}
	return records
}
