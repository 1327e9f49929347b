package weather

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordAt(hour int, icon int) ForecastRecord {
	return ForecastRecord{
		ID:          fmt.Sprintf("r%02d", 20-hour),
		LocationID:  "341249",
		RequestTime: "2024-01-01T14:00:00.000Z",
		DateTime:    fmt.Sprintf("2024-01-01T%02d:00:00-05:00", hour),
		WeatherIcon: icon,
	}
}

func TestOrderRecords(t *testing.T) {
	in := []ForecastRecord{recordAt(12, 1), recordAt(10, 2), recordAt(11, 3)}

	ordered, err := OrderRecords(in)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T10:00:00-05:00", ordered[0].DateTime)
	assert.Equal(t, "2024-01-01T11:00:00-05:00", ordered[1].DateTime)
	assert.Equal(t, "2024-01-01T12:00:00-05:00", ordered[2].DateTime)

	// input untouched
	assert.Equal(t, "2024-01-01T12:00:00-05:00", in[0].DateTime)
}

func TestOrderRecordsAcrossOffsets(t *testing.T) {
	a := ForecastRecord{ID: "a", DateTime: "2024-01-01T10:00:00-05:00"} // 15:00Z
	b := ForecastRecord{ID: "b", DateTime: "2024-01-01T14:00:00Z"}

	ordered, err := OrderRecords([]ForecastRecord{a, b})
	require.NoError(t, err)
	assert.Equal(t, "b", ordered[0].ID)
}

func TestOrderRecordsEmpty(t *testing.T) {
	_, err := OrderRecords(nil)
	assert.ErrorIs(t, err, ErrNoForecast)
}

func TestWindowRecords(t *testing.T) {
	var records []ForecastRecord
	for h := 0; h < 12; h++ {
		records = append(records, recordAt(h, 1))
	}
	records[0].RequestTime = "2024-01-01T14:00:01.000Z"

	bucket := WindowRecords(records, NewClassifier(DefaultThresholds()))
	require.Len(t, bucket.Hours, DisplayHours)
	assert.Equal(t, "2024-01-01T14:00:01.000Z", bucket.FetchTime)
	assert.Equal(t, "00", bucket.Hours[0].Hour)
	assert.Equal(t, "07", bucket.Hours[7].Hour)
}

func TestWindowRecordsShortBucket(t *testing.T) {
	bucket := WindowRecords([]ForecastRecord{recordAt(9, 32), recordAt(10, 12)}, NewClassifier(DefaultThresholds()))
	assert.Equal(t, []ClassifiedHour{
		{Hour: "09", Condition: ConditionWindy},
		{Hour: "10", Condition: ConditionRain},
	}, bucket.Hours)

	assert.Equal(t, DisplayBucket{}, WindowRecords(nil, NewClassifier(DefaultThresholds())))
}
