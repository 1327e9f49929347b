package weather

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourJSON(i int) string {
	return fmt.Sprintf(`{"DateTime":"2024-01-01T%02d:00:00-05:00","WeatherIcon":%d,"IsDaylight":true,`+
		`"Wind":{"Speed":{"Value":%d,"Unit":"km/h"}},"WindGust":{"Speed":{"Value":%d,"Unit":"km/h"}}}`, i, i+1, i, i*2)
}

func TestNormalizeArrayDropsNullSlots(t *testing.T) {
	slots := make([]string, 12)
	for i := range slots {
		slots[i] = hourJSON(i)
	}
	slots[3] = "null"
	slots[7] = "null"

	var resp ProviderResponse
	require.NoError(t, json.Unmarshal([]byte("["+strings.Join(slots, ",")+"]"), &resp))
	require.Len(t, resp, 12)

	entries := NormalizeResponse(resp)
	require.Len(t, entries, 10)

	assert.Equal(t, "2024-01-01T00:00:00-05:00", entries[0].DateTime)
	assert.Equal(t, "2024-01-01T02:00:00-05:00", entries[2].DateTime)
	assert.Equal(t, "2024-01-01T04:00:00-05:00", entries[3].DateTime)
	assert.Equal(t, RawForecastEntry{
		DateTime:    "2024-01-01T11:00:00-05:00",
		WeatherIcon: 12,
		IsDaylight:  true,
		WindSpeed:   11,
		WindGust:    22,
	}, entries[9])
}

func TestNormalizeObjectKeepsKeyOrder(t *testing.T) {
	body := `{"b":` + hourJSON(5) + `,"a":null,"c":` + hourJSON(1) + `}`

	var resp ProviderResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, "b", resp[0].Key)
	assert.Nil(t, resp[1].Hour)

	entries := NormalizeResponse(resp)
	require.Len(t, entries, 2)
	assert.Equal(t, 6, entries[0].WeatherIcon)
	assert.Equal(t, 2, entries[1].WeatherIcon)
}

func TestNormalizeEmptyShapes(t *testing.T) {
	for _, body := range []string{`[]`, `{}`, `null`, `[null,null]`} {
		var resp ProviderResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp), body)
		entries := NormalizeResponse(resp)
		assert.NotNil(t, entries, body)
		assert.Empty(t, entries, body)
	}
}

func TestNormalizeRejectsScalars(t *testing.T) {
	var resp ProviderResponse
	assert.Error(t, json.Unmarshal([]byte(`"oops"`), &resp))
	assert.Error(t, json.Unmarshal([]byte(`[{"WeatherIcon":"x"}]`), &resp))
}
