package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ProviderValue is a measured quantity as the provider reports it.
type ProviderValue struct {
	Value float64 `json:"Value"`
	Unit  string  `json:"Unit,omitempty"`
}

// ProviderWind wraps the speed block of a wind or gust measurement.
type ProviderWind struct {
	Speed ProviderValue `json:"Speed"`
}

// ProviderHour is one element of the AccuWeather hourly forecast payload
// (only the fields we keep).
type ProviderHour struct {
	DateTime    string       `json:"DateTime"`
	WeatherIcon int          `json:"WeatherIcon"`
	IsDaylight  bool         `json:"IsDaylight"`
	Wind        ProviderWind `json:"Wind"`
	WindGust    ProviderWind `json:"WindGust"`
}

// ProviderSlot is a keyed position in the provider response. Hour is nil when
// the provider returned null for that slot.
type ProviderSlot struct {
	Key  string
	Hour *ProviderHour
}

// ProviderResponse is the provider payload as an ordered list of slots. It
// decodes from either a JSON array or a JSON object; object keys keep the
// order in which they were received.
type ProviderResponse []ProviderSlot

// UnmarshalJSON implements json.Unmarshaler.
func (r *ProviderResponse) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decode provider array: %w", err)
		}
		slots := make(ProviderResponse, 0, len(items))
		for i, raw := range items {
			hour, err := decodeSlot(raw)
			if err != nil {
				return fmt.Errorf("decode provider slot %d: %w", i, err)
			}
			slots = append(slots, ProviderSlot{Key: strconv.Itoa(i), Hour: hour})
		}
		*r = slots
		return nil
	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("decode provider object: %w", err)
		}
		var slots ProviderResponse
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("decode provider key: %w", err)
			}
			key, _ := tok.(string)
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("decode provider slot %q: %w", key, err)
			}
			hour, err := decodeSlot(raw)
			if err != nil {
				return fmt.Errorf("decode provider slot %q: %w", key, err)
			}
			slots = append(slots, ProviderSlot{Key: key, Hour: hour})
		}
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("decode provider object: %w", err)
		}
		*r = slots
		return nil
	default:
		return fmt.Errorf("unsupported provider response shape starting with %q", data[0])
	}
}

func decodeSlot(raw json.RawMessage) (*ProviderHour, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var hour ProviderHour
	if err := json.Unmarshal(raw, &hour); err != nil {
		return nil, err
	}
	return &hour, nil
}

// NormalizeResponse flattens the present slots of resp into forecast entries,
// keeping provider order. Null slots are dropped; an empty response yields an
// empty slice.
func NormalizeResponse(resp ProviderResponse) []RawForecastEntry {
	entries := make([]RawForecastEntry, 0, len(resp))
	for _, slot := range resp {
		if slot.Hour == nil {
			continue
		}
		h := slot.Hour
		entries = append(entries, RawForecastEntry{
			DateTime:    h.DateTime,
			WeatherIcon: h.WeatherIcon,
			IsDaylight:  h.IsDaylight,
			WindSpeed:   h.Wind.Speed.Value,
			WindGust:    h.WindGust.Speed.Value,
		})
	}
	return entries
}
