package store

import (
	"errors"
	"fmt"

	"github.com/i474232898/pogo-weather/internal/weather"
)

var (
	// ErrInvalidRecord is returned for records missing their identifying fields.
	ErrInvalidRecord = errors.New("invalid forecast record")
	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown store backend")
)

func validateRecord(r weather.ForecastRecord) error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	case r.LocationID == "":
		return fmt.Errorf("%w: missing location id", ErrInvalidRecord)
	case len(r.RequestTime) < 13:
		return fmt.Errorf("%w: request time %q has no hour", ErrInvalidRecord, r.RequestTime)
	}
	return nil
}

// page applies a server-side style page limit to a bucket read.
func page(records []weather.ForecastRecord, limit int) weather.QueryResult {
	if limit > 0 && len(records) > limit {
		return weather.QueryResult{Records: records[:limit], Truncated: true}
	}
	return weather.QueryResult{Records: records}
}
