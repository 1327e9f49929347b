package weather

// Condition is one of the fixed game weather conditions shown in reports.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionRain         Condition = "Rain"
	ConditionPartlyCloudy Condition = "Partly Cloudy"
	ConditionCloudy       Condition = "Cloudy"
	ConditionWindy        Condition = "Windy"
	ConditionSnow         Condition = "Snow"
	ConditionFog          Condition = "Fog"
	ConditionUnknown      Condition = "Unknown"
)

var conditionGlyphs = map[Condition]string{
	ConditionClear:        "☀",
	ConditionRain:         "☂",
	ConditionPartlyCloudy: "⛅",
	ConditionCloudy:       "☁",
	ConditionWindy:        "🎐",
	ConditionSnow:         "☃",
	ConditionFog:          "🌫",
	ConditionUnknown:      "?",
}

// Glyph returns the single-character icon used when rendering the condition.
func (c Condition) Glyph() string {
	if g, ok := conditionGlyphs[c]; ok {
		return g
	}
	return conditionGlyphs[ConditionUnknown]
}

// Location is a static catalog entry for a place we report on.
type Location struct {
	ID          string `json:"locationID"`
	Name        string `json:"locationName"`
	Link        string `json:"locationLink,omitempty"`
	AlwaysFetch bool   `json:"alwaysFetch"`
}

// RawForecastEntry is one provider hour for one location, before it is persisted.
type RawForecastEntry struct {
	DateTime    string
	WeatherIcon int
	IsDaylight  bool
	WindSpeed   float64
	WindGust    float64
}

// ForecastRecord is the persisted unit. Records are written once and never mutated.
// LocationName is denormalized so reads never need the catalog to label a bucket.
type ForecastRecord struct {
	ID           string  `json:"id"`
	LocationID   string  `json:"locationID"`
	LocationName string  `json:"locationName"`
	RequestTime  string  `json:"requestTime"`
	DateTime     string  `json:"dateTime"`
	WeatherIcon  int     `json:"weatherIcon"`
	IsDaylight   bool    `json:"isDaylight"`
	WindSpeed    float64 `json:"windSpeed"`
	WindGust     float64 `json:"windGust"`
}

// BucketKey returns the composite store key for the record.
func (r ForecastRecord) BucketKey() string {
	return BucketKey(r.LocationID, RequestHour(r.RequestTime))
}

// ClassifiedHour is a forecast hour reduced to its display condition.
type ClassifiedHour struct {
	Hour      string    `json:"hour"`
	Condition Condition `json:"condition"`
}

// DisplayBucket is the rendered slice of a bucket: at most DisplayHours entries.
type DisplayBucket struct {
	FetchTime string           `json:"fetchTime"`
	Hours     []ClassifiedHour `json:"hours"`
}

// QueryResult is what a bucket lookup returns. Truncated is set when the store
// hit its page limit and not every record was returned.
type QueryResult struct {
	Records   []ForecastRecord
	Truncated bool
}
