package weather

// Default wind thresholds in km/h (the provider is queried with metric=true).
const (
	DefaultWindSpeedThreshold = 24.0
	DefaultWindGustThreshold  = 31.0
)

// IconClass is the base condition for a provider icon code and whether strong
// wind may override it.
type IconClass struct {
	Condition     Condition
	WindyEligible bool
}

// iconTable maps every documented AccuWeather icon code to its game condition.
// Precipitation icons are never promoted to Windy.
var iconTable = map[int]IconClass{
	1:  {ConditionClear, true},
	2:  {ConditionClear, true},
	3:  {ConditionPartlyCloudy, true},
	4:  {ConditionPartlyCloudy, true},
	5:  {ConditionCloudy, true},
	6:  {ConditionCloudy, true},
	7:  {ConditionCloudy, true},
	8:  {ConditionCloudy, true},
	11: {ConditionFog, true},
	12: {ConditionRain, false},
	13: {ConditionCloudy, true},
	14: {ConditionPartlyCloudy, true},
	15: {ConditionRain, false},
	16: {ConditionCloudy, true},
	17: {ConditionPartlyCloudy, true},
	18: {ConditionRain, false},
	19: {ConditionSnow, false},
	20: {ConditionCloudy, true},
	21: {ConditionPartlyCloudy, true},
	22: {ConditionSnow, false},
	23: {ConditionCloudy, true},
	24: {ConditionSnow, false},
	25: {ConditionRain, false},
	26: {ConditionRain, false},
	29: {ConditionSnow, false},
	32: {ConditionWindy, true},
	33: {ConditionClear, true},
	34: {ConditionClear, true},
	35: {ConditionPartlyCloudy, true},
	36: {ConditionPartlyCloudy, true},
	37: {ConditionCloudy, true},
	38: {ConditionCloudy, true},
	39: {ConditionPartlyCloudy, true},
	40: {ConditionCloudy, true},
	41: {ConditionPartlyCloudy, true},
	42: {ConditionCloudy, true},
	43: {ConditionCloudy, true},
	44: {ConditionCloudy, true},
}

// LookupIcon returns the table entry for an icon code.
func LookupIcon(code int) (IconClass, bool) {
	c, ok := iconTable[code]
	return c, ok
}

// IconCodes returns every code known to the classifier, in no particular order.
func IconCodes() []int {
	codes := make([]int, 0, len(iconTable))
	for code := range iconTable {
		codes = append(codes, code)
	}
	return codes
}

// Thresholds are the strict lower bounds wind speed and gust must both exceed
// for the Windy override.
type Thresholds struct {
	Speed float64
	Gust  float64
}

// DefaultThresholds returns the package defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{Speed: DefaultWindSpeedThreshold, Gust: DefaultWindGustThreshold}
}

// Classifier maps provider readings onto game conditions. It is immutable and
// safe for concurrent use.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier returns a classifier using the given wind thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Thresholds returns the configured wind thresholds.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify returns the condition for an icon code and wind reading.
func (c *Classifier) Classify(icon int, windSpeed, windGust float64) Condition {
	class, ok := iconTable[icon]
	if !ok {
		return ConditionUnknown
	}
	if class.WindyEligible && windSpeed > c.thresholds.Speed && windGust > c.thresholds.Gust {
		return ConditionWindy
	}
	return class.Condition
}

// ClassifyRecord reduces a stored record to its display hour.
func (c *Classifier) ClassifyRecord(r ForecastRecord) ClassifiedHour {
	return ClassifiedHour{
		Hour:      HourOfDay(r.DateTime),
		Condition: c.Classify(r.WeatherIcon, r.WindSpeed, r.WindGust),
	}
}
