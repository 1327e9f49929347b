package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		name  string
		icon  int
		speed float64
		gust  float64
		want  Condition
	}{
		{"sunny calm", 1, 5, 5, ConditionClear},
		{"sunny windy", 1, 30, 40, ConditionWindy},
		{"speed only", 1, 30, 10, ConditionClear},
		{"gust only", 1, 10, 40, ConditionClear},
		{"speed at threshold", 1, 24, 40, ConditionClear},
		{"gust at threshold", 1, 30, 31, ConditionClear},
		{"rain stays rain", 12, 50, 60, ConditionRain},
		{"snow stays snow", 22, 50, 60, ConditionSnow},
		{"fog windy", 11, 30, 40, ConditionWindy},
		{"windy icon calm", 32, 0, 0, ConditionWindy},
		{"partly cloudy", 3, 0, 0, ConditionPartlyCloudy},
		{"cloudy", 7, 0, 0, ConditionCloudy},
		{"unknown code", 999, 50, 60, ConditionUnknown},
		{"unknown code calm", 999, 0, 0, ConditionUnknown},
		{"unused code 9", 9, 0, 0, ConditionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.icon, tt.speed, tt.gust))
		})
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	c := NewClassifier(Thresholds{Speed: 10, Gust: 10})
	assert.Equal(t, ConditionWindy, c.Classify(2, 11, 11))
	assert.Equal(t, ConditionClear, c.Classify(2, 10, 11))
	assert.Equal(t, Thresholds{Speed: 10, Gust: 10}, c.Thresholds())
}

func TestIconTableCoversEveryCondition(t *testing.T) {
	seen := map[Condition]bool{}
	for _, code := range IconCodes() {
		class, ok := LookupIcon(code)
		assert.True(t, ok)
		seen[class.Condition] = true
		if class.Condition == ConditionRain || class.Condition == ConditionSnow {
			assert.False(t, class.WindyEligible, "code %d", code)
		} else {
			assert.True(t, class.WindyEligible, "code %d", code)
		}
	}
	for _, cond := range []Condition{ConditionClear, ConditionRain, ConditionPartlyCloudy, ConditionCloudy, ConditionWindy, ConditionSnow, ConditionFog} {
		assert.True(t, seen[cond], "no icon maps to %s", cond)
	}
}

func TestClassifyRecordUsesForecastHour(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	got := c.ClassifyRecord(ForecastRecord{DateTime: "2024-01-01T15:00:00-05:00", WeatherIcon: 32})
	assert.Equal(t, ClassifiedHour{Hour: "15", Condition: ConditionWindy}, got)
}

func TestGlyphs(t *testing.T) {
	assert.Equal(t, "☀", ConditionClear.Glyph())
	assert.Equal(t, "🎐", ConditionWindy.Glyph())
	assert.Equal(t, "?", Condition("Hail").Glyph())
}
