package weather

// Condition represents the primary weather condition reported for a reading.
// Values mirror the One Call "weather.main" strings.
type Condition string

const (
	ConditionUnknown      Condition = "unknown"
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionSnow         Condition = "Snow"
	ConditionMist         Condition = "Mist"
	ConditionSmoke        Condition = "Smoke"
	ConditionHaze         Condition = "Haze"
	ConditionDust         Condition = "Dust"
	ConditionFog          Condition = "Fog"
	ConditionSand         Condition = "Sand"
	ConditionAsh          Condition = "Ash"
	ConditionSquall       Condition = "Squall"
	ConditionTornado      Condition = "Tornado"
)

// ParseCondition maps a provider condition string onto a known Condition.
func ParseCondition(s string) Condition {
	switch Condition(s) {
	case ConditionClear, ConditionClouds, ConditionRain, ConditionDrizzle,
		ConditionThunderstorm, ConditionSnow, ConditionMist, ConditionSmoke,
		ConditionHaze, ConditionDust, ConditionFog, ConditionSand,
		ConditionAsh, ConditionSquall, ConditionTornado:
		return Condition(s)
	default:
		return ConditionUnknown
	}
}

// CurrentConditions holds the observed weather at fetch time.
type CurrentConditions struct {
	Dt          int64     `json:"dt"`
	Sunrise     int64     `json:"sunrise,omitempty"`
	Sunset      int64     `json:"sunset,omitempty"`
	Temp        float64   `json:"temp"`
	FeelsLike   float64   `json:"feelsLike"`
	Pressure    int       `json:"pressure"`
	Humidity    int       `json:"humidity"`
	UVIndex     float64   `json:"uvIndex"`
	WindSpeed   float64   `json:"windSpeed"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description,omitempty"`
}

// HourlyForecast is one hour of the short-horizon forecast.
type HourlyForecast struct {
	Dt   int64   `json:"dt"`
	Temp float64 `json:"temp"`
	Pop  float64 `json:"pop"` // precipitation probability, 0..1
}

// DailyForecast is one day of the multi-day forecast.
type DailyForecast struct {
	Dt        int64     `json:"dt"`
	TempMin   float64   `json:"tempMin"`
	TempMax   float64   `json:"tempMax"`
	Pop       float64   `json:"pop"`
	Condition Condition `json:"condition"`
}

// Snapshot is an immutable weather payload for one coordinate at one point in
// time. Snapshots live only in shared state until replaced by the next fetch;
// they are never persisted.
type Snapshot struct {
	Latitude  float64           `json:"lat"`
	Longitude float64           `json:"lon"`
	Timezone  string            `json:"timezone,omitempty"`
	Current   CurrentConditions `json:"current"`
	Hourly    []HourlyForecast  `json:"hourly,omitempty"`
	Daily     []DailyForecast   `json:"daily,omitempty"`
}

// MaxPopNextHours returns the highest precipitation probability over the next
// n hourly entries.
func (s *Snapshot) MaxPopNextHours(n int) float64 {
	var max float64
	for i, h := range s.Hourly {
		if i >= n {
			break
		}
		if h.Pop > max {
			max = h.Pop
		}
	}
	return max
}
