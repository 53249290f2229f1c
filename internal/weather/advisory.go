package weather

import "fmt"

// Level ranks an advisory; higher means worse conditions.
type Level int

const (
	LevelPerfect    Level = 1
	LevelCaution    Level = 2
	LevelStayInside Level = 3
)

func (l Level) String() string {
	switch l {
	case LevelPerfect:
		return "perfect"
	case LevelCaution:
		return "caution"
	case LevelStayInside:
		return "stay_inside"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Advisory is a risk-ranked recommendation derived from a weather snapshot.
// Reasons lists every rule that fired at the advisory's level.
type Advisory struct {
	Level   Level    `json:"level"`
	Reasons []string `json:"reasons,omitempty"`
}

// Message returns a human-readable headline for the advisory.
func (a Advisory) Message() string {
	switch a.Level {
	case LevelPerfect:
		return "Perfect weather for a walk!"
	case LevelStayInside:
		return "Better to stay indoors today."
	default:
		return "Take precautions when heading outside."
	}
}

// Thresholds for the advisory rules. Temperatures in Celsius, wind in m/s.
const (
	comfortTempMin = 18.0
	comfortTempMax = 30.0
	calmWindMax    = 5.0
	moderateUVMax  = 6.0

	cautionTempLow  = 5.0
	cautionTempHigh = 33.0
	strongWind      = 10.0
	veryHighUV      = 8.0
	likelyRainPop   = 0.5

	extremeCold   = -5.0
	extremeHeat   = 38.0
	stormWind     = 17.0
	extremeUV     = 11.0
	popHorizonHrs = 3
)

type advisoryRule struct {
	level  Level
	reason string
	fires  func(*Snapshot) bool
}

var advisoryRules = []advisoryRule{
	{LevelStayInside, "severe weather conditions", func(s *Snapshot) bool {
		switch s.Current.Condition {
		case ConditionThunderstorm, ConditionSnow, ConditionTornado:
			return true
		}
		return false
	}},
	{LevelStayInside, "extreme cold", func(s *Snapshot) bool {
		return s.Current.Temp <= extremeCold
	}},
	{LevelStayInside, "extreme heat", func(s *Snapshot) bool {
		return s.Current.Temp >= extremeHeat
	}},
	{LevelStayInside, "storm-force wind", func(s *Snapshot) bool {
		return s.Current.WindSpeed >= stormWind
	}},
	{LevelStayInside, "extreme UV index", func(s *Snapshot) bool {
		return s.Current.UVIndex >= extremeUV
	}},
	{LevelCaution, "wet or low-visibility conditions", func(s *Snapshot) bool {
		switch s.Current.Condition {
		case ConditionRain, ConditionDrizzle, ConditionMist, ConditionFog,
			ConditionHaze, ConditionSmoke, ConditionDust, ConditionSand,
			ConditionAsh, ConditionSquall:
			return true
		}
		return false
	}},
	{LevelCaution, "cold temperatures", func(s *Snapshot) bool {
		return s.Current.Temp < cautionTempLow && s.Current.Temp > extremeCold
	}},
	{LevelCaution, "hot temperatures", func(s *Snapshot) bool {
		return s.Current.Temp > cautionTempHigh && s.Current.Temp < extremeHeat
	}},
	{LevelCaution, "strong wind", func(s *Snapshot) bool {
		return s.Current.WindSpeed >= strongWind
	}},
	{LevelCaution, "very high UV index", func(s *Snapshot) bool {
		return s.Current.UVIndex >= veryHighUV
	}},
	{LevelCaution, "rain likely within the next few hours", func(s *Snapshot) bool {
		return s.MaxPopNextHours(popHorizonHrs) >= likelyRainPop
	}},
}

// ComputeAdvisory evaluates all risk rules against the snapshot. When rules
// fire, the result carries the maximum fired level and every reason at that
// level. When nothing fires, the result is Perfect only inside the comfort
// band, otherwise a generic Caution.
func ComputeAdvisory(s *Snapshot) Advisory {
	if s == nil {
		return Advisory{Level: LevelCaution, Reasons: []string{"no weather data available"}}
	}

	maxLevel := LevelPerfect
	var fired []advisoryRule
	for _, rule := range advisoryRules {
		if rule.fires(s) {
			fired = append(fired, rule)
			if rule.level > maxLevel {
				maxLevel = rule.level
			}
		}
	}

	if len(fired) == 0 {
		if s.Current.Temp >= comfortTempMin && s.Current.Temp <= comfortTempMax &&
			s.Current.WindSpeed < calmWindMax && s.Current.UVIndex < moderateUVMax {
			return Advisory{Level: LevelPerfect}
		}
		return Advisory{Level: LevelCaution, Reasons: []string{"changeable conditions"}}
	}

	var reasons []string
	for _, rule := range fired {
		if rule.level == maxLevel {
			reasons = append(reasons, rule.reason)
		}
	}
	return Advisory{Level: maxLevel, Reasons: reasons}
}
