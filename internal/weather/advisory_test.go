package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshotWith(temp, wind, uv float64, cond Condition) *Snapshot {
	return &Snapshot{
		Current: CurrentConditions{
			Temp:      temp,
			WindSpeed: wind,
			UVIndex:   uv,
			Condition: cond,
		},
	}
}

func TestComputeAdvisory(t *testing.T) {
	tests := []struct {
		name      string
		snap      *Snapshot
		wantLevel Level
	}{
		{
			name:      "comfortable clear day",
			snap:      snapshotWith(22, 2, 3, ConditionClear),
			wantLevel: LevelPerfect,
		},
		{
			name:      "nil snapshot",
			snap:      nil,
			wantLevel: LevelCaution,
		},
		{
			name:      "no rule fires but outside comfort band",
			snap:      snapshotWith(12, 2, 3, ConditionClouds),
			wantLevel: LevelCaution,
		},
		{
			name:      "rain condition",
			snap:      snapshotWith(22, 2, 3, ConditionRain),
			wantLevel: LevelCaution,
		},
		{
			name:      "thunderstorm",
			snap:      snapshotWith(22, 2, 3, ConditionThunderstorm),
			wantLevel: LevelStayInside,
		},
		{
			name:      "extreme heat",
			snap:      snapshotWith(41, 2, 3, ConditionClear),
			wantLevel: LevelStayInside,
		},
		{
			name:      "storm-force wind",
			snap:      snapshotWith(22, 19, 3, ConditionClear),
			wantLevel: LevelStayInside,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAdvisory(tt.snap)
			assert.Equal(t, tt.wantLevel, got.Level)
		})
	}
}

func TestComputeAdvisoryPopRule(t *testing.T) {
	snap := snapshotWith(22, 2, 3, ConditionClouds)
	snap.Hourly = []HourlyForecast{
		{Pop: 0.1},
		{Pop: 0.7},
		{Pop: 0.2},
		{Pop: 0.9}, // beyond the 3-hour horizon, must not count
	}

	got := ComputeAdvisory(snap)
	assert.Equal(t, LevelCaution, got.Level)
	assert.Contains(t, got.Reasons, "rain likely within the next few hours")

	// Same snapshot with the spike moved past the horizon stays perfect.
	snap.Hourly = []HourlyForecast{{Pop: 0.1}, {Pop: 0.2}, {Pop: 0.3}, {Pop: 0.9}}
	assert.Equal(t, LevelPerfect, ComputeAdvisory(snap).Level)
}

func TestComputeAdvisoryCollectsAllReasonsAtMaxLevel(t *testing.T) {
	// Storm wind and extreme heat both at stay-inside level, plus a caution
	// rain condition that must be excluded from the reasons.
	snap := snapshotWith(39, 18, 3, ConditionRain)

	got := ComputeAdvisory(snap)
	assert.Equal(t, LevelStayInside, got.Level)
	assert.ElementsMatch(t, []string{"extreme heat", "storm-force wind"}, got.Reasons)
}

func TestAdvisoryMonotonicWithWind(t *testing.T) {
	prev := LevelPerfect
	for wind := 0.0; wind <= 25; wind += 0.5 {
		got := ComputeAdvisory(snapshotWith(24, wind, 3, ConditionClear))
		assert.GreaterOrEqual(t, got.Level, prev, "wind %.1f lowered the advisory level", wind)
		prev = got.Level
	}
	assert.Equal(t, LevelStayInside, prev)
}

func TestAdvisoryMessages(t *testing.T) {
	assert.Equal(t, "Perfect weather for a walk!", Advisory{Level: LevelPerfect}.Message())
	assert.Equal(t, "Take precautions when heading outside.", Advisory{Level: LevelCaution}.Message())
	assert.Equal(t, "Better to stay indoors today.", Advisory{Level: LevelStayInside}.Message())
}
