package generator

import (
	"testing"

	"github.com/kwalsh/wxsim/internal/types"
)

func TestWeightedChoiceDegenerate(t *testing.T) {
	g := NewSeeded(11, fixedHour(12))
	choices := []weightedCondition{
		{types.Clear, 1},
		{types.Rain, 0},
	}

	for i := 0; i < 1000; i++ {
		if got := g.weightedChoice(choices); got != types.Clear {
			t.Fatalf("trial %d: zero-weight entry selected: %v", i, got)
		}
	}
}

func TestWeightedChoiceCoversAllEntries(t *testing.T) {
	g := NewSeeded(12, fixedHour(12))

	seen := make(map[types.WeatherCondition]int)
	for i := 0; i < 10000; i++ {
		seen[g.weightedChoice(defaultConditions)]++
	}

	for _, c := range defaultConditions {
		if seen[c.condition] == 0 {
			t.Errorf("condition %v never selected over 10000 trials", c.condition)
		}
	}

	// Sanity check on proportions for the heaviest entry: Clear carries
	// a quarter of the weight.
	if n := seen[types.Clear]; n < 2000 || n > 3000 {
		t.Errorf("Clear selected %d times over 10000 trials, expected around 2500", n)
	}
}

func TestConditionRegimes(t *testing.T) {
	tests := []struct {
		name     string
		pressure float64
		humidity float64
		allowed  []types.WeatherCondition
	}{
		{
			name:     "rain regime on low pressure and high humidity",
			pressure: 990,
			humidity: 85,
			allowed:  []types.WeatherCondition{types.Overcast, types.LightRain, types.Rain, types.Thunderstorm, types.Fog},
		},
		{
			name:     "fair regime on high pressure",
			pressure: 1030,
			humidity: 40,
			allowed:  []types.WeatherCondition{types.Clear, types.PartlyCloudy, types.Cloudy},
		},
		{
			name:     "high humidity alone stays in default regime",
			pressure: 1010,
			humidity: 90,
			allowed: []types.WeatherCondition{
				types.Clear, types.PartlyCloudy, types.Cloudy, types.Overcast,
				types.LightRain, types.Rain, types.Thunderstorm, types.Fog,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSeeded(13, fixedHour(12))
			allowed := make(map[types.WeatherCondition]bool)
			for _, c := range tt.allowed {
				allowed[c] = true
			}

			for i := 0; i < 1000; i++ {
				if got := g.conditionFor(tt.pressure, tt.humidity); !allowed[got] {
					t.Fatalf("trial %d: condition %v outside regime set", i, got)
				}
			}
		})
	}
}

func TestRainRegimeBoundaries(t *testing.T) {
	// Exactly 1000 hPa or exactly 70% humidity must not trigger the rain
	// regime: the thresholds are strict.
	g := NewSeeded(14, fixedHour(12))

	fair := map[types.WeatherCondition]bool{
		types.Clear: true, types.PartlyCloudy: true, types.Cloudy: true,
	}
	for i := 0; i < 1000; i++ {
		if got := g.conditionFor(1020.01, 75); !fair[got] {
			t.Fatalf("trial %d: pressure just above 1020 should use fair regime, got %v", i, got)
		}
	}
}
