package generator

import "github.com/kwalsh/wxsim/internal/types"

// weightedCondition pairs a weather condition with its relative
// likelihood within a regime.
type weightedCondition struct {
	condition types.WeatherCondition
	weight    float64
}

// defaultConditions is the baseline distribution used when neither the
// rain nor the fair-weather regime applies.
var defaultConditions = []weightedCondition{
	{types.Clear, 0.25},
	{types.PartlyCloudy, 0.20},
	{types.Cloudy, 0.20},
	{types.Overcast, 0.15},
	{types.LightRain, 0.10},
	{types.Rain, 0.05},
	{types.Thunderstorm, 0.03},
	{types.Fog, 0.02},
}

// rainConditions applies when pressure is low and humidity high;
// precipitation dominates.
var rainConditions = []weightedCondition{
	{types.Overcast, 0.30},
	{types.LightRain, 0.30},
	{types.Rain, 0.25},
	{types.Thunderstorm, 0.10},
	{types.Fog, 0.05},
}

// fairConditions applies under high pressure.
var fairConditions = []weightedCondition{
	{types.Clear, 0.50},
	{types.PartlyCloudy, 0.35},
	{types.Cloudy, 0.15},
}

// conditionFor selects the weather condition for the pressure and
// humidity already computed for this call.
func (g *Generator) conditionFor(pressure, humidity float64) types.WeatherCondition {
	switch {
	case pressure < 1000 && humidity > 70:
		return g.weightedChoice(rainConditions)
	case pressure > 1020:
		return g.weightedChoice(fairConditions)
	default:
		return g.weightedChoice(defaultConditions)
	}
}

// weightedChoice samples one condition by cumulative weight. The final
// entry is returned if accumulated floating-point error keeps the draw
// from matching any entry.
func (g *Generator) weightedChoice(choices []weightedCondition) types.WeatherCondition {
	var total float64
	for _, c := range choices {
		total += c.weight
	}

	r := g.rng.Float64() * total
	var upto float64
	for _, c := range choices {
		if upto+c.weight >= r {
			return c.condition
		}
		upto += c.weight
	}
	return choices[len(choices)-1].condition
}
