// Package generator implements the weather station state model. A small
// set of slowly-drifting latent base values is perturbed on every call,
// modulated by a diurnal sinusoid, and mapped to a categorical weather
// condition. Successive readings stay correlated because only the latent
// state persists between calls; each Reading itself is a fresh value.
package generator

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kwalsh/wxsim/internal/types"
)

// HourProvider supplies the local hour of day [0,23] used for the
// diurnal cycle. Injected so tests can pin the clock.
type HourProvider func() int

// WallClockHour is the default HourProvider.
func WallClockHour() int {
	return time.Now().Hour()
}

// StationState holds the latent variables of the simulated station. All
// base values are clamped to their physical range after every update;
// DirectionIndex is always within [0,8).
type StationState struct {
	BaseTemperature float64 // °C, clamped to [-10,35]
	BaseHumidity    float64 // %, clamped to [20,100]
	BasePressure    float64 // hPa, clamped to [980,1040]
	BaseWindSpeed   float64 // m/s, clamped to [0,20]
	DirectionIndex  int
	Tick            int // call counter, diagnostic only
}

// Generator produces one Reading per Generate call by random-walking the
// station state. It is not safe for concurrent use; the driving loop
// calls it from a single goroutine.
type Generator struct {
	src   rand.Source
	rng   *rand.Rand
	hour  HourProvider
	state StationState
}

// New returns a Generator seeded from the wall clock, reading the diurnal
// hour from the system time.
func New() *Generator {
	return NewSeeded(uint64(time.Now().UnixNano()), WallClockHour)
}

// NewSeeded returns a Generator with a fixed random seed and hour
// provider. Two generators built with the same arguments produce
// identical reading sequences.
func NewSeeded(seed uint64, hour HourProvider) *Generator {
	src := rand.NewSource(seed)
	g := &Generator{
		src:  src,
		rng:  rand.New(src),
		hour: hour,
	}

	// Seed the latent state from realistic ranges.
	g.state = StationState{
		BaseTemperature: g.uniform(15, 25),
		BaseHumidity:    g.uniform(40, 70),
		BasePressure:    g.uniform(1000, 1025),
		BaseWindSpeed:   g.uniform(1, 5),
		DirectionIndex:  g.rng.Intn(len(types.WindDirections)),
	}
	return g
}

// State returns a copy of the current latent station state.
func (g *Generator) State() StationState {
	return g.state
}

// Generate produces the next weather reading. It mutates only the latent
// station state and cannot fail.
func (g *Generator) Generate() types.Reading {
	g.state.Tick++
	s := seasonalFactor(g.hour())

	// Temperature: slow random walk plus a diurnal swing. The seasonal
	// addend is recomputed from the current hour every call and is never
	// folded into the latent base, so only the residual random-walks.
	g.state.BaseTemperature += g.gauss(0.5) * 0.1
	g.state.BaseTemperature = clamp(g.state.BaseTemperature, -10, 35)
	temperature := round2(g.state.BaseTemperature + s*5 + g.gauss(0.3))

	// Humidity: inversely correlated with the diurnal factor. Warm hours
	// pull the base down, cold hours push it up.
	g.state.BaseHumidity += g.gauss(1) * 0.2
	g.state.BaseHumidity = clamp(g.state.BaseHumidity+(-s*10)*0.1, 20, 100)
	humidity := clamp(round2(g.state.BaseHumidity+g.gauss(2)), 20, 100)

	// Pressure drifts slowly.
	g.state.BasePressure += g.gauss(0.3) * 0.05
	g.state.BasePressure = clamp(g.state.BasePressure, 980, 1040)
	pressure := round2(g.state.BasePressure + g.gauss(0.5))

	// Wind speed, with occasional gusts. The gust multiplier applies to
	// the current sample only and is not persisted into the base.
	g.state.BaseWindSpeed += g.gauss(0.5) * 0.1
	g.state.BaseWindSpeed = clamp(g.state.BaseWindSpeed, 0, 20)
	gustFactor := 1.0
	if g.rng.Float64() < 0.1 {
		gustFactor = 1.5
	}
	windSpeed := clamp(round2(g.state.BaseWindSpeed*gustFactor+g.gauss(0.3)), 0, 25)

	// Wind direction takes at most one circular step per call.
	if g.rng.Float64() < 0.05 {
		step := 1
		if g.rng.Float64() < 0.5 {
			step = -1
		}
		n := len(types.WindDirections)
		g.state.DirectionIndex = (g.state.DirectionIndex + step + n) % n
	}

	return types.Reading{
		Temperature:      temperature,
		Humidity:         humidity,
		Pressure:         pressure,
		WindSpeed:        windSpeed,
		WindDirection:    types.WindDirections[g.state.DirectionIndex],
		WeatherCondition: g.conditionFor(pressure, humidity),
	}
}

// seasonalFactor maps the hour of day onto a sinusoid peaking near 14:00
// and bottoming near 04:00, normalized to [-1,1].
func seasonalFactor(hour int) float64 {
	return math.Sin((float64(hour) - 4) * math.Pi / 12)
}

func (g *Generator) gauss(sigma float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: sigma, Src: g.src}.Rand()
}

func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
