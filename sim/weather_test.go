package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeatherController_StartsClearAndDrawsOnFirstTick(t *testing.T) {
	// GIVEN a fresh controller
	w := NewWeatherController(WeatherConfig{BadProbability: 0.5, MinDuration: 10, MaxDuration: 50})
	assert.Equal(t, WeatherClear, w.State())
	assert.Equal(t, 0, w.Remaining())

	// WHEN the first tick draws a bad spell of 3 minutes
	src := &scriptedSource{trials: []bool{true}, durations: []int{3}}
	drawn := w.Tick(src)

	// THEN the weather is bad for that spell
	assert.True(t, drawn)
	assert.True(t, w.Bad())
	assert.Equal(t, 3, w.Remaining())
}

func TestWeatherController_CountsDownBeforeRedrawing(t *testing.T) {
	// GIVEN a bad spell of 2 minutes followed by a clear spell
	w := NewWeatherController(WeatherConfig{BadProbability: 0.5, MinDuration: 1, MaxDuration: 5})
	src := &scriptedSource{trials: []bool{true, false}, durations: []int{2, 4}}

	// WHEN ticking minute by minute
	got := []Weather{}
	redraws := 0
	for i := 0; i < 5; i++ {
		if w.Tick(src) {
			redraws++
		}
		got = append(got, w.State())
	}

	// THEN the bad spell lasts its draw minute plus its countdown, then redraws once
	assert.Equal(t, []Weather{WeatherBad, WeatherBad, WeatherBad, WeatherClear, WeatherClear}, got)
	assert.Equal(t, 2, redraws)
	assert.Equal(t, 2, src.weatherCalls)
	assert.Equal(t, 3, w.Remaining())
}

func TestWeatherController_NegativeDurationClampsToZero(t *testing.T) {
	w := NewWeatherController(WeatherConfig{MinDuration: 1, MaxDuration: 1})
	src := &scriptedSource{durations: []int{-4}}
	w.Tick(src)
	assert.Equal(t, 0, w.Remaining())
}
