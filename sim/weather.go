package sim

// Weather is the port-wide sea state.
type Weather string

const (
	WeatherClear Weather = "clear"
	WeatherBad   Weather = "bad"
)

// WeatherController tracks the current weather and counts its remaining duration down.
// When the countdown is exhausted, the next tick draws a new state and a new duration.
// While the weather is bad, berth countdowns and queue dispatch are suspended
// port-wide; ships already in pilotage keep moving.
type WeatherController struct {
	cfg       WeatherConfig
	state     Weather
	remaining int // always >= 0
}

// NewWeatherController starts clear with an exhausted countdown, so the first
// tick draws the opening weather spell.
func NewWeatherController(cfg WeatherConfig) *WeatherController {
	return &WeatherController{cfg: cfg, state: WeatherClear}
}

// Tick advances the weather by one minute and reports whether a new spell was
// drawn. A new spell may repeat the previous state.
func (w *WeatherController) Tick(src RandomSource) bool {
	if w.remaining > 0 {
		w.remaining--
		return false
	}
	if src.WeatherTrial(w.cfg.BadProbability) {
		w.state = WeatherBad
	} else {
		w.state = WeatherClear
	}
	w.remaining = max(0, src.WeatherDuration(w.cfg.MinDuration, w.cfg.MaxDuration))
	return true
}

// Bad reports whether berth operations are currently suspended.
func (w *WeatherController) Bad() bool {
	return w.state == WeatherBad
}

// State returns the current weather.
func (w *WeatherController) State() Weather {
	return w.state
}

// Remaining returns the minutes left in the current spell.
func (w *WeatherController) Remaining() int {
	return w.remaining
}
