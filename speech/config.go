package speech

// Pitch and rate bounds for preview utterances. Values outside the
// bounds are clamped, never rejected.
const (
	MinPitch = 0.5
	MaxPitch = 2.0
	MinRate  = 0.5
	MaxRate  = 2.0
)

// Config holds preview controller settings.
type Config struct {
	// PreferredLocales is tried in order when auto-selecting a voice
	// after the voice list loads. The first voice whose language tag
	// matches wins; with no match the first reported voice is used.
	PreferredLocales []string `yaml:"preferred_locales" env:"VOXBOOTH_SPEECH_LOCALES" envSeparator:","`

	// Pitch is the initial pitch multiplier.
	Pitch float64 `yaml:"pitch" env:"VOXBOOTH_SPEECH_PITCH" envDefault:"1.0"`

	// Rate is the initial rate multiplier.
	Rate float64 `yaml:"rate" env:"VOXBOOTH_SPEECH_RATE" envDefault:"1.0"`
}

// DefaultConfig returns the default preview configuration.
func DefaultConfig() Config {
	return Config{
		PreferredLocales: []string{"en-US", "en-GB"},
		Pitch:            1.0,
		Rate:             1.0,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
