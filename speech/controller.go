package speech

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// Controller owns the speech preview state: the voice list, the current
// selection, pitch/rate, and the speaking flag. At most one utterance
// plays at a time; starting a new preview supersedes the previous one.
type Controller struct {
	synth Synthesizer

	mu       sync.Mutex
	voices   []Voice
	selected string
	pitch    float64
	rate     float64
	speaking bool
	closed   bool

	// generation identifies the current utterance. Events carrying a
	// stale generation are dropped, which is what makes Preview
	// superseding and StopPreview idempotent.
	generation uint64

	matcher     language.Matcher
	unsubscribe func()

	onSpeakingChange func(bool)
	onVoicesChanged  func([]Voice)
	onError          func(error)

	logger *log.Logger
}

// NewController creates a preview controller bound to the given
// synthesizer. A nil synthesizer means the capability is unsupported:
// every operation becomes a no-op. The voice list loads immediately and
// reloads whenever the synthesizer signals a change.
func NewController(synth Synthesizer, cfg Config, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}

	c := &Controller{
		synth:   synth,
		pitch:   clamp(cfg.Pitch, MinPitch, MaxPitch),
		rate:    clamp(cfg.Rate, MinRate, MaxRate),
		matcher: localeMatcher(cfg.PreferredLocales),
		logger:  logger.With("component", "speech"),
	}

	if synth == nil {
		return c
	}

	c.unsubscribe = synth.NotifyVoicesChanged(c.LoadVoices)
	c.LoadVoices()
	return c
}

// Supported reports whether a synthesizer is available. Resolved once at
// construction; callers disable preview controls when false.
func (c *Controller) Supported() bool {
	return c.synth != nil
}

// LoadVoices refreshes the voice list from the synthesizer. An empty or
// failed enumeration is tolerated: the platform may still be loading. If
// no voice is selected and voices are now available, the first voice
// matching a preferred locale is selected, falling back to the first
// voice overall.
func (c *Controller) LoadVoices() {
	if c.synth == nil {
		return
	}

	voices, err := c.synth.Voices()
	if err != nil {
		c.logger.Warn("voice enumeration failed", "err", err)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.voices = voices
	if c.selected == "" && len(voices) > 0 {
		c.selected = c.pickDefault(voices)
		c.logger.Debug("auto-selected voice", "voice", c.selected)
	}
	notify := c.onVoicesChanged
	snapshot := append([]Voice(nil), voices...)
	c.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
}

// pickDefault returns the name of the first voice whose language tag
// matches the preferred-locale list, or the first voice when none match.
// Callers hold c.mu.
func (c *Controller) pickDefault(voices []Voice) string {
	if c.matcher != nil {
		for _, v := range voices {
			tag, err := language.Parse(v.Language)
			if err != nil {
				continue
			}
			if _, _, conf := c.matcher.Match(tag); conf >= language.High {
				return v.Name
			}
		}
	}
	return voices[0].Name
}

// Voices returns a snapshot of the current voice list.
func (c *Controller) Voices() []Voice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Voice(nil), c.voices...)
}

// SelectedVoice returns the name of the active voice, empty if none.
func (c *Controller) SelectedVoice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// SelectVoice makes the named voice active. Unknown names are rejected.
func (c *Controller) SelectVoice(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range c.voices {
		if v.Name == name {
			c.selected = name
			return nil
		}
	}
	return ErrVoiceNotFound
}

// Pitch returns the current pitch multiplier.
func (c *Controller) Pitch() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

// Rate returns the current rate multiplier.
func (c *Controller) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// SetPitch sets the pitch multiplier, clamped into bounds.
func (c *Controller) SetPitch(p float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = clamp(p, MinPitch, MaxPitch)
}

// SetRate sets the rate multiplier, clamped into bounds.
func (c *Controller) SetRate(r float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = clamp(r, MinRate, MaxRate)
}

// Speaking reports whether an utterance is currently audible.
func (c *Controller) Speaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speaking
}

// OnSpeakingChange registers a callback for speaking-flag transitions.
func (c *Controller) OnSpeakingChange(fn func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSpeakingChange = fn
}

// OnVoicesChanged registers a callback for voice-list updates.
func (c *Controller) OnVoicesChanged(fn func([]Voice)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onVoicesChanged = fn
}

// OnError registers a callback for utterance failures.
func (c *Controller) OnError(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// Preview speaks the given script text with the current pitch, rate and
// voice. It is a no-op when the capability is unsupported or the text is
// blank. Any in-flight utterance is cancelled first, so at most one
// utterance plays at a time.
func (c *Controller) Preview(text string) {
	if c.synth == nil || strings.TrimSpace(text) == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	fire := c.setSpeakingLocked(false)
	u := Utterance{
		Text:  text,
		Pitch: c.pitch,
		Rate:  c.rate,
		Voice: c.selected,
	}
	c.mu.Unlock()

	if fire != nil {
		fire()
	}
	c.synth.Cancel()

	ev := Events{
		OnStart: func() { c.handleStart(gen) },
		OnEnd:   func() { c.handleDone(gen, nil) },
		OnError: func(err error) { c.handleDone(gen, err) },
	}
	if err := c.synth.Speak(u, ev); err != nil {
		c.handleDone(gen, err)
	}
}

// StopPreview cancels any in-flight utterance and clears the speaking
// flag. Safe to call when nothing is playing.
func (c *Controller) StopPreview() {
	if c.synth == nil {
		return
	}

	c.mu.Lock()
	c.generation++ // orphan any pending utterance events
	fire := c.setSpeakingLocked(false)
	c.mu.Unlock()

	if fire != nil {
		fire()
	}
	c.synth.Cancel()
}

// Close cancels any in-flight utterance and detaches the voices-changed
// subscription. No controller callback fires after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.generation++
	c.speaking = false
	unsub := c.unsubscribe
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if c.synth != nil {
		c.synth.Cancel()
	}
}

func (c *Controller) handleStart(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	fire := c.setSpeakingLocked(true)
	c.mu.Unlock()

	if fire != nil {
		fire()
	}
}

func (c *Controller) handleDone(gen uint64, err error) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	fire := c.setSpeakingLocked(false)
	notify := c.onError
	c.mu.Unlock()

	if fire != nil {
		fire()
	}
	if err != nil {
		c.logger.Warn("utterance failed", "err", err)
		if notify != nil {
			notify(err)
		}
	}
}

// setSpeakingLocked updates the speaking flag and, when the value
// changed, returns the change callback for the caller to fire after
// releasing c.mu. Callers hold c.mu.
func (c *Controller) setSpeakingLocked(v bool) func() {
	if c.speaking == v {
		return nil
	}
	c.speaking = v
	if fn := c.onSpeakingChange; fn != nil {
		return func() { fn(v) }
	}
	return nil
}

// localeMatcher builds a matcher from the preferred-locale list. Invalid
// tags are skipped; an empty result disables locale preference.
func localeMatcher(locales []string) language.Matcher {
	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil
	}
	return language.NewMatcher(tags)
}
