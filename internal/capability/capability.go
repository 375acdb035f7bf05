// Package capability resolves the platform capabilities once at startup.
// Controllers and the UI receive the resolved set as configuration and
// never re-probe.
package capability

import (
	"github.com/charmbracelet/log"

	"github.com/voxlabs/voxbooth/booth"
	"github.com/voxlabs/voxbooth/booth/capture/arecord"
	capmock "github.com/voxlabs/voxbooth/booth/capture/mock"
	"github.com/voxlabs/voxbooth/internal/audio"
	"github.com/voxlabs/voxbooth/speech"
	"github.com/voxlabs/voxbooth/speech/engines/espeak"
	synthmock "github.com/voxlabs/voxbooth/speech/engines/mock"
)

// Set is the resolved capability descriptor. A nil field means the
// capability is unavailable; the matching note says why, for the UI's
// informational banner.
type Set struct {
	Synth   speech.Synthesizer
	Capture booth.CaptureDevice
	Player  audio.Player

	SpeechNote   string
	CaptureNote  string
	PlaybackNote string
}

// Probe detects the platform capabilities. Absence of a capability is an
// expected condition, reported in the notes, never an error.
func Probe(audioCfg audio.Config, logger *log.Logger) Set {
	if logger == nil {
		logger = log.Default()
	}
	var set Set

	if synth, err := espeak.New(logger); err != nil {
		set.SpeechNote = "speech preview disabled: " + err.Error()
		logger.Info("speech synthesis unavailable", "err", err)
	} else {
		set.Synth = synth
	}

	if device, err := arecord.New(audioCfg.SampleRate, audioCfg.Channels, logger); err != nil {
		set.CaptureNote = "recording disabled: " + err.Error()
		logger.Info("audio capture unavailable", "err", err)
	} else {
		set.Capture = device
	}

	if player, err := audio.NewOtoPlayer(audioCfg); err != nil {
		set.PlaybackNote = "take playback disabled: " + err.Error()
		logger.Info("audio playback unavailable", "err", err)
	} else {
		set.Player = player
	}

	return set
}

// Demo returns a fully populated set backed by mock capabilities, for
// trying the booth on machines with no audio hardware.
func Demo() Set {
	return Set{
		Synth:   synthmock.New(),
		Capture: capmock.NewDevice(),
		Player:  audio.NewMockPlayer(),
	}
}
