// Package espeak implements the speech.Synthesizer capability on top of
// the espeak-ng (or espeak) command line tool.
package espeak

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/voxlabs/voxbooth/speech"
)

// candidate binaries, in preference order.
var binaries = []string{"espeak-ng", "espeak"}

// Synthesizer shells out to espeak for voice enumeration and playback.
// One utterance runs at a time; Cancel kills the process.
type Synthesizer struct {
	binary string
	logger *log.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
}

// New locates an espeak binary. Absence of the binary means the speech
// capability is unsupported on this system.
func New(logger *log.Logger) (*Synthesizer, error) {
	if logger == nil {
		logger = log.Default()
	}
	for _, bin := range binaries {
		if path, err := exec.LookPath(bin); err == nil {
			return &Synthesizer{
				binary: path,
				logger: logger.With("component", "espeak"),
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: install espeak-ng or espeak", speech.ErrUnsupported)
}

// Voices enumerates voices via `espeak --voices`.
func (s *Synthesizer) Voices() ([]speech.Voice, error) {
	out, err := exec.Command(s.binary, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}
	return parseVoices(out), nil
}

// NotifyVoicesChanged registers a change listener. The espeak voice set
// is fixed for the life of the process, so the listener never fires.
func (s *Synthesizer) NotifyVoicesChanged(func()) func() {
	return func() {}
}

// Speak starts an espeak process for the utterance. OnStart fires once
// the process is running; OnEnd fires when it exits cleanly. A cancelled
// utterance reports nothing.
func (s *Synthesizer) Speak(u speech.Utterance, ev speech.Events) error {
	cmd := exec.Command(s.binary, speakArgs(u)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting espeak: %w", err)
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	if ev.OnStart != nil {
		ev.OnStart()
	}

	go func() {
		err := cmd.Wait()

		s.mu.Lock()
		cancelled := s.cmd != cmd
		if !cancelled {
			s.cmd = nil
		}
		s.mu.Unlock()

		if cancelled {
			return
		}
		if err != nil {
			s.logger.Warn("espeak exited with error", "err", err)
			if ev.OnError != nil {
				ev.OnError(fmt.Errorf("%w: %v", speech.ErrSpeakFailed, err))
			}
			return
		}
		if ev.OnEnd != nil {
			ev.OnEnd()
		}
	}()

	return nil
}

// speakArgs builds the espeak argument list for an utterance. espeak
// pitch is 0-99 with 50 as neutral, so the 2.0 multiplier ceiling maps
// to 99, not 100; rate is words per minute with 175 as the usual
// default.
func speakArgs(u speech.Utterance) []string {
	pitch := int(u.Pitch * 50)
	if pitch > 99 {
		pitch = 99
	}
	args := []string{
		"-p", strconv.Itoa(pitch),
		"-s", fmt.Sprintf("%.0f", u.Rate*175),
	}
	if u.Voice != "" {
		args = append(args, "-v", u.Voice)
	}
	return append(args, u.Text)
}

// Cancel kills the in-flight espeak process, if any.
func (s *Synthesizer) Cancel() {
	s.mu.Lock()
	cmd := s.cmd
	s.cmd = nil
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

// parseVoices parses the table printed by `espeak --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  af              --/M      Afrikaans          gmw/af
//	 5  en-US           --/M      English_(America)  gmw/en-US
//
// The language column becomes the voice's language tag; the file column
// (espeak's voice identifier) becomes the selectable name.
func parseVoices(out []byte) []speech.Voice {
	var voices []speech.Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false // header row
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		voices = append(voices, speech.Voice{
			Name:     fields[4],
			Language: fields[1],
		})
	}
	return voices
}
