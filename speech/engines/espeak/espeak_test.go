package espeak

import (
	"testing"

	"github.com/voxlabs/voxbooth/speech"
)

// TestSpeakArgsPitchRange tests that the pitch multiplier maps into
// espeak's 0-99 range; the clamped maximum of 2.0 must not produce 100.
func TestSpeakArgsPitchRange(t *testing.T) {
	tests := []struct {
		name  string
		pitch float64
		want  string
	}{
		{name: "neutral", pitch: 1.0, want: "50"},
		{name: "minimum", pitch: 0.5, want: "25"},
		{name: "maximum", pitch: 2.0, want: "99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := speakArgs(speech.Utterance{Text: "hi", Pitch: tt.pitch, Rate: 1.0})
			if len(args) < 2 || args[0] != "-p" {
				t.Fatalf("speakArgs = %v, want leading -p flag", args)
			}
			if args[1] != tt.want {
				t.Errorf("pitch arg = %q, want %q", args[1], tt.want)
			}
		})
	}
}

// TestSpeakArgsVoice tests that a selected voice lands in the argument
// list and the text stays last.
func TestSpeakArgsVoice(t *testing.T) {
	args := speakArgs(speech.Utterance{Text: "hello", Pitch: 1.0, Rate: 1.0, Voice: "gmw/en-US"})

	foundVoice := false
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-v" && args[i+1] == "gmw/en-US" {
			foundVoice = true
		}
	}
	if !foundVoice {
		t.Errorf("speakArgs = %v, want -v gmw/en-US", args)
	}
	if args[len(args)-1] != "hello" {
		t.Errorf("last arg = %q, want the utterance text", args[len(args)-1])
	}
}

// captured from `espeak-ng --voices`, trimmed.
const voicesFixture = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-US           --/M      English_(America)  gmw/en-US
 2  en-GB           --/M      English_(Great_Britain) gmw/en
 5  fr-FR           --/M      French_(France)    roa/fr
`

// TestParseVoices tests voice-table parsing against a captured fixture.
func TestParseVoices(t *testing.T) {
	voices := parseVoices([]byte(voicesFixture))

	if len(voices) != 4 {
		t.Fatalf("parsed %d voices, want 4", len(voices))
	}

	tests := []struct {
		index    int
		name     string
		language string
	}{
		{0, "gmw/af", "af"},
		{1, "gmw/en-US", "en-US"},
		{2, "gmw/en", "en-GB"},
		{3, "roa/fr", "fr-FR"},
	}

	for _, tt := range tests {
		v := voices[tt.index]
		if v.Name != tt.name {
			t.Errorf("voice %d name = %q, want %q", tt.index, v.Name, tt.name)
		}
		if v.Language != tt.language {
			t.Errorf("voice %d language = %q, want %q", tt.index, v.Language, tt.language)
		}
	}
}

// TestParseVoicesEmptyOutput tests resilience against header-only and
// malformed output.
func TestParseVoicesEmptyOutput(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{name: "empty", out: ""},
		{name: "header only", out: "Pty Language Age/Gender VoiceName File Other\n"},
		{name: "short row", out: "Pty Language Age/Gender VoiceName File\n 5 af\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if voices := parseVoices([]byte(tt.out)); len(voices) != 0 {
				t.Errorf("parsed %d voices, want 0", len(voices))
			}
		})
	}
}
