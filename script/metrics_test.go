package script

import (
	"testing"
	"time"
)

// TestWordCount tests word counting on whitespace-delimited scripts.
func TestWordCount(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		expected int
	}{
		{
			name:     "empty script",
			script:   "",
			expected: 0,
		},
		{
			name:     "whitespace only",
			script:   "  \t\n  ",
			expected: 0,
		},
		{
			name:     "single word",
			script:   "Hello",
			expected: 1,
		},
		{
			name:     "two words",
			script:   "Hello world",
			expected: 2,
		},
		{
			name:     "leading and trailing whitespace",
			script:   "  Hello world  ",
			expected: 2,
		},
		{
			name:     "multiple spaces between words",
			script:   "one   two\t\tthree",
			expected: 3,
		},
		{
			name:     "newlines between words",
			script:   "line one\nline two\n",
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordCount(tt.script); got != tt.expected {
				t.Errorf("WordCount(%q) = %d, want %d", tt.script, got, tt.expected)
			}
		})
	}
}

// TestEstimateSeconds tests the spoken-duration estimate formatting.
func TestEstimateSeconds(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		rate     float64
		expected string
	}{
		{
			name:     "two words at normal rate",
			words:    2,
			rate:     1.0,
			expected: "2.0",
		},
		{
			name:     "zero rate yields zero",
			words:    10,
			rate:     0,
			expected: "0.0",
		},
		{
			name:     "faster rate shortens estimate",
			words:    3,
			rate:     2.0,
			expected: "1.5",
		},
		{
			name:     "slow rate lengthens estimate",
			words:    1,
			rate:     0.5,
			expected: "2.0",
		},
		{
			name:     "no words",
			words:    0,
			rate:     1.0,
			expected: "0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateSeconds(tt.words, tt.rate); got != tt.expected {
				t.Errorf("EstimateSeconds(%d, %v) = %q, want %q", tt.words, tt.rate, got, tt.expected)
			}
		})
	}
}

// TestFormatTakeDuration tests M:SS formatting of take durations.
func TestFormatTakeDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "zero",
			duration: 0,
			expected: "0:00",
		},
		{
			name:     "under ten seconds",
			duration: 7 * time.Second,
			expected: "0:07",
		},
		{
			name:     "exactly one minute",
			duration: time.Minute,
			expected: "1:00",
		},
		{
			name:     "two minutes five seconds",
			duration: 125 * time.Second,
			expected: "2:05",
		},
		{
			name:     "125000 milliseconds",
			duration: 125000 * time.Millisecond,
			expected: "2:05",
		},
		{
			name:     "rounds sub-second remainder",
			duration: 4*time.Second + 600*time.Millisecond,
			expected: "0:05",
		},
		{
			name:     "negative clamps to zero",
			duration: -3 * time.Second,
			expected: "0:00",
		},
		{
			name:     "over an hour keeps minute form",
			duration: 61*time.Minute + 9*time.Second,
			expected: "61:09",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTakeDuration(tt.duration); got != tt.expected {
				t.Errorf("FormatTakeDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
			}
		})
	}
}

// TestProfileByID tests catalog lookup with fallback to the default.
func TestProfileByID(t *testing.T) {
	if got := ProfileByID("documentary"); got.ID != "documentary" {
		t.Errorf("ProfileByID(documentary).ID = %q, want documentary", got.ID)
	}

	if got := ProfileByID("no-such-profile"); got.ID != Profiles[0].ID {
		t.Errorf("unknown profile should fall back to first, got %q", got.ID)
	}
}
