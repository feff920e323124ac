package media

import (
	"strings"
	"testing"
)

func TestClipBasename(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Buzzer Beater Three!", "buzzer-beater-three"},
		{"A very long highlight title that keeps going", "a-very-long-highligh"},
		{"///", "highlight"},
		{"Goal #3 (overtime)", "goal-3-overtime"},
	}

	for _, tt := range tests {
		got := clipBasename(tt.title)

		parts := strings.Split(got, "-")
		suffix := parts[len(parts)-1]
		if len(suffix) != 8 {
			t.Errorf("clipBasename(%q): expected 8-char unique suffix, got %q", tt.title, got)
		}

		prefix := strings.TrimSuffix(got, "-"+suffix)
		if prefix != tt.expected {
			t.Errorf("clipBasename(%q) = %q, expected prefix %q", tt.title, prefix, tt.expected)
		}
	}
}

func TestClipBasenameUnique(t *testing.T) {
	a := clipBasename("Same Title")
	b := clipBasename("Same Title")
	if a == b {
		t.Error("expected unique basenames for identical titles")
	}
}
