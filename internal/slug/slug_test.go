package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Screen Reader Support!", "screen-reader-support"},
		{"collapses runs", "  multiple   spaces--here  ", "multiple-spaces-here"},
		{"underscores", "high_contrast_mode", "high-contrast-mode"},
		{"mixed separators", "one -_ two", "one-two"},
		{"strips punctuation", "D-pad (remappable)?", "d-pad-remappable"},
		{"already slug", "screen-reader-support", "screen-reader-support"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
		{"numbers kept", "WCAG 2.1 AA", "wcag-21-aa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Screen Reader Support!",
		"  multiple   spaces--here  ",
		"___",
		"Déjà vu", // accented characters are stripped, not transliterated
		"tab\tand\nnewline",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "Make should be idempotent for %q", in)
	}
}
