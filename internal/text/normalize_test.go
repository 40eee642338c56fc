package text

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  hello  world  ", "hello world"},
		{"line one\nline two", "line one line two"},
		{"tab\tseparated", "tab separated"},
		{"\n\n  \t\n", ""},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_DropsControlCharacters(t *testing.T) {
	if got := Normalize("he\x00llo\x07"); got != "hello" {
		t.Errorf("Normalize with control chars = %q, want hello", got)
	}
}

func TestLegible(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"Hello world", true},
		{"Slide 3 of 12", true},
		{"|_~ -- ^^ ||", false},
		{"a.", true},
	}
	for _, tt := range tests {
		if got := Legible(tt.in); got != tt.want {
			t.Errorf("Legible(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
