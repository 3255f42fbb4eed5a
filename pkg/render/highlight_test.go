package render

import "testing"

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Don't", "DONT"},
		{"dont", "DONT"},
		{"DON'T,", "DONT"},
		{"  hello  ", "HELLO"},
		{"through.", "THROUGH"},
		{"(through)", "THROUGH"},
		{"snake_case", "SNAKE_CASE"},
		{"42nd", "42ND"},
		{"", ""},
		{"   ", ""},
		{"!?.,", ""},
	}

	for _, tt := range tests {
		if got := NormalizeWord(tt.in); got != tt.want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsHighlighted(t *testing.T) {
	tests := []struct {
		name   string
		word   string
		target string
		want   bool
	}{
		{"exact match", "through", "through", true},
		{"case insensitive", "THROUGH", "through", true},
		{"trailing punctuation on word", "through,", "through", true},
		{"punctuation on target", "through", "through!", true},
		{"apostrophes stripped both sides", "Don't", "DONT", true},
		{"different words", "out", "through", false},
		{"empty target matches nothing", "through", "", false},
		{"whitespace target matches nothing", "through", "   ", false},
		{"punctuation-only target matches nothing", "", "!?", false},
		{"empty word", "", "through", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHighlighted(tt.word, tt.target); got != tt.want {
				t.Fatalf("IsHighlighted(%q, %q) = %v, want %v", tt.word, tt.target, got, tt.want)
			}
		})
	}
}
