package vocab

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "already clean",
			in:   "Machine Learning",
			want: "Machine Learning",
		},
		{
			name: "lowercase input",
			in:   "machine learning",
			want: "Machine Learning",
		},
		{
			name: "surrounding whitespace",
			in:   "  neural   network  ",
			want: "Neural Network",
		},
		{
			name: "trailing punctuation",
			in:   "recursion.",
			want: "Recursion",
		},
		{
			name: "trailing quotes",
			in:   `"gradient descent"`,
			want: "Gradient Descent",
		},
		{
			name: "hyphen preserved",
			in:   "self-attention",
			want: "Self-attention",
		},
		{
			name: "markup characters stripped",
			in:   "API (v2)!",
			want: "Api V2",
		},
		{
			name: "empty",
			in:   "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Machine Learning",
		"  machine   learning!! ",
		`'quoted term'`,
		"self-supervised learning...",
		"UPPER CASE TERM",
		"mixedCase with [brackets]",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeKeyCollision(t *testing.T) {
	if NormalizeKey("Machine Learning") != NormalizeKey("machine learning") {
		t.Error("expected case variants to share a normalized key")
	}
}

func TestTopicKey(t *testing.T) {
	if TopicKey("  Blockchain ") != "blockchain" {
		t.Errorf("TopicKey = %q, want %q", TopicKey("  Blockchain "), "blockchain")
	}
	if TopicKey("MACHINE   LEARNING") != "machine learning" {
		t.Errorf("TopicKey = %q, want %q", TopicKey("MACHINE   LEARNING"), "machine learning")
	}
}
