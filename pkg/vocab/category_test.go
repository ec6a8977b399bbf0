package vocab

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name       string
		term       string
		definition string
		topic      string
		want       string
	}{
		{
			name:       "keyword cascade hit in term",
			term:       "Sorting Algorithm",
			definition: "Puts items in order.",
			topic:      "Computer Science",
			want:       "algorithm",
		},
		{
			name:       "keyword cascade hit in definition",
			term:       "Scrum",
			definition: "A framework for agile development.",
			topic:      "Software",
			want:       "framework",
		},
		{
			name:       "cascade priority order",
			term:       "X",
			definition: "An algorithm and a method combined.",
			topic:      "Math",
			want:       "algorithm",
		},
		{
			name:       "topic domain fallback",
			term:       "Mitosis",
			definition: "Cell division producing two identical cells.",
			topic:      "Biology",
			want:       "science",
		},
		{
			name:       "multi word generic fallback",
			term:       "Sunk Cost",
			definition: "Money already spent.",
			topic:      "Everyday Life",
			want:       "multi-word-concept",
		},
		{
			name:       "long single word fallback",
			term:       "Antidisestablishmentarianism",
			definition: "Opposition to disestablishment.",
			topic:      "Everyday Life",
			want:       "long-term",
		},
		{
			name:       "general fallback",
			term:       "Apple",
			definition: "A fruit.",
			topic:      "Everyday Life",
			want:       "general",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.term, tt.definition, tt.topic); got != tt.want {
				t.Errorf("Categorize() = %q, want %q", got, tt.want)
			}
		})
	}
}
