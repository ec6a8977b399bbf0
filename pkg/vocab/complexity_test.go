package vocab

import "testing"

func TestEstimateComplexity(t *testing.T) {
	tests := []struct {
		name       string
		definition string
		want       Complexity
	}{
		{
			name:       "short plain definition",
			definition: "A small furry animal kept as a pet.",
			want:       ComplexityBeginner,
		},
		{
			name:       "empty definition",
			definition: "",
			want:       ComplexityBeginner,
		},
		{
			name:       "medium length definition",
			definition: "A way of telling a story where the events are not shown in the order they took place in the real world at all",
			want:       ComplexityIntermediate,
		},
		{
			name:       "long definition",
			definition: "A process in which a group of people work together over a long period of time to reach a shared goal while each person keeps track of the small tasks that they own and reports back on them",
			want:       ComplexityAdvanced,
		},
		{
			name:       "technical keyword",
			definition: "A stochastic process used in sampling.",
			want:       ComplexityAdvanced,
		},
		{
			name:       "long average word length",
			definition: "Electroencephalography measurements characterize neurophysiological abnormalities",
			want:       ComplexityAdvanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateComplexity(tt.definition); got != tt.want {
				t.Errorf("EstimateComplexity(%q) = %v, want %v", tt.definition, got, tt.want)
			}
		})
	}
}
