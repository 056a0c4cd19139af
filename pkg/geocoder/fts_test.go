package geocoder

import "testing"

func TestPrepareFTS(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		autocomplete bool
		expected     string
	}{
		{
			name:     "single token",
			text:     "boston",
			expected: `"boston"`,
		},
		{
			name:     "multiple tokens",
			text:     "new york",
			expected: `"new" "york"`,
		},
		{
			name:     "lowercases tokens",
			text:     "New York",
			expected: `"new" "york"`,
		},
		{
			name:     "punctuation splits tokens",
			text:     "winston-salem, nc",
			expected: `"winston" "salem" "nc"`,
		},
		{
			name:     "fts operators are quoted away",
			text:     `boston OR "drop"`,
			expected: `"boston" "or" "drop"`,
		},
		{
			name:         "autocomplete marks only the last token",
			text:         "new bost",
			autocomplete: true,
			expected:     `"new" "bost"*`,
		},
		{
			name:         "autocomplete single token",
			text:         "bost",
			autocomplete: true,
			expected:     `"bost"*`,
		},
		{
			name:     "diacritics folded",
			text:     "são paulo",
			expected: `"sao" "paulo"`,
		},
		{
			name:     "empty input",
			text:     "",
			expected: "",
		},
		{
			name:     "only punctuation",
			text:     "?!, --",
			expected: "",
		},
		{
			name:         "autocomplete with no tokens",
			text:         "   ",
			autocomplete: true,
			expected:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrepareFTS(tt.text, tt.autocomplete)
			if got != tt.expected {
				t.Errorf("PrepareFTS(%q, %v) = %q, want %q", tt.text, tt.autocomplete, got, tt.expected)
			}
		})
	}
}
