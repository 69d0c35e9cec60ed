package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "lowercases and drops stopwords",
			input:  "The Go developer is at HOME",
			expect: []string{"go", "developer", "home"},
		},
		{
			name:   "keeps duplicates in order",
			input:  "React react REACT",
			expect: []string{"react", "react", "react"},
		},
		{
			name:   "splits on punctuation",
			input:  "node.js and react-native",
			expect: []string{"node", "js", "react", "native"},
		},
		{
			name:   "ignores letter runs glued to digits and single letters",
			input:  "co2 levels a b C++ x86",
			expect: []string{"levels"},
		},
		{
			name:   "accented words are not split into fragments",
			input:  "Résumé café naïve",
			expect: []string{},
		},
		{
			name:   "accented word next to plain words",
			input:  "Senior Go engineer, São Paulo",
			expect: []string{"senior", "go", "engineer", "paulo"},
		},
		{
			name:   "non latin scripts and underscores",
			input:  "Разработчик snake_case golang",
			expect: []string{"golang"},
		},
		{
			name:   "empty text",
			input:  "",
			expect: []string{},
		},
		{
			name:   "only stopwords",
			input:  "the and of on",
			expect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Tokenize(tt.input))
		})
	}
}
