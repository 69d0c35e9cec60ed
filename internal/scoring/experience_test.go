package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{name: "first match wins", input: "5 years of Java, then 3 years of Go", expect: 5},
		{name: "first match wins even if smaller", input: "2 years at Acme and 10 years overall", expect: 2},
		{name: "abbreviation without space", input: "Backend dev, 10yrs", expect: 10},
		{name: "singular", input: "1 Year in support", expect: 1},
		{name: "uppercase", input: "7 YEARS OF RUST", expect: 7},
		{name: "embedded sentence", input: "Experienced engineer with 6 years of experience in backend systems", expect: 6},
		{name: "no-break space before unit", input: "5\u00a0years of Go", expect: 5},
		{name: "narrow no-break space and tab", input: "Backend, 8\u202f\tyrs", expect: 8},
		{name: "ideographic space", input: "4\u3000years", expect: 4},
		{name: "no pattern", input: "Senior engineer with strong Go skills", expect: 0},
		{name: "number without unit", input: "version 3 of the API", expect: 0},
		{name: "empty", input: "", expect: 0},
		{name: "overflowing number", input: "99999999999999999999 years", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, ExtractYears(tt.input))
		})
	}
}

func TestExperienceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		years    int
		required int
		expect   float64
	}{
		{name: "three years over requirement", years: 6, required: 3, expect: 0.6},
		{name: "meets requirement exactly", years: 3, required: 3, expect: 0},
		{name: "shortfall floors at zero", years: 1, required: 3, expect: 0},
		{name: "saturates at five surplus years", years: 8, required: 3, expect: 1},
		{name: "far beyond", years: 20, required: 3, expect: 1},
		{name: "no requirement", years: 2, required: 0, expect: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expect, ExperienceScore(tt.years, tt.required), 1e-12)
		})
	}
}
