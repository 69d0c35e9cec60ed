package scoring

import (
	"regexp"
	"strconv"
)

// experienceNormalization is the number of surplus years that saturates the
// experience score.
const experienceNormalization = 5

// DefaultRequiredExperienceYears applies to job records that state no requirement.
const DefaultRequiredExperienceYears = 3

// experiencePattern allows any Unicode space between the number and the unit,
// since text extracted from PDFs often carries no-break spaces there. Only ASCII
// digits are read as the number.
var experiencePattern = regexp.MustCompile(`(?i)([0-9]+)[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*(?:years|yrs|year)`)

// ExtractYears returns the number in the first "<N> years|yrs|year" phrase of
// text, or 0 when there is none. Later phrases are ignored even if larger.
func ExtractYears(text string) int {
	match := experiencePattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}

	years, err := strconv.Atoi(match[1])
	if err != nil {
		// overflow
		return 0
	}
	return years
}

// ExperienceScore maps the surplus over the requirement onto [0,1]: meeting the
// requirement exactly gives 0, five or more extra years give 1.
func ExperienceScore(years, required int) float64 {
	return clamp01(float64(years-required) / experienceNormalization)
}
