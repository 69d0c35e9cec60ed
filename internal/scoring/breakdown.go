package scoring

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// JobSpec is the part of a job record the scorer reads.
type JobSpec struct {
	Description             string
	RequiredKeywords        []string
	RequiredExperienceYears int
}

// ResumeInput is the plain text of a resume plus the keywords the extraction
// collaborator found in it.
type ResumeInput struct {
	RawText           string
	ExtractedKeywords []string
}

// Breakdown explains how a final score was composed. Every intermediate value
// is kept so that the result can be stored and audited as is.
type Breakdown struct {
	KeywordScore    float64  `json:"keyword_score"`
	SimilarityScore float64  `json:"similarity_score"`
	ExperienceScore float64  `json:"experience_score"`
	ExperienceYears int      `json:"experience_years"`
	MatchedKeywords []string `json:"matched_keywords"`
	Weights         Weights  `json:"weights"`
	FinalScore      float64  `json:"final_score"`
}

// Explanation renders the breakdown as a single human-readable sentence.
func (b *Breakdown) Explanation() string {
	return fmt.Sprintf("Matched keywords: [%s]. Similarity=%.2f. Experience ≈ %d yrs → score +%.2f",
		strings.Join(b.MatchedKeywords, ", "),
		b.SimilarityScore,
		b.ExperienceYears,
		b.ExperienceScore,
	)
}

// LogFields returns the breakdown as structured log fields.
func (b *Breakdown) LogFields() []zap.Field {
	return []zap.Field{
		zap.Float64("final_score", b.FinalScore),
		zap.Float64("keyword_score", b.KeywordScore),
		zap.Float64("similarity_score", b.SimilarityScore),
		zap.Float64("experience_score", b.ExperienceScore),
		zap.Int("experience_years", b.ExperienceYears),
		zap.Strings("matched_keywords", b.MatchedKeywords),
	}
}
