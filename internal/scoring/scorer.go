package scoring

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/utils"
)

const defaultMaxLogLength = 200

// Scorer combines the keyword, similarity and experience signals into a final
// score. It holds no per-call state and is safe for concurrent use.
type Scorer struct {
	logger    *zap.Logger
	maxLogLen int
}

// NewScorer creates a Scorer. A nil logger disables logging.
func NewScorer(log *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Scorer{
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// ComputeScore scores a resume against a job without logging.
func ComputeScore(resumeText string, extractedKeywords []string, jobDescription string, requiredKeywords []string, requiredExperienceYears int, weights Weights) (*Breakdown, error) {
	return NewScorer(nil, 0).Score(
		ResumeInput{RawText: resumeText, ExtractedKeywords: extractedKeywords},
		JobSpec{Description: jobDescription, RequiredKeywords: requiredKeywords, RequiredExperienceYears: requiredExperienceYears},
		weights,
	)
}

// Score validates the inputs and produces the breakdown. Invalid inputs fail
// with ErrInvalidInput, bad weights with ErrInvalidConfiguration; nothing is
// computed in either case.
func (s *Scorer) Score(resume ResumeInput, job JobSpec, weights Weights) (*Breakdown, error) {
	if err := validateInputs(resume, job); err != nil {
		return nil, err
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	matched, keywordScore := MatchKeywords(job.RequiredKeywords, resume.ExtractedKeywords)
	s.logger.Debug("scoring stage",
		zap.String(logger.FieldStage, "keywords"),
		zap.Strings("matched_keywords", matched),
		zap.Float64("keyword_score", keywordScore),
	)

	resumeTokens := Tokenize(resume.RawText)
	jobTokens := Tokenize(job.Description)
	similarityScore, ok := similarity(resumeTokens, jobTokens)
	if !ok {
		s.logger.Warn("similarity degraded",
			zap.String("reason", "no comparable terms in resume or job description"),
			zap.Int("resume_tokens", len(resumeTokens)),
			zap.Int("job_tokens", len(jobTokens)),
			zap.Int("resume_length", utf8.RuneCountInString(resume.RawText)),
			zap.String("resume_preview", utils.TruncateForLog(resume.RawText, s.maxLogLen)),
		)
	}
	s.logger.Debug("scoring stage",
		zap.String(logger.FieldStage, "similarity"),
		zap.Float64("similarity_score", similarityScore),
	)

	years := ExtractYears(resume.RawText)
	experienceScore := ExperienceScore(years, job.RequiredExperienceYears)
	s.logger.Debug("scoring stage",
		zap.String(logger.FieldStage, "experience"),
		zap.Int("experience_years", years),
		zap.Int("required_years", job.RequiredExperienceYears),
		zap.Float64("experience_score", experienceScore),
	)

	// The education weight has no signal behind it yet.
	final := weights.Keywords*keywordScore +
		weights.Similarity*similarityScore +
		weights.Experience*experienceScore

	percent := final * 100
	if percent > 100 {
		s.logger.Debug("final score capped",
			zap.Float64("raw_score", percent),
			zap.Float64("weights_sum", weights.Sum()),
		)
		percent = 100
	}

	breakdown := &Breakdown{
		KeywordScore:    keywordScore,
		SimilarityScore: similarityScore,
		ExperienceScore: experienceScore,
		ExperienceYears: years,
		MatchedKeywords: matched,
		Weights:         weights,
		FinalScore:      roundTo(percent, 2),
	}

	s.logger.Debug("scoring stage", append([]zap.Field{zap.String(logger.FieldStage, "aggregate")}, breakdown.LogFields()...)...)

	return breakdown, nil
}

func validateInputs(resume ResumeInput, job JobSpec) error {
	if strings.TrimSpace(resume.RawText) == "" {
		return fmt.Errorf("%w: resume text is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(job.Description) == "" {
		return fmt.Errorf("%w: job description is empty", ErrInvalidInput)
	}
	if job.RequiredExperienceYears < 0 {
		return fmt.Errorf("%w: required experience must be >= 0, got %d", ErrInvalidInput, job.RequiredExperienceYears)
	}
	return nil
}

// roundTo rounds the exact decimal value of v, so 2.675 (stored as
// 2.67499...) becomes 2.67 and exact ties go to the even digit.
func roundTo(v float64, places int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
