package hiring

import (
	"fmt"

	"github.com/spigell/resume-scorer/internal/scoring"
)

// Job is a job opening as stored by the recruitment back-end.
type Job struct {
	ID                      string   `mapstructure:"id" json:"id,omitempty"`
	Title                   string   `mapstructure:"title" json:"title,omitempty"`
	Description             string   `mapstructure:"description" json:"description" validate:"required"`
	RequiredKeywords        []string `mapstructure:"required_keywords" json:"required_keywords"`
	RequiredExperienceYears int      `mapstructure:"required_experience_years" json:"required_experience_years" validate:"gte=0"`
}

// LoadJob reads a job record. A record without required_experience_years
// requires scoring.DefaultRequiredExperienceYears.
func LoadJob(path string) (*Job, error) {
	v, err := readFile(path, map[string]any{
		"required_experience_years": scoring.DefaultRequiredExperienceYears,
	})
	if err != nil {
		return nil, err
	}

	var job Job
	if err := v.Unmarshal(&job); err != nil {
		return nil, fmt.Errorf("decoding job %q: %w", path, err)
	}

	if err := validate.Struct(&job); err != nil {
		return nil, validationError("job", err)
	}

	if job.ID == "" {
		job.ID = job.Title
	}

	return &job, nil
}

// Spec returns the part of the job the scorer reads.
func (j *Job) Spec() scoring.JobSpec {
	return scoring.JobSpec{
		Description:             j.Description,
		RequiredKeywords:        append([]string(nil), j.RequiredKeywords...),
		RequiredExperienceYears: j.RequiredExperienceYears,
	}
}
