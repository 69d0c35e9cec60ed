package hiring

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spigell/resume-scorer/internal/scoring"
	"github.com/spigell/resume-scorer/internal/source"
	"github.com/spigell/resume-scorer/internal/vocabulary"
)

// Candidate is an applicant with a resume given inline or as a text file.
// Keywords, when present, replace vocabulary extraction.
type Candidate struct {
	ID         string   `mapstructure:"id" json:"id" validate:"required"`
	Name       string   `mapstructure:"name" json:"name,omitempty"`
	Email      string   `mapstructure:"email" json:"email,omitempty" validate:"omitempty,email"`
	ResumeFile string   `mapstructure:"resume_file" json:"resume_file,omitempty" validate:"required_without=ResumeText"`
	ResumeText string   `mapstructure:"resume_text" json:"-"`
	Keywords   []string `mapstructure:"keywords" json:"keywords,omitempty"`
}

// Candidates is the content of a candidates file.
type Candidates struct {
	Items []*Candidate `mapstructure:"candidates" validate:"required,min=1,dive,required"`
}

// LoadCandidates reads a candidates file. Relative resume paths are resolved
// against the directory of the file.
func LoadCandidates(path string) (*Candidates, error) {
	v, err := readFile(path, nil)
	if err != nil {
		return nil, err
	}

	var candidates Candidates
	if err := v.Unmarshal(&candidates); err != nil {
		return nil, fmt.Errorf("decoding candidates %q: %w", path, err)
	}

	if err := validate.Struct(&candidates); err != nil {
		return nil, validationError("candidates", err)
	}

	seen := make(map[string]struct{}, len(candidates.Items))
	base := filepath.Dir(path)
	for _, c := range candidates.Items {
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("invalid candidates: duplicate id %q", c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.ResumeFile != "" && !filepath.IsAbs(c.ResumeFile) {
			c.ResumeFile = filepath.Join(base, c.ResumeFile)
		}
	}

	return &candidates, nil
}

// Len returns the number of candidates.
func (c *Candidates) Len() int {
	return len(c.Items)
}

// Input loads the resume text and resolves its keywords. A blank resume is
// reported as scoring.ErrInvalidInput.
func (c *Candidate) Input(vocab *vocabulary.Vocabulary) (scoring.ResumeInput, error) {
	text, err := source.Load(source.Source{
		Name:  fmt.Sprintf("resume of candidate %s", c.ID),
		Value: c.ResumeText,
		File:  c.ResumeFile,
	})
	if err != nil {
		if errors.Is(err, source.ErrEmpty) {
			return scoring.ResumeInput{}, fmt.Errorf("%w: %s", scoring.ErrInvalidInput, err)
		}
		return scoring.ResumeInput{}, err
	}

	keywords := c.Keywords
	if len(keywords) == 0 && vocab != nil {
		keywords = vocab.Extract(text)
	}

	return scoring.ResumeInput{
		RawText:           text,
		ExtractedKeywords: keywords,
	}, nil
}

// Label returns a short description for logs and menus.
func (c *Candidate) Label() string {
	parts := []string{c.ID}
	if name := strings.TrimSpace(c.Name); name != "" {
		parts = append(parts, name)
	}
	if email := strings.TrimSpace(c.Email); email != "" {
		parts = append(parts, email)
	}
	return strings.Join(parts, " / ")
}
