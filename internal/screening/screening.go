// Package screening scores a batch of candidates against one job and narrows
// the ranking down with an ordered list of filters.
package screening

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-scorer/internal/hiring"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/scoring"
	"github.com/spigell/resume-scorer/internal/vocabulary"
)

const defaultConcurrency = 4

// Filter represents a single step applied to a ranking after scoring.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, r *Ranking) (*Ranking, Step, error)
}

// Deps aggregates dependencies shared by scoring and all filtering steps.
type Deps struct {
	Scorer     *scoring.Scorer
	Vocabulary *vocabulary.Vocabulary
	Logger     *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains the screening settings.
type Config struct {
	MinimumScore float64 `mapstructure:"minimum-score" json:"minimum_score"`
	Top          int     `mapstructure:"top" json:"top"`
	Concurrency  int     `mapstructure:"concurrency" json:"concurrency"`
}

// StepStatus represents runtime information about a filter.
type StepStatus struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() StepStatus
}

// Screening runs the scoring of many candidates followed by the filters.
type Screening struct {
	cfg   *Config
	deps  Deps
	steps []Filter
}

// New creates a Screening. Missing dependencies are replaced with defaults:
// a silent scorer, the built-in vocabulary and a no-op logger.
func New(cfg *Config, deps Deps, steps []Filter) *Screening {
	if cfg == nil {
		cfg = &Config{}
	}
	deps.Logger = logger.WithFields(deps.Logger)
	if deps.Scorer == nil {
		deps.Scorer = scoring.NewScorer(deps.Logger, 0)
	}
	if deps.Vocabulary == nil {
		deps.Vocabulary = vocabulary.Default()
	}

	return &Screening{cfg: cfg, deps: deps, steps: steps}
}

// Run scores every candidate, ranks the scored ones and applies the enabled
// filters in order. Candidates whose resume cannot be read or is blank are
// kept in the ranking as invalid instead of failing the batch. Bad weights and
// filter configuration fail before any scoring; cancelling ctx stops the batch.
func (s *Screening) Run(ctx context.Context, job *hiring.Job, weights scoring.Weights, candidates *hiring.Candidates) (*Ranking, error) {
	if job == nil {
		return nil, errors.New("job is required")
	}
	if candidates == nil {
		return nil, errors.New("candidates are required")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	for _, step := range s.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(s.cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	results, err := s.score(ctx, job, weights, candidates)
	if err != nil {
		return nil, err
	}

	ranking := newRanking(job.ID, results)
	s.deps.Logger.Info("candidates scored",
		zap.String(logger.FieldJobID, job.ID),
		zap.Int("screened", ranking.Len()),
		zap.Int("invalid", len(ranking.Rejected)),
	)

	for _, step := range s.steps {
		if !step.IsEnabled() {
			s.deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, s.deps, ranking)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		s.deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		ranking = next
	}

	return ranking, nil
}

func (s *Screening) score(ctx context.Context, job *hiring.Job, weights scoring.Weights, candidates *hiring.Candidates) ([]*Result, error) {
	limit := s.cfg.Concurrency
	if limit <= 0 {
		limit = min(defaultConcurrency, runtime.GOMAXPROCS(0))
	}

	spec := job.Spec()
	results := make([]*Result, candidates.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for idx, candidate := range candidates.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[idx] = s.scoreOne(job.ID, spec, weights, candidate)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("screening interrupted: %w", err)
	}

	return results, nil
}

func (s *Screening) scoreOne(jobID string, spec scoring.JobSpec, weights scoring.Weights, candidate *hiring.Candidate) *Result {
	log := logger.ForCandidate(s.deps.Logger, jobID, candidate.ID)

	input, err := candidate.Input(s.deps.Vocabulary)
	if err != nil {
		log.Warn("candidate resume is not usable", zap.Error(err))
		return &Result{Candidate: candidate, Status: StatusInvalid, Reason: err.Error()}
	}

	breakdown, err := s.deps.Scorer.Score(input, spec, weights)
	if err != nil {
		log.Warn("candidate cannot be scored", zap.Error(err))
		return &Result{Candidate: candidate, Status: StatusInvalid, Reason: err.Error()}
	}

	log.Debug("candidate scored", breakdown.LogFields()...)

	return &Result{
		Candidate:   candidate,
		Status:      StatusScreened,
		Breakdown:   breakdown,
		Explanation: breakdown.Explanation(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []StepStatus {
	statuses := make([]StepStatus, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, StepStatus{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
