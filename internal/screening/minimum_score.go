package screening

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"
)

type minimumScoreFilter struct {
	disabled  bool
	reason    string
	threshold float64
}

// NewMinimumScore creates a filter that rejects candidates scoring below
// the configured minimum-score.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.threshold = 0
	if cfg != nil {
		f.threshold = cfg.MinimumScore
	}
	if math.IsNaN(f.threshold) || f.threshold < 0 || f.threshold > 100 {
		return fmt.Errorf("minimum score must be within 0..100, got %v", f.threshold)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, r *Ranking) (*Ranking, Step, error) {
	initial := r.Len()
	if f.threshold == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	var below []string
	for _, result := range r.Items {
		if result.Score() < f.threshold {
			below = append(below, result.Candidate.ID)
		}
	}

	excluded := r.Exclude(below, fmt.Sprintf("score below %.2f", f.threshold))
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("rejecting candidates below minimum score",
			zap.Float64("threshold", f.threshold),
			zap.Strings("rejected_candidates", excluded),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() StepStatus {
	return StepStatus{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"threshold": strconv.FormatFloat(f.threshold, 'f', 2, 64)},
	}
}
