package screening

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

type topFilter struct {
	disabled bool
	reason   string
	limit    int
}

// NewTop creates a filter that keeps only the best `top` candidates.
// A limit of 0 keeps everyone.
func NewTop() Filter {
	return &topFilter{}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *topFilter) IsEnabled() bool { return !f.disabled }

func (f *topFilter) Validate(cfg *Config) error {
	f.limit = 0
	if cfg != nil {
		f.limit = cfg.Top
	}
	if f.limit < 0 {
		return fmt.Errorf("top must be >= 0, got %d", f.limit)
	}
	return nil
}

func (f *topFilter) Apply(_ context.Context, deps Deps, r *Ranking) (*Ranking, Step, error) {
	initial := r.Len()
	if f.limit == 0 || r.Len() <= f.limit {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	r.Sort()
	cut := make([]string, 0, r.Len()-f.limit)
	for _, result := range r.Items[f.limit:] {
		cut = append(cut, result.Candidate.ID)
	}

	excluded := r.Exclude(cut, fmt.Sprintf("not in top %d", f.limit))
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("keeping only top candidates",
			zap.Int("top", f.limit),
			zap.Strings("rejected_candidates", excluded),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *topFilter) Status() StepStatus {
	return StepStatus{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"top": strconv.Itoa(f.limit)},
	}
}
