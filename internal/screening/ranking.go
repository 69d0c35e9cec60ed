package screening

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spigell/resume-scorer/internal/hiring"
	"github.com/spigell/resume-scorer/internal/scoring"
)

// Status is the screening outcome of a candidate.
type Status string

const (
	// StatusScreened marks a scored candidate still in the ranking.
	StatusScreened Status = "screened"
	// StatusRejected marks a scored candidate dropped by a filter.
	StatusRejected Status = "rejected"
	// StatusInvalid marks a candidate whose resume could not be scored.
	StatusInvalid Status = "invalid"
)

// Result is the outcome for one candidate.
type Result struct {
	Candidate   *hiring.Candidate  `json:"candidate"`
	Status      Status             `json:"status"`
	Reason      string             `json:"reason,omitempty"`
	Breakdown   *scoring.Breakdown `json:"breakdown,omitempty"`
	Explanation string             `json:"explanation,omitempty"`
}

// Score returns the final score, or 0 for unscored candidates.
func (r *Result) Score() float64 {
	if r.Breakdown == nil {
		return 0
	}
	return r.Breakdown.FinalScore
}

// Ranking holds the shortlisted candidates, best first, and everyone else.
type Ranking struct {
	JobID    string    `json:"job_id"`
	Items    []*Result `json:"shortlisted"`
	Rejected []*Result `json:"rejected"`
}

func newRanking(jobID string, results []*Result) *Ranking {
	r := &Ranking{JobID: jobID, Items: make([]*Result, 0, len(results)), Rejected: make([]*Result, 0)}
	for _, result := range results {
		if result.Status == StatusScreened {
			r.Items = append(r.Items, result)
			continue
		}
		r.Rejected = append(r.Rejected, result)
	}
	r.Sort()
	return r
}

// Sort orders the shortlist by final score, highest first, and by candidate
// ID on ties so that equal inputs always produce the same order.
func (r *Ranking) Sort() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		a, b := r.Items[i], r.Items[j]
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		return a.Candidate.ID < b.Candidate.ID
	})
}

// Len returns the number of shortlisted candidates.
func (r *Ranking) Len() int {
	return len(r.Items)
}

// FindByID looks the candidate up in the shortlist and among the rejected.
func (r *Ranking) FindByID(id string) *Result {
	for _, result := range r.Items {
		if result.Candidate.ID == id {
			return result
		}
	}
	for _, result := range r.Rejected {
		if result.Candidate.ID == id {
			return result
		}
	}
	return nil
}

// Exclude moves shortlisted candidates with the given IDs to the rejected list.
// It preserves the order of the remaining candidates and returns the moved IDs.
func (r *Ranking) Exclude(ids []string, reason string) []string {
	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	var excluded []string
	kept := r.Items[:0]
	for _, result := range r.Items {
		if _, ok := targets[result.Candidate.ID]; !ok {
			kept = append(kept, result)
			continue
		}
		result.Status = StatusRejected
		result.Reason = reason
		r.Rejected = append(r.Rejected, result)
		excluded = append(excluded, result.Candidate.ID)
	}
	r.Items = kept

	return excluded
}

// IDs returns the shortlisted candidate IDs in ranking order.
func (r *Ranking) IDs() []string {
	ids := make([]string, 0, len(r.Items))
	for _, result := range r.Items {
		ids = append(ids, result.Candidate.ID)
	}
	return ids
}

// Report summarizes the shortlist for humans, one entry per candidate in
// ranking order.
func (r *Ranking) Report() []map[string]string {
	report := make([]map[string]string, 0, len(r.Items))
	for idx, result := range r.Items {
		report = append(report, map[string]string{
			"rank":             fmt.Sprintf("%d", idx+1),
			"candidate":        result.Candidate.Label(),
			"score":            fmt.Sprintf("%.2f", result.Score()),
			"matched keywords": strings.Join(result.Breakdown.MatchedKeywords, ", "),
			"explanation":      result.Explanation,
		})
	}
	return report
}

// DumpToTmpFile writes the whole ranking as indented JSON to a new temporary
// file and returns its name.
func (r *Ranking) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "screening_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
