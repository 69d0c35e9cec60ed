package screening

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-scorer/internal/hiring"
	"github.com/spigell/resume-scorer/internal/scoring"
	"github.com/spigell/resume-scorer/internal/vocabulary"
)

func testJob() *hiring.Job {
	return &hiring.Job{
		ID:                      "backend-42",
		Title:                   "Backend Engineer",
		Description:             "Go backend engineer building distributed systems on Kubernetes",
		RequiredKeywords:        []string{"go", "kubernetes", "docker", "postgresql"},
		RequiredExperienceYears: 3,
	}
}

func testCandidates() *hiring.Candidates {
	return &hiring.Candidates{Items: []*hiring.Candidate{
		{ID: "carol", ResumeText: "Frontend developer, React and CSS, 2 years"},
		{ID: "alice", ResumeText: "Go backend engineer, 8 years of distributed systems, Kubernetes, Docker, PostgreSQL"},
		{ID: "ghost", ResumeText: "   "},
		{ID: "bob", ResumeText: "Backend engineer with 5 years of Go and Docker"},
	}}
}

func newTestScreening(cfg *Config, core zapcore.Core, steps ...Filter) *Screening {
	log := zap.New(core)
	return New(cfg, Deps{
		Scorer:     scoring.NewScorer(log, 0),
		Vocabulary: vocabulary.New([]string{"go", "kubernetes", "docker", "postgresql", "react", "css"}),
		Logger:     log,
	}, steps)
}

func TestRunRanksCandidates(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	s := newTestScreening(&Config{Concurrency: 2}, core)

	ranking, err := s.Run(context.Background(), testJob(), scoring.DefaultWeights(), testCandidates())
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "carol"}, ranking.IDs())
	require.Len(t, ranking.Rejected, 1)
	assert.Equal(t, "ghost", ranking.Rejected[0].Candidate.ID)
	assert.Equal(t, StatusInvalid, ranking.Rejected[0].Status)
	assert.Contains(t, ranking.Rejected[0].Reason, "invalid input")

	alice := ranking.FindByID("alice")
	require.NotNil(t, alice)
	assert.Equal(t, StatusScreened, alice.Status)
	assert.Equal(t, []string{"docker", "go", "kubernetes", "postgresql"}, alice.Breakdown.MatchedKeywords)
	assert.Equal(t, 8, alice.Breakdown.ExperienceYears)
	assert.Equal(t, alice.Breakdown.Explanation(), alice.Explanation)

	for i := 1; i < ranking.Len(); i++ {
		assert.GreaterOrEqual(t, ranking.Items[i-1].Score(), ranking.Items[i].Score())
	}

	scored := observed.FilterMessage("candidates scored").All()
	require.Len(t, scored, 1)
	assert.EqualValues(t, 3, scored[0].ContextMap()["screened"])
	assert.EqualValues(t, 1, scored[0].ContextMap()["invalid"])
}

func TestRunAppliesFilters(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	steps := []Filter{NewMinimumScore(), NewTop()}
	s := newTestScreening(&Config{MinimumScore: 10, Top: 1}, core, steps...)

	ranking, err := s.Run(context.Background(), testJob(), scoring.DefaultWeights(), testCandidates())
	require.NoError(t, err)

	assert.Equal(t, []string{"alice"}, ranking.IDs())

	carol := ranking.FindByID("carol")
	require.NotNil(t, carol)
	assert.Equal(t, StatusRejected, carol.Status)
	assert.Equal(t, "score below 10.00", carol.Reason)

	bob := ranking.FindByID("bob")
	require.NotNil(t, bob)
	assert.Equal(t, StatusRejected, bob.Status)
	assert.Equal(t, "not in top 1", bob.Reason)

	stepLogs := observed.FilterMessage("filter step").All()
	require.Len(t, stepLogs, 2)
	assert.Equal(t, "minimum_score", stepLogs[0].ContextMap()["name"])
	assert.EqualValues(t, 1, stepLogs[0].ContextMap()["dropped"])
	assert.Equal(t, "top", stepLogs[1].ContextMap()["name"])
	assert.EqualValues(t, 1, stepLogs[1].ContextMap()["left"])

	statuses := Describe(steps)
	require.Len(t, statuses, 2)
	assert.Equal(t, "10.00", statuses[0].Details["threshold"])
	assert.Equal(t, "1", statuses[1].Details["top"])
}

func TestRunSkipsDisabledFilters(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	steps := []Filter{NewMinimumScore(), NewTop()}
	DisableByName(steps, "top", "disabled via flag")

	// A negative top would fail validation if the filter were enabled.
	s := newTestScreening(&Config{Top: -1}, core, steps...)

	ranking, err := s.Run(context.Background(), testJob(), scoring.DefaultWeights(), testCandidates())
	require.NoError(t, err)
	assert.Equal(t, 3, ranking.Len())
	assert.Equal(t, 1, observed.FilterMessage("filter disabled").Len())

	statuses := Describe(steps)
	assert.False(t, statuses[1].Enabled)
	assert.Equal(t, "disabled via flag", statuses[1].Reason)
}

func TestRunFailsFast(t *testing.T) {
	t.Parallel()

	t.Run("invalid weights", func(t *testing.T) {
		t.Parallel()
		weights := scoring.DefaultWeights()
		weights.Keywords = -1

		_, err := newTestScreening(nil, zapcore.NewNopCore()).Run(context.Background(), testJob(), weights, testCandidates())
		require.ErrorIs(t, err, scoring.ErrInvalidConfiguration)
	})

	t.Run("invalid filter config", func(t *testing.T) {
		t.Parallel()
		_, err := newTestScreening(&Config{MinimumScore: 150}, zapcore.NewNopCore(), NewMinimumScore()).
			Run(context.Background(), testJob(), scoring.DefaultWeights(), testCandidates())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "minimum_score")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestScreening(nil, zapcore.NewNopCore()).Run(ctx, testJob(), scoring.DefaultWeights(), testCandidates())
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("missing job", func(t *testing.T) {
		t.Parallel()
		_, err := newTestScreening(nil, zapcore.NewNopCore()).Run(context.Background(), nil, scoring.DefaultWeights(), testCandidates())
		require.Error(t, err)
	})
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	run := func() []byte {
		s := New(&Config{Concurrency: 3}, Deps{}, []Filter{NewMinimumScore()})
		ranking, err := s.Run(context.Background(), testJob(), scoring.DefaultWeights(), testCandidates())
		require.NoError(t, err)
		payload, err := json.Marshal(ranking)
		require.NoError(t, err)
		return payload
	}

	assert.Equal(t, string(run()), string(run()))
}

func TestRankingTiesBreakByID(t *testing.T) {
	t.Parallel()

	same := &scoring.Breakdown{FinalScore: 50, MatchedKeywords: []string{}}
	r := newRanking("job", []*Result{
		{Candidate: &hiring.Candidate{ID: "zed"}, Status: StatusScreened, Breakdown: same},
		{Candidate: &hiring.Candidate{ID: "amy"}, Status: StatusScreened, Breakdown: same},
		{Candidate: &hiring.Candidate{ID: "max"}, Status: StatusScreened, Breakdown: &scoring.Breakdown{FinalScore: 70, MatchedKeywords: []string{"go"}}},
	})

	assert.Equal(t, []string{"max", "amy", "zed"}, r.IDs())

	report := r.Report()
	require.Len(t, report, 3)
	assert.Equal(t, "1", report[0]["rank"])
	assert.Equal(t, "70.00", report[0]["score"])
	assert.Equal(t, "go", report[0]["matched keywords"])
}

func TestRankingDumpToTmpFile(t *testing.T) {
	t.Parallel()

	r := newRanking("job", []*Result{
		{Candidate: &hiring.Candidate{ID: "amy", ResumeText: "secret text"}, Status: StatusScreened, Breakdown: &scoring.Breakdown{FinalScore: 12.5, MatchedKeywords: []string{}}},
	})

	name, err := r.DumpToTmpFile()
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	assert.Equal(t, ".json", filepath.Ext(name))

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var decoded Ranking
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, "amy", decoded.Items[0].Candidate.ID)
	assert.NotContains(t, string(data), "secret text")
}
