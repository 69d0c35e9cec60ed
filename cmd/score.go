package cmd

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/hiring"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/scoring"
	"github.com/spigell/resume-scorer/internal/source"
)

type scoreOutput struct {
	JobID       string             `json:"job_id,omitempty"`
	Breakdown   *scoring.Breakdown `json:"breakdown"`
	Explanation string             `json:"explanation"`
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against a job and print the breakdown",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("job", "", "job file (yaml, json or toml)")
	scoreCmd.Flags().String("resume", "", "plain-text resume file")
	scoreCmd.Flags().String("resume-text", "", "resume text given inline; ignored when --resume is set")
	scoreCmd.Flags().StringSlice("keywords", nil, "resume keywords; extracted from the resume with the vocabulary when empty")

	scoreCmd.MarkFlagRequired("job")
}

func score(cmd *cobra.Command) {
	log, config, weights, vocab := mustSetup()

	jobPath, _ := cmd.Flags().GetString("job")
	job, err := hiring.LoadJob(jobPath)
	if err != nil {
		log.Fatal("loading job", zap.Error(err))
	}

	resumeFile, _ := cmd.Flags().GetString("resume")
	resumeText, _ := cmd.Flags().GetString("resume-text")
	text, err := source.Load(source.Source{Name: "resume", Value: resumeText, File: resumeFile})
	if err != nil {
		if errors.Is(err, source.ErrEmpty) {
			log.Fatal("resume is empty", zap.Error(err),
				zap.String("hint", "pass a plain-text file with --resume or the text with --resume-text"),
			)
		}
		log.Fatal("loading resume", zap.Error(err))
	}

	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	if len(keywords) == 0 {
		warnUnknownKeywords(log, job.RequiredKeywords, vocab)
		keywords = vocab.Extract(text)
		log.Debug("extracted resume keywords", zap.Strings("keywords", keywords))
	}

	scorer := scoring.NewScorer(logger.ForCandidate(log, job.ID, ""), config.MaxLogLength)
	breakdown, err := scorer.Score(scoring.ResumeInput{RawText: text, ExtractedKeywords: keywords}, job.Spec(), weights)
	if err != nil {
		log.Fatal("scoring resume", zap.Error(err))
	}

	log.Info(breakdown.Explanation(), breakdown.LogFields()...)

	if err := writeJSON(cmd.OutOrStdout(), &scoreOutput{
		JobID:       job.ID,
		Breakdown:   breakdown,
		Explanation: breakdown.Explanation(),
	}); err != nil {
		log.Fatal("writing result", zap.Error(err))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
