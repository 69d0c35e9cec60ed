package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/hiring"
	"github.com/spigell/resume-scorer/internal/scoring"
	"github.com/spigell/resume-scorer/internal/screening"
	"github.com/spigell/resume-scorer/internal/vocabulary"
)

const (
	PromptReport  = "Report shortlisted candidates"
	PromptDetails = "Show candidate breakdown"
	PromptDump    = "Dump ranking to file"
	PromptFilters = "Show filters"
	PromptExit    = "Exit"
	PromptBack    = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReport, PromptDetails, PromptDump, PromptFilters, PromptExit},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Score and rank a batch of candidates for one job",
	Run: func(cmd *cobra.Command, _ []string) {
		screen(cmd)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().String("job", "", "job file (yaml, json or toml)")
	screenCmd.Flags().String("candidates", "", "candidates file (yaml, json or toml)")
	screenCmd.Flags().Float64("minimum-score", 0, "reject candidates scoring below this value (0..100)")
	screenCmd.Flags().Int("top", 0, "keep only the best N candidates (0 keeps everyone)")
	screenCmd.Flags().Int("concurrency", 0, "how many candidates are scored at once")
	screenCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without the interactive menu")

	screenCmd.MarkFlagRequired("job")
	screenCmd.MarkFlagRequired("candidates")

	viper.BindPFlag("screening.minimum-score", screenCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("screening.top", screenCmd.Flags().Lookup("top"))
	viper.BindPFlag("screening.concurrency", screenCmd.Flags().Lookup("concurrency"))
}

func screen(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config, weights, vocab := mustSetup()

	logger.Info("starting the screening", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	jobPath, _ := cmd.Flags().GetString("job")
	job, err := hiring.LoadJob(jobPath)
	if err != nil {
		logger.Fatal("loading job", zap.Error(err))
	}

	candidatesPath, _ := cmd.Flags().GetString("candidates")
	candidates, err := hiring.LoadCandidates(candidatesPath)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	logger.Info("loaded candidates", zap.String("job", job.Title), zap.Int("count", candidates.Len()))

	warnUnknownKeywords(logger, job.RequiredKeywords, vocab)

	steps := screeningSteps(config.Screening)
	s := screening.New(config.Screening, screeningDeps(logger, config, vocab), steps)

	ranking, err := s.Run(ctx, job, weights, candidates)
	if err != nil {
		logger.Fatal("screening failed", zap.Error(err))
	}

	logger.Info("screening finished",
		zap.Strings("shortlisted", ranking.IDs()),
		zap.Int("rejected", len(ranking.Rejected)),
	)

	if ranking.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if autoApprove {
		if err := writeJSON(cmd.OutOrStdout(), ranking.Report()); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, ranking, steps); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// screeningSteps returns the filters in order. Filters left at their zero
// setting are disabled so that the filters menu tells why they did nothing.
func screeningSteps(cfg *screening.Config) []screening.Filter {
	steps := []screening.Filter{
		screening.NewMinimumScore(),
		screening.NewTop(),
	}
	if cfg == nil {
		cfg = &screening.Config{}
	}

	if cfg.MinimumScore == 0 {
		screening.DisableByName(steps, "minimum_score", "minimum-score is 0")
	}
	if cfg.Top == 0 {
		screening.DisableByName(steps, "top", "top is 0")
	}
	return steps
}

func screeningDeps(logger *zap.Logger, config *Config, vocab *vocabulary.Vocabulary) screening.Deps {
	return screening.Deps{
		Scorer:     scoring.NewScorer(logger, config.MaxLogLength),
		Vocabulary: vocab,
		Logger:     logger,
	}
}

func handleAction(action string, logger *zap.Logger, ranking *screening.Ranking, steps []screening.Filter) error {
	switch action {
	case PromptReport:
		pretty, _ := json.MarshalIndent(ranking.Report(), "", "  ")
		logger.Info(string(pretty), zap.Int("shortlisted", ranking.Len()), zap.Int("rejected", len(ranking.Rejected)))
		return nil
	case PromptDetails:
		return showDetails(logger, ranking)
	case PromptDump:
		filename, err := ranking.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping ranking to file", zap.String("filename", filename))
		return nil
	case PromptFilters:
		for _, status := range screening.Describe(steps) {
			logger.Info("filter",
				zap.String("name", status.Name),
				zap.Bool("enabled", status.Enabled),
				zap.String("reason", status.Reason),
				zap.Any("details", status.Details),
			)
		}
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showDetails(logger *zap.Logger, ranking *screening.Ranking) error {
	items := make([]string, 0, ranking.Len()+len(ranking.Rejected)+1)
	ids := make([]string, 0, cap(items))
	for _, result := range append(append([]*screening.Result{}, ranking.Items...), ranking.Rejected...) {
		items = append(items, fmt.Sprintf("%s [%s] %.2f", result.Candidate.Label(), result.Status, result.Score()))
		ids = append(ids, result.Candidate.ID)
	}
	items = append(items, PromptBack)

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: items,
		Size:  10,
	}

	idx, selected, err := candidatePrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	result := ranking.FindByID(ids[idx])
	if result == nil {
		return fmt.Errorf("there is no such candidate %s", ids[idx])
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	logger.Info(string(pretty), zap.String("candidate", result.Candidate.Label()))
	return nil
}
