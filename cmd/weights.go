package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/scoring"
)

const weightsSumTolerance = 1e-6

type weightsOutput struct {
	Weights scoring.Weights `json:"weights"`
	Sum     float64         `json:"sum"`
	Source  string          `json:"source"`
}

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Validate and print the effective scoring weights",
	Run: func(cmd *cobra.Command, _ []string) {
		weights(cmd)
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)

	weightsCmd.Flags().BoolP("edit", "e", false, "edit the weights interactively and save them to the config file")
}

func weights(cmd *cobra.Command) {
	logger, _, current, _ := mustSetup()

	edit, _ := cmd.Flags().GetBool("edit")
	if edit {
		updated, err := editWeights(current)
		if err != nil {
			logger.Fatal("editing weights", zap.Error(err))
		}

		path, err := saveWeights(updated)
		if err != nil {
			logger.Fatal("saving weights", zap.Error(err))
		}
		logger.Info("weights saved", zap.String("path", path))
		current = updated
	}

	if sum := current.Sum(); math.Abs(sum-1) > weightsSumTolerance {
		logger.Warn("weights do not sum to 1; final scores are capped at 100",
			zap.Float64("sum", sum),
		)
	}

	source := viper.ConfigFileUsed()
	if source == "" {
		source = "defaults"
	}

	if err := writeJSON(cmd.OutOrStdout(), &weightsOutput{Weights: current, Sum: current.Sum(), Source: source}); err != nil {
		logger.Fatal("writing weights", zap.Error(err))
	}
}

func editWeights(current scoring.Weights) (scoring.Weights, error) {
	fields := []struct {
		label string
		value *float64
	}{
		{label: "Keywords weight", value: &current.Keywords},
		{label: "Similarity weight", value: &current.Similarity},
		{label: "Experience weight", value: &current.Experience},
		{label: "Education weight (reserved)", value: &current.Education},
	}

	for _, field := range fields {
		p := promptui.Prompt{
			Label:    field.label,
			Default:  strconv.FormatFloat(*field.value, 'f', -1, 64),
			Validate: validateWeightInput,
		}

		answer, err := p.Run()
		if err != nil {
			return scoring.Weights{}, err
		}

		parsed, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil {
			return scoring.Weights{}, err
		}
		*field.value = parsed
	}

	return scoring.NewWeights(current.Keywords, current.Similarity, current.Experience, current.Education)
}

func validateWeightInput(input string) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return errors.New("must be a number")
	}
	if value < 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return errors.New("must be a finite number >= 0")
	}
	return nil
}

// saveWeights rewrites only the weights section of the config file, creating
// resume-scorer.yaml when no config file is in use.
func saveWeights(w scoring.Weights) (string, error) {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = app + ".yaml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	// Rebuilt from scratch so that a legacy tfidf key does not survive next to similarity.
	settings := v.AllSettings()
	settings["weights"] = map[string]any{
		"keywords":   w.Keywords,
		"similarity": w.Similarity,
		"experience": w.Experience,
		"education":  w.Education,
	}

	out := viper.New()
	if err := out.MergeConfigMap(settings); err != nil {
		return "", fmt.Errorf("preparing %q: %w", path, err)
	}
	if err := out.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("writing %q: %w", path, err)
	}
	return path, nil
}
