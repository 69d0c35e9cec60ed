package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/scoring"
	"github.com/spigell/resume-scorer/internal/screening"
	"github.com/spigell/resume-scorer/internal/vocabulary"
)

const (
	app = "resume-scorer"
)

type Config struct {
	Weights      map[string]any    `mapstructure:"weights"`
	Screening    *screening.Config `mapstructure:"screening"`
	Vocabulary   *VocabularyConfig `mapstructure:"vocabulary"`
	MaxLogLength int               `mapstructure:"max-log-length"`
}

type VocabularyConfig struct {
	File  string   `mapstructure:"file"`
	Extra []string `mapstructure:"extra"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-scorer ranks resumes against job descriptions with an explainable score",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("config", "RESUME_SCORER_CONFIG"); err != nil {
		log.Fatalf("binding RESUME_SCORER_CONFIG environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = strings.TrimSpace(viper.GetString("config"))
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		// An explicitly requested config must be readable.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)

	// Without a config file the documented defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Screening == nil {
		config.Screening = &screening.Config{}
	}
	if config.Vocabulary == nil {
		config.Vocabulary = &VocabularyConfig{}
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// loadWeights turns the weights section into validated weights.
func loadWeights(config *Config) (scoring.Weights, error) {
	weights, err := scoring.WeightsFromMap(config.Weights)
	if err != nil {
		return scoring.Weights{}, fmt.Errorf("weights section: %w", err)
	}
	return weights, nil
}

// loadVocabulary returns the built-in vocabulary extended with the terms from
// vocabulary.file and vocabulary.extra.
func loadVocabulary(config *Config) (*vocabulary.Vocabulary, error) {
	vocab := vocabulary.Default()

	if path := strings.TrimSpace(config.Vocabulary.File); path != "" {
		terms, err := vocabulary.LoadFile(path)
		if err != nil {
			return nil, err
		}
		vocab.Extend(terms...)
	}

	vocab.Extend(config.Vocabulary.Extra...)
	return vocab, nil
}

// warnUnknownKeywords reports required keywords the vocabulary lacks: keyword
// extraction can never find them, so only explicit candidate keywords match.
func warnUnknownKeywords(logger *zap.Logger, required []string, vocab *vocabulary.Vocabulary) {
	var unknown []string
	for _, keyword := range required {
		if strings.TrimSpace(keyword) != "" && !vocab.Contains(keyword) {
			unknown = append(unknown, keyword)
		}
	}
	if len(unknown) > 0 {
		logger.Warn("required keywords are not in the vocabulary",
			zap.Strings("keywords", unknown),
			zap.String("hint", "add them to vocabulary.extra or vocabulary.file"),
		)
	}
}

// mustSetup loads everything the commands share or stops the process.
func mustSetup() (*zap.Logger, *Config, scoring.Weights, *vocabulary.Vocabulary) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}

	weights, err := loadWeights(config)
	if err != nil {
		logger.Fatal("loading scoring weights", zap.Error(err),
			zap.String("hint", "allowed keys are keywords, similarity (or tfidf), experience, education; values must be >= 0"),
		)
	}

	vocab, err := loadVocabulary(config)
	if err != nil {
		logger.Fatal("loading keyword vocabulary", zap.Error(err))
	}

	return logger, config, weights, vocab
}
