package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/source"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the vocabulary terms found in a resume, or the whole vocabulary",
	Run: func(cmd *cobra.Command, _ []string) {
		keywords(cmd)
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().String("resume", "", "plain-text resume file")
	keywordsCmd.Flags().String("resume-text", "", "resume text given inline; ignored when --resume is set")
	keywordsCmd.Flags().BoolP("list", "l", false, "print the whole vocabulary instead of scanning a resume")
}

func keywords(cmd *cobra.Command) {
	logger, _, _, vocab := mustSetup()

	list, _ := cmd.Flags().GetBool("list")
	if list {
		if err := writeJSON(cmd.OutOrStdout(), vocab.Terms()); err != nil {
			logger.Fatal("writing vocabulary", zap.Error(err))
		}
		return
	}

	resumeFile, _ := cmd.Flags().GetString("resume")
	resumeText, _ := cmd.Flags().GetString("resume-text")
	text, err := source.Load(source.Source{Name: "resume", Value: resumeText, File: resumeFile})
	if err != nil {
		logger.Fatal("loading resume", zap.Error(err))
	}

	found := vocab.Extract(text)
	logger.Debug("vocabulary scanned", zap.Int("terms", vocab.Len()), zap.Int("found", len(found)))

	if err := writeJSON(cmd.OutOrStdout(), found); err != nil {
		logger.Fatal("writing keywords", zap.Error(err))
	}
}
