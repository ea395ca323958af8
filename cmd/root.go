package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "metaview",
	Short: "Lecture recording timing validation and engagement analysis",
	Long: `metaview validates faculty lecture recordings against class-period
timings and derives engagement reports from their audio: transcription,
filler words, speaking gaps, speakers, and per-minute engagement scores.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the logger used by services and analysis stages
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return log
}
