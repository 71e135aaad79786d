// Package cmd implements the botforge command line interface.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/botforge/botforge/internal/log"
)

var (
	debugLog bool
	jsonLog  bool
)

var rootCmd = &cobra.Command{
	Use:   "botforge",
	Short: "Botforge - chatbot orchestration service",
	Long: `Botforge turns a user-defined persona into a working chatbot backed by
Gemini or OpenAI models, with optional web search.

Run "botforge serve" to start the HTTP API, or "botforge ask" for a
one-shot question from the terminal.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "log-json", false, "emit logs as JSON")
}

// newLogger builds the process logger from the persistent flags.
func newLogger() log.Logger {
	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level, JSON: jsonLog})
}
