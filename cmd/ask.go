package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/botforge/botforge/internal/agent"
	"github.com/botforge/botforge/internal/app"
	"github.com/botforge/botforge/internal/chat"
	"github.com/botforge/botforge/internal/config"
)

var (
	askProvider string
	askModel    string
	askBehavior string
	askSearch   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askProvider, "provider", "", "model provider (gemini or openai), overrides config")
	askCmd.Flags().StringVar(&askModel, "model", "", "model name, overrides config")
	askCmd.Flags().StringVar(&askBehavior, "behavior", "You are a helpful assistant.", "chatbot persona description")
	askCmd.Flags().BoolVar(&askSearch, "search", false, "allow the web search tool")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	provider := cfg.Provider
	if askProvider != "" {
		provider = askProvider
	}
	model := cfg.ModelName
	if askModel != "" {
		model = askModel
	}

	// Same validation path as the HTTP API.
	req := chat.Request{
		ModelName:     model,
		ModelProvider: provider,
		SystemPrompt:  askBehavior,
		Messages:      []string{strings.Join(args, " ")},
		AllowSearch:   askSearch,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := newLogger()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	trace, err := a.Agent.Invoke(ctx, agent.Params{
		Provider:    req.Provider(),
		ModelName:   req.ModelName,
		Instruction: chat.ComposeInstruction(req.SystemPrompt),
		Query:       req.Query(),
		AllowSearch: req.AllowSearch,
	})
	if err != nil {
		return fmt.Errorf("asking model: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), chat.ExtractText(trace, chat.Mode(cfg.ExtractionMode)))
	return nil
}
