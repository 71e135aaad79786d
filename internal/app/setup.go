package app

import (
	"context"
	"errors"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/botforge/botforge/internal/agent"
	"github.com/botforge/botforge/internal/config"
	"github.com/botforge/botforge/internal/log"
	"github.com/botforge/botforge/internal/search"
)

// Setup creates and initializes the application.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	a := &App{Config: cfg, Logger: logger}

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	a.SearchTool = provideSearchTool(g, cfg, logger)

	ag, err := agent.New(agent.Config{
		Genkit:      g,
		Credentials: cfg.Credentials,
		SearchTool:  a.SearchTool,
		MaxTurns:    cfg.MaxTurns,
		Timeout:     cfg.RequestTimeout,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	a.Agent = ag

	return a, nil
}

// provideGenkit initializes Genkit with one plugin per provider that has a
// credential. Starting with no credentials at all is still valid: the server
// comes up and every chat request fails with a missing-credential error.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, error) {
	var plugins []api.Plugin

	if cfg.Credentials.GeminiAPIKey != "" {
		plugins = append(plugins, &googlegenai.GoogleAI{APIKey: cfg.Credentials.GeminiAPIKey})
	}
	if cfg.Credentials.OpenAIAPIKey != "" {
		plugins = append(plugins, &openai.OpenAI{APIKey: cfg.Credentials.OpenAIAPIKey})
	}

	g := genkit.Init(ctx, genkit.WithPlugins(plugins...))
	if g == nil {
		return nil, errors.New("initializing genkit")
	}

	logger.Info("initialized genkit",
		"gemini", cfg.Credentials.GeminiAPIKey != "",
		"openai", cfg.Credentials.OpenAIAPIKey != "",
	)
	return g, nil
}

// provideSearchTool registers the web search tool when a Tavily credential is
// configured. Without one the tool is simply absent and requests that allow
// search proceed without it.
func provideSearchTool(g *genkit.Genkit, cfg *config.Config, logger log.Logger) ai.Tool {
	if cfg.Credentials.TavilyAPIKey == "" {
		logger.Info("web search disabled, no TAVILY_API_KEY configured")
		return nil
	}

	client, err := search.NewClient(cfg.Credentials.TavilyAPIKey, logger)
	if err != nil {
		logger.Warn("creating search client, web search disabled", "error", err)
		return nil
	}

	tool := search.Register(g, client, cfg.SearchResultLimit)
	logger.Info("web search enabled", "tool", search.ToolName, "maxResults", cfg.SearchResultLimit)
	return tool
}
