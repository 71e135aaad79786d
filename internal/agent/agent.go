// Package agent invokes the model through the Genkit runtime and returns the
// resulting conversation trace.
//
// The reason/act loop (whether and how often the model calls tools before
// producing its final answer) belongs entirely to Genkit. This package only
// selects the model client, attaches the tool set, issues one synchronous
// Generate call bounded by a deadline, and hands the complete trace back.
// There is no retry, no streaming, and no partial result: a call either
// yields a full trace or an error.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/botforge/botforge/internal/chat"
	"github.com/botforge/botforge/internal/config"
	"github.com/botforge/botforge/internal/log"
)

// Params carries everything one invocation needs.
type Params struct {
	Provider    string // "gemini" or "openai", already validated upstream
	ModelName   string // provider-native model identifier
	Instruction string // final composed instruction (system role)
	Query       string // active user query (user role)
	AllowSearch bool   // attach the web search tool when available
}

// Config contains all required parameters for the Agent.
type Config struct {
	Genkit      *genkit.Genkit
	Credentials config.Credentials // immutable process-wide secrets, injected for testability
	SearchTool  ai.Tool            // nil disables search regardless of Params.AllowSearch
	MaxTurns    int                // reason/act loop bound, 0 = default
	Timeout     time.Duration      // per-invocation deadline, 0 = default
	Logger      log.Logger
}

// Agent routes chat requests to a model provider. It is stateless: all
// configuration is captured immutably at construction, so a single Agent is
// safe for concurrent use.
type Agent struct {
	g          *genkit.Genkit
	creds      config.Credentials
	searchTool ai.Tool
	maxTurns   int
	timeout    time.Duration
	logger     log.Logger
}

// New creates a new Agent.
func New(cfg Config) (*Agent, error) {
	if cfg.Genkit == nil {
		return nil, errors.New("genkit instance is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = config.DefaultMaxTurns
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	return &Agent{
		g:          cfg.Genkit,
		creds:      cfg.Credentials,
		searchTool: cfg.SearchTool,
		maxTurns:   maxTurns,
		timeout:    timeout,
		logger:     cfg.Logger,
	}, nil
}

// SearchEnabled reports whether a search tool is configured. A request may
// still opt out per call via Params.AllowSearch.
func (a *Agent) SearchEnabled() bool {
	return a.searchTool != nil
}

// Invoke runs one bounded agent invocation and returns the full conversation
// trace: the seed system and user messages, any intermediate tool-call
// rounds, and the final model message.
func (a *Agent) Invoke(ctx context.Context, p Params) ([]*ai.Message, error) {
	model, err := a.resolveModel(p.Provider, p.ModelName)
	if err != nil {
		return nil, err
	}

	tools := a.toolSet(p.AllowSearch)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.logger.Debug("invoking agent",
		"provider", p.Provider,
		"model", model,
		"tools", len(tools),
		"queryLength", len(p.Query),
	)

	resp, err := genkit.Generate(ctx, a.g,
		ai.WithModelName(model),
		ai.WithSystem(p.Instruction),
		ai.WithMessages(ai.NewUserMessage(ai.NewTextPart(p.Query))),
		ai.WithTools(tools...),
		ai.WithMaxTurns(a.maxTurns),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, a.timeout)
		}
		// Surface the provider's message verbatim; no retry, no fallback.
		return nil, fmt.Errorf("%w: %w", ErrInvocationFailed, err)
	}

	return trace(resp), nil
}

// resolveModel checks the provider credential and returns the
// provider-qualified Genkit model name.
func (a *Agent) resolveModel(provider, modelName string) (string, error) {
	switch strings.ToLower(provider) {
	case chat.ProviderGemini:
		if a.creds.GeminiAPIKey == "" {
			return "", fmt.Errorf("%w: GEMINI_API_KEY not set", ErrMissingCredential)
		}
		// The HTTP surface uses the REST-style "models/" resource names;
		// Genkit's googlegenai plugin registers the bare identifier.
		return "googleai/" + strings.TrimPrefix(modelName, "models/"), nil
	case chat.ProviderOpenAI:
		if a.creds.OpenAIAPIKey == "" {
			return "", fmt.Errorf("%w: OPENAI_API_KEY not set", ErrMissingCredential)
		}
		return "openai/" + modelName, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}

// toolSet returns the tools for one invocation: the search tool when the
// request allows it and a search credential was configured, otherwise none.
// A missing search credential is a silent downgrade, not an error.
func (a *Agent) toolSet(allowSearch bool) []ai.ToolRef {
	if !allowSearch || a.searchTool == nil {
		return nil
	}
	return []ai.ToolRef{a.searchTool}
}

// trace assembles the complete conversation trace from a model response.
// Request.Messages holds the messages of the final generation round
// (including any tool-call exchanges); the final model message is appended.
func trace(resp *ai.ModelResponse) []*ai.Message {
	if resp == nil {
		return nil
	}
	var msgs []*ai.Message
	if resp.Request != nil {
		msgs = append(msgs, resp.Request.Messages...)
	}
	if resp.Message != nil {
		msgs = append(msgs, resp.Message)
	}
	return msgs
}
