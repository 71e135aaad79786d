// Package app provides application initialization and dependency injection.
//
// App is the container that wires configuration, the Genkit runtime, the
// optional web search tool, and the agent together. Construction is
// fail-fast: a broken configuration surfaces at startup, not on the first
// request.
package app

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/botforge/botforge/internal/agent"
	"github.com/botforge/botforge/internal/config"
	"github.com/botforge/botforge/internal/log"
)

// App is the core application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit     *genkit.Genkit
	Agent      *agent.Agent
	SearchTool ai.Tool // nil when no search credential is configured
}

// SearchEnabled reports whether the web search tool was wired in.
func (a *App) SearchEnabled() bool {
	return a.SearchTool != nil
}
