package agent

import "errors"

// Sentinel errors for agent invocation.
// Only errors that are checked with errors.Is() are defined here.
var (
	// ErrMissingCredential indicates the selected provider's API key is not
	// configured. Server misconfiguration, not a client error.
	ErrMissingCredential = errors.New("missing provider credential")

	// ErrUnsupportedProvider indicates a provider this agent cannot route.
	// Normally caught earlier by request validation; kept here so the agent
	// is safe to call directly.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrTimeout indicates the invocation exceeded the configured deadline.
	ErrTimeout = errors.New("invocation timed out")

	// ErrInvocationFailed indicates the model or a tool call failed
	// downstream. The provider's message is preserved in the wrap.
	ErrInvocationFailed = errors.New("invocation failed")
)
