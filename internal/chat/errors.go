package chat

import "errors"

// Sentinel errors for request validation.
// The HTTP layer maps all three to 400; callers check with errors.Is().
var (
	// ErrEmptyMessages indicates the request carried no usable user query.
	ErrEmptyMessages = errors.New("messages list cannot be empty")

	// ErrUnsupportedModel indicates a Gemini model outside the allow-list.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrUnsupportedProvider indicates a provider other than gemini or openai.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)
