package chat

import (
	"strings"

	"github.com/firebase/genkit/go/ai"
)

// Mode selects how a conversation trace is reduced to the final answer.
type Mode string

const (
	// ModeAll joins the text of every assistant message, in trace order,
	// separated by a blank line.
	ModeAll Mode = "all"

	// ModeLast returns the text of the last assistant message only.
	ModeLast Mode = "last"
)

// FallbackResponse is returned when the trace contains no assistant text.
const FallbackResponse = "No response generated."

// ExtractText reduces a conversation trace to the final human-readable
// answer. Assistant messages are considered in original order; intermediate
// tool-call and reasoning artifacts are discarded. The function is total: it
// never fails on an empty trace, a message with empty content, or non-text
// fragments (those are skipped silently).
func ExtractText(trace []*ai.Message, mode Mode) string {
	var texts []string
	for _, msg := range trace {
		if msg == nil || msg.Role != ai.RoleModel {
			continue
		}
		// Tool-call rounds often produce model messages with no text at
		// all; including them would leave stray blank lines in the join.
		if text := fragmentText(msg.Content); text != "" {
			texts = append(texts, text)
		}
	}

	if len(texts) == 0 {
		return FallbackResponse
	}

	var out string
	if mode == ModeLast {
		out = strings.TrimSpace(texts[len(texts)-1])
	} else {
		out = strings.TrimSpace(strings.Join(texts, "\n\n"))
	}
	if out == "" {
		return FallbackResponse
	}
	return out
}

// fragmentText normalizes one message's content: text fragments are
// concatenated in order without separator, everything else is ignored.
// Providers disagree on answer shape (a single text part vs. a list of
// typed fragments); this is the one place that difference is erased.
func fragmentText(parts []*ai.Part) string {
	var b strings.Builder
	for _, part := range parts {
		if part == nil {
			continue
		}
		if part.Kind == ai.PartText {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
