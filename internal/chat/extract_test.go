package chat

import (
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/stretchr/testify/assert"
)

func modelMessage(parts ...*ai.Part) *ai.Message {
	return &ai.Message{Role: ai.RoleModel, Content: parts}
}

func textPart(s string) *ai.Part {
	return &ai.Part{Kind: ai.PartText, Text: s}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		trace []*ai.Message
		mode  Mode
		want  string
	}{
		{
			name:  "empty trace last mode",
			trace: nil,
			mode:  ModeLast,
			want:  FallbackResponse,
		},
		{
			name: "no assistant messages",
			trace: []*ai.Message{
				{Role: ai.RoleSystem, Content: []*ai.Part{textPart("instruction")}},
				{Role: ai.RoleUser, Content: []*ai.Part{textPart("query")}},
			},
			mode: ModeLast,
			want: FallbackResponse,
		},
		{
			name:  "single plain message",
			trace: []*ai.Message{modelMessage(textPart("hello"))},
			mode:  ModeLast,
			want:  "hello",
		},
		{
			name:  "fragments concatenated without separator",
			trace: []*ai.Message{modelMessage(textPart("a"), textPart("b"))},
			mode:  ModeLast,
			want:  "ab",
		},
		{
			name: "all mode joins with blank line",
			trace: []*ai.Message{
				modelMessage(textPart("first")),
				modelMessage(textPart("second")),
			},
			mode: ModeAll,
			want: "first\n\nsecond",
		},
		{
			name: "last mode ignores earlier assistant messages",
			trace: []*ai.Message{
				modelMessage(textPart("first")),
				modelMessage(textPart("second")),
			},
			mode: ModeLast,
			want: "second",
		},
		{
			name: "non-text fragments skipped silently",
			trace: []*ai.Message{
				modelMessage(
					&ai.Part{Kind: ai.PartToolRequest, ToolRequest: &ai.ToolRequest{Name: "webSearch"}},
					textPart("answer"),
				),
			},
			mode: ModeLast,
			want: "answer",
		},
		{
			name: "tool and user turns excluded from all mode",
			trace: []*ai.Message{
				{Role: ai.RoleUser, Content: []*ai.Part{textPart("query")}},
				modelMessage(&ai.Part{Kind: ai.PartToolRequest, ToolRequest: &ai.ToolRequest{Name: "webSearch"}}),
				{Role: ai.RoleTool, Content: []*ai.Part{textPart("tool output")}},
				modelMessage(textPart("grounded answer")),
			},
			mode: ModeAll,
			want: "grounded answer",
		},
		{
			name:  "surrounding whitespace trimmed",
			trace: []*ai.Message{modelMessage(textPart("  spaced  "))},
			mode:  ModeLast,
			want:  "spaced",
		},
		{
			name:  "assistant message with empty content",
			trace: []*ai.Message{modelMessage()},
			mode:  ModeLast,
			want:  FallbackResponse,
		},
		{
			name: "nil message and nil part tolerated",
			trace: []*ai.Message{
				nil,
				modelMessage(nil, textPart("ok")),
			},
			mode: ModeLast,
			want: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractText(tt.trace, tt.mode))
		})
	}
}
