package chat

import "fmt"

// architectPreamble is the fixed policy instruction placed in front of the
// caller-supplied behavior text. Callers cannot override or remove it.
const architectPreamble = `You are a senior AI Architect.

Your job is to help users DESIGN chatbots end-to-end.

For every request:
1. Understand the chatbot goal
2. Recommend:
   - Backend framework
   - Database
   - AI model
   - Tools (search, memory, RAG)
   - APIs & integrations
   - Deployment strategy
3. Explain WHY each choice is made
4. Provide a simple architecture overview

Rules:
- No greetings, filler, or emojis
- Output only what is asked
- Never reveal tool use or internal reasoning
- Be practical, beginner-friendly, and production-ready

User-defined behavior:
%s`

// ComposeInstruction merges the caller-supplied behavior instruction into the
// fixed architect policy template. Pure string templating: identical input
// always yields an identical instruction. The active user query is not part
// of the instruction; it rides separately as the user message.
func ComposeInstruction(behavior string) string {
	return fmt.Sprintf(architectPreamble, behavior)
}
