package search

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// ToolName is the identifier the model uses to invoke web search.
const ToolName = "webSearch"

// Input defines input for the webSearch tool.
type Input struct {
	Query string `json:"query" jsonschema_description:"The search query"`
}

// Output is the result set handed back to the model.
type Output struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// Register defines the webSearch tool with Genkit. Each call returns at most
// maxResults hits; the bound is fixed at registration, not chosen by the model.
func Register(g *genkit.Genkit, client *Client, maxResults int) ai.Tool {
	return genkit.DefineTool(g, ToolName,
		"Search the web for current information. "+
			"Use this when the answer depends on recent events, product versions, pricing, or anything likely to have changed after your training data.",
		func(ctx *ai.ToolContext, input Input) (Output, error) {
			results, err := client.Search(ctx.Context, input.Query, maxResults)
			if err != nil {
				return Output{}, err
			}
			return Output{Query: input.Query, Results: results}, nil
		})
}
