package api

import (
	"encoding/json"
	"net/http"

	"github.com/botforge/botforge/internal/agent"
	"github.com/botforge/botforge/internal/chat"
	"github.com/botforge/botforge/internal/log"
)

// ResponderRole is the persona name reported on every successful chat
// response, regardless of which provider produced the answer.
const ResponderRole = "AI Chatbot Architect"

// maxRequestBody bounds how much of a chat request body is read.
const maxRequestBody = 1024 * 1024 // 1MB

// ChatResponse is the success body for POST /chat.
type ChatResponse struct {
	Status   string `json:"status"`
	Role     string `json:"role"`
	Response string `json:"response"`
}

// chatHandler handles the synchronous chat endpoint.
type chatHandler struct {
	agent  *agent.Agent
	mode   chat.Mode
	logger log.Logger
}

// send handles POST /chat: validate the request, compose the persona
// instruction, run one agent invocation, and return the extracted answer.
func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	trace, err := h.agent.Invoke(r.Context(), agent.Params{
		Provider:    req.Provider(),
		ModelName:   req.ModelName,
		Instruction: chat.ComposeInstruction(req.SystemPrompt),
		Query:       req.Query(),
		AllowSearch: req.AllowSearch,
	})
	if err != nil {
		requestID, _ := requestIDFromContext(r.Context())
		h.logger.Error("agent invocation failed",
			"error", err,
			"provider", req.Provider(),
			"model", req.ModelName,
			"request_id", requestID,
		)
		writeDetail(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Status:   "success",
		Role:     ResponderRole,
		Response: chat.ExtractText(trace, h.mode),
	}, h.logger)
}
