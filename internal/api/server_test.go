package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firebase/genkit/go/genkit"

	"github.com/botforge/botforge/internal/agent"
	"github.com/botforge/botforge/internal/api"
	"github.com/botforge/botforge/internal/config"
	"github.com/botforge/botforge/internal/log"
	"github.com/botforge/botforge/internal/testutil"
)

// newTestServer wires a server around a mock model so requests exercise the
// full path without real provider credentials.
func newTestServer(t *testing.T, creds config.Credentials) (*httptest.Server, *testutil.MockLLM) {
	t.Helper()

	g := genkit.Init(context.Background())
	mock := testutil.NewMockLLM("No response generated.")
	mock.AddResponse("support bot", "Define intents first.\n\nThen add fallbacks.")
	mock.Register(g, "googleai/gemini-flash-latest")

	a, err := agent.New(agent.Config{
		Genkit:      g,
		Credentials: creds,
		Logger:      log.NewNop(),
	})
	require.NoError(t, err)

	srv, err := api.NewServer(api.ServerConfig{
		Logger:      log.NewNop(),
		Agent:       a,
		CORSOrigins: []string{"http://localhost:8501"},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, mock
}

func postChat(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(ts.URL+"/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestNewServer_RequiresAgentAndLogger(t *testing.T) {
	_, err := api.NewServer(api.ServerConfig{Logger: log.NewNop()})
	assert.Error(t, err)

	g := genkit.Init(context.Background())
	a, err := agent.New(agent.Config{Genkit: g, Logger: log.NewNop()})
	require.NoError(t, err)

	_, err = api.NewServer(api.ServerConfig{Agent: a})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestChat_Success(t *testing.T) {
	ts, mock := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	resp, body := postChat(t, ts, `{
		"model_name": "models/gemini-flash-latest",
		"model_provider": "gemini",
		"system_prompt": "You help people build chatbots.",
		"messages": ["How do I design a support bot?"],
		"allow_search": false
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "AI Chatbot Architect", body["role"])
	assert.Equal(t, "Define intents first.\n\nThen add fallbacks.", body["response"])

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "How do I design a support bot?", calls[0].UserMessage)
	assert.Contains(t, calls[0].System, "You help people build chatbots.")
	assert.Contains(t, calls[0].System, "AI Architect")
}

func TestChat_LastMessageIsQuery(t *testing.T) {
	ts, mock := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	resp, _ := postChat(t, ts, `{
		"model_name": "models/gemini-flash-latest",
		"model_provider": "gemini",
		"system_prompt": "Be brief.",
		"messages": ["first question", "tell me about a support bot"]
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "tell me about a support bot", calls[0].UserMessage)
}

func TestChat_ValidationErrors(t *testing.T) {
	ts, _ := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{
			name: "empty messages",
			body: `{"model_name":"models/gemini-flash-latest","model_provider":"gemini",
				"system_prompt":"x","messages":[]}`,
			wantDetail: "messages list cannot be empty",
		},
		{
			name: "gemini model not in allow list",
			body: `{"model_name":"models/gemini-ultra","model_provider":"gemini",
				"system_prompt":"x","messages":["hi"]}`,
			wantDetail: "model", // detail names the rejected model
		},
		{
			name: "unknown provider",
			body: `{"model_name":"claude-3","model_provider":"anthropic",
				"system_prompt":"x","messages":["hi"]}`,
			wantDetail: "provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postChat(t, ts, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			detail, _ := body["detail"].(string)
			assert.Contains(t, detail, tt.wantDetail)
		})
	}
}

func TestChat_MalformedJSON(t *testing.T) {
	ts, _ := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	resp, body := postChat(t, ts, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", body["detail"])
}

func TestChat_MissingCredential(t *testing.T) {
	// Valid request, but the process has no key for the chosen provider.
	ts, _ := newTestServer(t, config.Credentials{})

	resp, body := postChat(t, ts, `{
		"model_name": "models/gemini-flash-latest",
		"model_provider": "gemini",
		"system_prompt": "x",
		"messages": ["hi"]
	}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	detail, _ := body["detail"].(string)
	assert.Contains(t, detail, "GEMINI_API_KEY")
}

func TestChat_MethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	resp, err := http.Get(ts.URL + "/chat")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORS_Preflight(t *testing.T) {
	ts, _ := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/chat", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:8501")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:8501", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	ts, _ := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/chat", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestID_Header(t *testing.T) {
	ts, _ := newTestServer(t, config.Credentials{GeminiAPIKey: "test-key"})

	resp, _ := postChat(t, ts, `{not json`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
