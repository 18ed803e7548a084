package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkdesk/internal/config"
	"checkdesk/internal/port"
	"checkdesk/internal/vision"
	claude "checkdesk/internal/vision/claude"
)

func newTestClient(serverURL string) *claude.Client {
	cfg := &config.VisionProviderConfig{
		Provider:     "claude",
		APIKey:       "test-claude-key",
		DefaultModel: "claude-sonnet-4-20250514",
		TimeoutSecs:  30,
	}
	return claude.NewClientWithEndpoint(cfg, serverURL)
}

func successResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
		"stop_reason": "end_turn",
	}
}

func TestClient_Complete_URLImage(t *testing.T) {
	completion := `{"checkNumber":"1001"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-claude-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		assert.Equal(t, float64(500), reqBody["max_tokens"])

		messages := reqBody["messages"].([]interface{})
		msg := messages[0].(map[string]interface{})
		content := msg["content"].([]interface{})
		assert.Len(t, content, 2)

		imgBlock := content[0].(map[string]interface{})
		assert.Equal(t, "image", imgBlock["type"])
		source := imgBlock["source"].(map[string]interface{})
		assert.Equal(t, "url", source["type"])
		assert.Equal(t, "https://example.com/check.png", source["url"])

		textBlock := content[1].(map[string]interface{})
		assert.Equal(t, "text", textBlock["type"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(completion))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	text, err := c.Complete(context.Background(), port.CompletionInput{
		ImageURL: "https://example.com/check.png",
		Prompt:   "extract the check fields",
	})

	require.NoError(t, err)
	assert.Equal(t, completion, text)
}

func TestClient_Complete_DataURIImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)

		messages := reqBody["messages"].([]interface{})
		msg := messages[0].(map[string]interface{})
		content := msg["content"].([]interface{})

		imgBlock := content[0].(map[string]interface{})
		source := imgBlock["source"].(map[string]interface{})
		assert.Equal(t, "base64", source["type"])
		assert.Equal(t, "image/png", source["media_type"])
		assert.Equal(t, "aGVsbG8=", source["data"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse("{}"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), port.CompletionInput{
		ImageURL: "data:image/png;base64,aGVsbG8=",
		Prompt:   "extract the check fields",
	})

	require.NoError(t, err)
}

func TestClient_Complete_MalformedDataURI(t *testing.T) {
	c := newTestClient("http://unused.invalid")

	_, err := c.Complete(context.Background(), port.CompletionInput{
		ImageURL: "data:image/png",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed data URI")
}

func TestClient_Complete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "45")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), port.CompletionInput{ImageURL: "https://example.com/c.png"})

	var rlErr *vision.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, float64(45), rlErr.RetryAfter.Seconds())
}

func TestClient_Complete_TruncatedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := successResponse("partial")
		resp["stop_reason"] = "max_tokens"
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Complete(context.Background(), port.CompletionInput{ImageURL: "https://example.com/c.png"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop_reason: max_tokens")
}
