package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path          string
	Authorization string
	Body          struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Temperature *float64 `json:"temperature"`
		Stream      bool     `json:"stream"`
	}
}

func newFakeGroq(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest, *int) {
	t.Helper()
	captured := &capturedRequest{}
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		captured.Path = r.URL.Path
		captured.Authorization = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&captured.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured, &calls
}

func newTestClient(baseURL string) *GroqClient {
	return NewGroqClient(GroqOptions{
		APIKey:  "gsk_test",
		BaseURL: baseURL,
		Model:   "llama3-8b-8192",
	}, nil)
}

const okBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "llama3-8b-8192",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "You will thrive."}, "finish_reason": "stop"},
    {"index": 1, "message": {"role": "assistant", "content": "second"}, "finish_reason": "stop"}
  ],
  "usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
}`

func TestGroqClient_GetReply_Success(t *testing.T) {
	srv, captured, calls := newFakeGroq(t, http.StatusOK, okBody)
	client := newTestClient(srv.URL + "/openai/v1")

	reply, err := client.GetReply(context.Background(), "persona", "Name: Alice, Age: 30")
	require.NoError(t, err)
	assert.Equal(t, "You will thrive.", reply)

	assert.Equal(t, 1, *calls)
	assert.Equal(t, "/openai/v1/chat/completions", captured.Path)
	assert.Equal(t, "Bearer gsk_test", captured.Authorization)
	assert.Equal(t, "llama3-8b-8192", captured.Body.Model)
	assert.Nil(t, captured.Body.Temperature)
	assert.False(t, captured.Body.Stream)

	require.Len(t, captured.Body.Messages, 2)
	assert.Equal(t, "system", captured.Body.Messages[0].Role)
	assert.Equal(t, "persona", captured.Body.Messages[0].Content)
	assert.Equal(t, "user", captured.Body.Messages[1].Role)
	assert.Equal(t, "Name: Alice, Age: 30", captured.Body.Messages[1].Content)
}

func TestGroqClient_GetReply_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "invalid api key",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`,
			wantKind: KindAuth,
			wantMsg:  "Invalid API Key",
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"message":"Rate limit reached","type":"tokens","code":"rate_limit_exceeded"}}`,
			wantKind: KindRateLimit,
			wantMsg:  "Rate limit reached",
		},
		{
			name:     "server error with plain body",
			status:   http.StatusBadGateway,
			body:     `upstream unavailable`,
			wantKind: KindAPI,
		},
		{
			name:     "no choices",
			status:   http.StatusOK,
			body:     `{"id":"chatcmpl-2","object":"chat.completion","choices":[]}`,
			wantKind: KindMalformed,
			wantMsg:  ErrNoChoices.Error(),
		},
		{
			name:     "garbage success body",
			status:   http.StatusOK,
			body:     `<html>oops</html>`,
			wantKind: KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, calls := newFakeGroq(t, tt.status, tt.body)
			client := newTestClient(srv.URL)

			reply, err := client.GetReply(context.Background(), "persona", "prompt")
			require.Error(t, err)
			assert.Empty(t, reply)
			assert.Equal(t, 1, *calls, "no retries expected")

			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tt.wantKind, upErr.Kind)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGroqClient_GetReply_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).GetReply(context.Background(), "persona", "prompt")
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, KindTransport, upErr.Kind)
}

func TestStubClient(t *testing.T) {
	stub := NewStubClient()

	reply, err := stub.GetReply(context.Background(), "persona", "Name: Bob, Age: 41")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	var upErr *UpstreamError
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = stub.GetReply(ctx, "persona", "prompt")
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, KindTransport, upErr.Kind)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStubClient_ConfiguredError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain error", err: errors.New("boom"), want: KindTransport},
		{name: "rate limited", err: &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"}, want: KindRateLimit},
		{name: "no choices", err: ErrNoChoices, want: KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &StubClient{Reply: "unused", Err: tt.err}

			reply, err := stub.GetReply(context.Background(), "persona", "prompt")
			assert.Empty(t, reply)

			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tt.want, upErr.Kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
