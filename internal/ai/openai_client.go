package ai

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/life-prediction-api/internal/logger"
)

// GroqClient talks to Groq through its OpenAI-compatible chat completions API.
type GroqClient struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

type GroqOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	// HTTPClient overrides the transport; nil keeps go-openai's default client.
	HTTPClient *http.Client
}

func NewGroqClient(opts GroqOptions, log *logger.Logger) *GroqClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	if log == nil {
		log = logger.Nop()
	}

	return &GroqClient{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
		log:    log.With("component", "ai", "model", opts.Model),
	}
}

// GetReply issues a single chat completion and returns the first choice.
func (c *GroqClient) GetReply(
	ctx context.Context,
	systemPrompt string,
	userPrompt string,
) (string, error) {

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		upErr := newUpstreamError(err)
		c.log.Warn("completion failed", "kind", string(upErr.Kind), "error", err)
		return "", upErr
	}

	if len(resp.Choices) == 0 {
		c.log.Warn("empty choices", "response_id", resp.ID)
		return "", newUpstreamError(ErrNoChoices)
	}

	raw := resp.Choices[0].Message.Content
	c.log.Debug("completion received",
		"response_id", resp.ID,
		"chars", len(raw),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return raw, nil
}
