package llm

import (
	"context"
	"errors"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the reasoning backend used by the consultation roles.  Each
// call carries one role's system prompt and the accumulated conversation
// context of all prior roles.
type Client interface {
	InvokeRole(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient calls the OpenAI chat completion API.  API credentials and
// the model name are loaded from environment variables.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient constructs an OpenAI-backed client.  It reads the API key
// and model name from the environment and falls back to sensible defaults.
func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		// default to a modern small model; can be overridden via env
		model = "gpt-4o-mini"
	}
	timeout := 30 * time.Second
	if v := os.Getenv("OPENAI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model, timeout: timeout}
}

// InvokeRole sends one role turn to the chat completion API.  The per-call
// timeout bounds each role invocation independently of the session context.
func (c *OpenAIClient) InvokeRole(ctx context.Context, system, user string) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &BackendError{Err: errors.New("empty completion"), Transient: true}
	}
	return resp.Choices[0].Message.Content, nil
}
