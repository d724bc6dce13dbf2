package deepseek

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client wraps the chat-completions API exposed by DeepSeek.
type Client struct {
	client openai.Client
	model  string
}

func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model: model,
	}
}

// Complete sends one system+user message pair and returns the reply text.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("deepseek chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
