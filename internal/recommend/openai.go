package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gauchoeats/gaucho/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the model sends no choices
var ErrEmptyCompletion = errors.New("no valid response received")

// OpenAI recommends menu items through the chat completions API
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a recommender for apiKey. baseURL overrides the API endpoint when set.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Recommend asks the model for a recommendation from menu
func (o *OpenAI) Recommend(ctx context.Context, query string, menu []models.MenuItem) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(menu)},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
